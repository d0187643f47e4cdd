package dto

import "time"

// StatusChangeResponse is one statusHistory entry.
type StatusChangeResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// OrderResponse represents an order as returned to clients.
type OrderResponse struct {
	ID                     string                 `json:"id"`
	OrderNumber            string                 `json:"orderNumber"`
	RequesterID            int64                  `json:"requesterId"`
	EducationLevel         string                 `json:"educationLevel"`
	TaskType               string                 `json:"taskType"`
	Subject                string                 `json:"subject"`
	Title                  string                 `json:"title"`
	Description            string                 `json:"description"`
	AdditionalInstructions string                 `json:"additionalInstructions,omitempty"`
	PageCount              int                    `json:"pageCount"`
	ComplexityLevel        string                 `json:"complexityLevel"`
	CitationStyle          string                 `json:"citationStyle"`
	Deadline               time.Time              `json:"deadline"`
	Urgency                string                 `json:"urgency"`
	BasePrice              float64                `json:"basePrice"`
	TotalPrice             float64                `json:"totalPrice"`
	Currency               string                 `json:"currency"`
	Status                 string                 `json:"status"`
	StatusHistory          []StatusChangeResponse `json:"statusHistory"`
	Progress               int                    `json:"progress"`
	AdminNotes             string                 `json:"adminNotes,omitempty"`
	Rating                 *int                   `json:"rating,omitempty"`
	Review                 string                 `json:"review,omitempty"`
	ReviewedAt             *time.Time             `json:"reviewedAt,omitempty"`
	CreatedAt              time.Time              `json:"createdAt"`
	UpdatedAt              time.Time              `json:"updatedAt"`
}

// OrderUpdateRequest is the body of PATCH /api/orders/:id and PATCH /api/admin/orders/:id.
// Absent fields are left untouched.
type OrderUpdateRequest struct {
	Status                 *string `json:"status"`
	Note                   string  `json:"note"`
	AdditionalInstructions *string `json:"additionalInstructions"`
	AdminNotes             *string `json:"adminNotes"`
	Progress               *int    `json:"progress"`
}

// StatusRequest is the body of POST /api/orders/:id/status.
type StatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// CancelRequest is the optional body of POST /api/orders/:id/cancel.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// InstructionsRequest is the body of PUT /api/orders/:id/instructions.
type InstructionsRequest struct {
	AdditionalInstructions string `json:"additionalInstructions"`
}

// ReviewRequest is the body of POST /api/orders/:id/review.
type ReviewRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}
