package model

import "time"

// OrderDraft is the requester supplied part of a new order.
// Tags cover the pricing inputs; the free text fields are only checked on creation.
type OrderDraft struct {
	EducationLevel         EducationLevel  `json:"educationLevel" validate:"required,oneof=high_school undergraduate graduate phd"`
	TaskType               TaskType        `json:"taskType" validate:"required,oneof=essay research_paper thesis dissertation editing proofreading case_study lab_report presentation other"`
	Subject                string          `json:"subject"`
	Title                  string          `json:"title"`
	Description            string          `json:"description"`
	AdditionalInstructions string          `json:"additionalInstructions"`
	PageCount              int             `json:"pageCount" validate:"min=1,max=500"`
	ComplexityLevel        ComplexityLevel `json:"complexityLevel" validate:"omitempty,oneof=basic standard advanced expert"`
	CitationStyle          CitationStyle   `json:"citationStyle" validate:"omitempty,oneof=apa mla chicago harvard ieee other none"`
	Deadline               time.Time       `json:"deadline"`
}

// OrderUpdate carries the optional fields of a combined order update.
// Nil fields are left untouched.
type OrderUpdate struct {
	Status                 *OrderStatus
	Note                   string
	AdditionalInstructions *string
	AdminNotes             *string
	Progress               *int
}

// Empty reports whether no field is set.
func (u OrderUpdate) Empty() bool {
	return u.Status == nil && u.AdditionalInstructions == nil && u.AdminNotes == nil && u.Progress == nil
}
