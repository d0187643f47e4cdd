package model

import "time"

// OrderStatus describes order lifecycle stage.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusReview     OrderStatus = "review"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusReview, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type EducationLevel string

const (
	EducationHighSchool    EducationLevel = "high_school"
	EducationUndergraduate EducationLevel = "undergraduate"
	EducationGraduate      EducationLevel = "graduate"
	EducationPhD           EducationLevel = "phd"
)

type TaskType string

const (
	TaskEssay         TaskType = "essay"
	TaskResearchPaper TaskType = "research_paper"
	TaskThesis        TaskType = "thesis"
	TaskDissertation  TaskType = "dissertation"
	TaskEditing       TaskType = "editing"
	TaskProofreading  TaskType = "proofreading"
	TaskCaseStudy     TaskType = "case_study"
	TaskLabReport     TaskType = "lab_report"
	TaskPresentation  TaskType = "presentation"
	TaskOther         TaskType = "other"
)

type ComplexityLevel string

const (
	ComplexityBasic    ComplexityLevel = "basic"
	ComplexityStandard ComplexityLevel = "standard"
	ComplexityAdvanced ComplexityLevel = "advanced"
	ComplexityExpert   ComplexityLevel = "expert"
)

type CitationStyle string

const (
	CitationAPA     CitationStyle = "apa"
	CitationMLA     CitationStyle = "mla"
	CitationChicago CitationStyle = "chicago"
	CitationHarvard CitationStyle = "harvard"
	CitationIEEE    CitationStyle = "ieee"
	CitationOther   CitationStyle = "other"
	CitationNone    CitationStyle = "none"
)

// Urgency is derived from the time left until the deadline.
type Urgency string

const (
	UrgencyStandard Urgency = "standard"
	UrgencyRush     Urgency = "rush"
	UrgencyUrgent   Urgency = "urgent"
)

// CurrencyUSD is the only supported currency.
const CurrencyUSD = "USD"

// StatusChange is a single audit trail entry.
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Note      string      `json:"note,omitempty"`
}

// OrderAttributes holds the requester supplied description of the work.
type OrderAttributes struct {
	EducationLevel         EducationLevel
	TaskType               TaskType
	Subject                string
	Title                  string
	Description            string
	AdditionalInstructions string
	PageCount              int
	ComplexityLevel        ComplexityLevel
	CitationStyle          CitationStyle
	Deadline               time.Time
	Urgency                Urgency
}

// Order is the aggregate tracked through the lifecycle.
type Order struct {
	ID          string
	OrderNumber string
	RequesterID int64
	OrderAttributes

	BasePrice  float64
	TotalPrice float64
	Currency   string

	Status        OrderStatus
	StatusHistory []StatusChange
	Progress      int
	AdminNotes    string

	Rating     *int
	Review     string
	ReviewedAt *time.Time

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordStatus sets the status and appends the matching history entry.
func (o *Order) RecordStatus(status OrderStatus, at time.Time, note string) {
	o.Status = status
	o.StatusHistory = append(o.StatusHistory, StatusChange{Status: status, Timestamp: at, Note: note})
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	RequesterID *int64
	Status      *OrderStatus
	Limit       int
	Offset      int
}

// ClampProgress bounds progress to [0,100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
