package dto

import "time"

// MultiplierResponse is one applied pricing step.
type MultiplierResponse struct {
	Category   string  `json:"category"`
	AppliesTo  string  `json:"appliesTo"`
	RuleName   string  `json:"ruleName,omitempty"`
	Multiplier float64 `json:"multiplier"`
}

// QuoteResponse is the result of a price preview.
type QuoteResponse struct {
	Urgency          string               `json:"urgency"`
	BasePricePerPage float64              `json:"basePricePerPage"`
	PageCount        int                  `json:"pageCount"`
	BasePrice        float64              `json:"basePrice"`
	Multipliers      []MultiplierResponse `json:"multipliers"`
	TotalPrice       float64              `json:"totalPrice"`
	Currency         string               `json:"currency"`
}

// RuleRequest describes a pricing rule create or replace payload.
type RuleRequest struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	AppliesTo    string   `json:"appliesTo"`
	Multiplier   float64  `json:"multiplier"`
	BasePrice    *float64 `json:"basePrice"`
	Priority     int      `json:"priority"`
	IsActive     *bool    `json:"isActive"`
	DisplayOrder int      `json:"displayOrder"`
	DisplayName  string   `json:"displayName"`
	Description  string   `json:"description"`
}

// RuleResponse represents a stored pricing rule.
type RuleResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	AppliesTo    string    `json:"appliesTo"`
	Multiplier   float64   `json:"multiplier"`
	BasePrice    *float64  `json:"basePrice,omitempty"`
	Priority     int       `json:"priority"`
	IsActive     bool      `json:"isActive"`
	DisplayOrder int       `json:"displayOrder"`
	DisplayName  string    `json:"displayName,omitempty"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
