package model

import "time"

// RuleCategory groups pricing rules by the order attribute they match.
type RuleCategory string

const (
	CategoryEducationLevel RuleCategory = "education_level"
	CategoryTaskType       RuleCategory = "task_type"
	CategoryUrgency        RuleCategory = "urgency"
	CategoryComplexity     RuleCategory = "complexity"
	CategoryPageCount      RuleCategory = "page_count"
	CategoryCitationStyle  RuleCategory = "citation_style"
)

// RuleCategories lists every category in evaluation order.
var RuleCategories = []RuleCategory{
	CategoryEducationLevel,
	CategoryTaskType,
	CategoryUrgency,
	CategoryComplexity,
	CategoryPageCount,
	CategoryCitationStyle,
}

// Valid reports whether c is a known category.
func (c RuleCategory) Valid() bool {
	for _, known := range RuleCategories {
		if c == known {
			return true
		}
	}
	return false
}

const (
	// BaseRateRuleName identifies the rule overriding the per page base rate.
	BaseRateRuleName = "base_price_per_page"
	// BaseRateAppliesTo is the appliesTo value of the base rate rule.
	BaseRateAppliesTo = "per_page"
	// DefaultBasePricePerPage is used when no active base rate rule exists.
	DefaultBasePricePerPage = 15.0

	MinMultiplier = 0.1
	MaxMultiplier = 10.0
)

// PricingRule is an administrator configured multiplier.
type PricingRule struct {
	ID           int64
	Name         string
	Category     RuleCategory
	AppliesTo    string
	Multiplier   float64
	BasePrice    *float64
	Priority     int
	IsActive     bool
	DisplayOrder int
	DisplayName  string
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AppliedMultiplier records one step of a price computation.
type AppliedMultiplier struct {
	Category   RuleCategory
	AppliesTo  string
	RuleName   string
	Multiplier float64
}

// PriceQuote is the outcome of a price computation.
type PriceQuote struct {
	Urgency          Urgency
	BasePricePerPage float64
	PageCount        int
	BasePrice        float64
	Multipliers      []AppliedMultiplier
	TotalPrice       float64
	Currency         string
}
