package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/papermill/internal/domain/model"
	"github.com/polkiloo/papermill/internal/domain/repository"
)

// PricingEngine composes active pricing rules into an order price.
// It only reads from the rule store and is safe to call for previews.
type PricingEngine struct {
	rules repository.RuleRepository
}

// NewPricingEngine constructs PricingEngine.
func NewPricingEngine(rules repository.RuleRepository) *PricingEngine {
	return &PricingEngine{rules: rules}
}

type pricingStep struct {
	category  model.RuleCategory
	appliesTo string
}

// Quote prices attrs. attrs.Urgency must already be derived; an empty urgency or
// complexity is priced as standard and citation style none is skipped.
func (e *PricingEngine) Quote(ctx context.Context, attrs model.OrderAttributes) (*model.PriceQuote, error) {
	perPage, err := e.basePricePerPage(ctx)
	if err != nil {
		return nil, err
	}

	pages := attrs.PageCount
	if pages < 1 {
		pages = 1
	}

	urgency := attrs.Urgency
	if urgency == "" {
		urgency = model.UrgencyStandard
	}
	complexity := attrs.ComplexityLevel
	if complexity == "" {
		complexity = model.ComplexityStandard
	}

	steps := []pricingStep{
		{model.CategoryEducationLevel, string(attrs.EducationLevel)},
		{model.CategoryTaskType, string(attrs.TaskType)},
		{model.CategoryUrgency, string(urgency)},
		{model.CategoryComplexity, string(complexity)},
	}
	if attrs.CitationStyle != "" && attrs.CitationStyle != model.CitationNone {
		steps = append(steps, pricingStep{model.CategoryCitationStyle, string(attrs.CitationStyle)})
	}

	base := perPage.Mul(decimal.NewFromInt(int64(pages)))
	total := base
	applied := make([]model.AppliedMultiplier, 0, len(steps))
	for _, step := range steps {
		m := model.AppliedMultiplier{Category: step.category, AppliesTo: step.appliesTo, Multiplier: 1}
		rule, err := e.rules.FindActive(ctx, step.category, step.appliesTo)
		if err != nil {
			return nil, fmt.Errorf("lookup %s rule %q: %w", step.category, step.appliesTo, err)
		}
		if rule != nil {
			m.RuleName = rule.Name
			m.Multiplier = rule.Multiplier
			total = total.Mul(decimal.NewFromFloat(rule.Multiplier))
		}
		applied = append(applied, m)
	}

	return &model.PriceQuote{
		Urgency:          urgency,
		BasePricePerPage: perPage.InexactFloat64(),
		PageCount:        pages,
		BasePrice:        base.Round(2).InexactFloat64(),
		Multipliers:      applied,
		TotalPrice:       total.Round(2).InexactFloat64(),
		Currency:         model.CurrencyUSD,
	}, nil
}

func (e *PricingEngine) basePricePerPage(ctx context.Context) (decimal.Decimal, error) {
	rule, err := e.rules.FindActiveByName(ctx, model.BaseRateRuleName)
	if err != nil {
		return decimal.Zero, fmt.Errorf("lookup base rate: %w", err)
	}
	if rule == nil || rule.BasePrice == nil || *rule.BasePrice < 0 {
		return decimal.NewFromFloat(model.DefaultBasePricePerPage), nil
	}
	return decimal.NewFromFloat(*rule.BasePrice), nil
}
