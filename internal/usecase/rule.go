package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/polkiloo/papermill/internal/catalog"
	domainErrors "github.com/polkiloo/papermill/internal/domain/errors"
	"github.com/polkiloo/papermill/internal/domain/model"
	"github.com/polkiloo/papermill/internal/domain/repository"
)

// RuleUseCase administers the pricing rule catalog.
type RuleUseCase struct {
	rules    repository.RuleRepository
	defaults func() ([]model.PricingRule, error)
	logger   *slog.Logger
}

// NewRuleUseCase constructs RuleUseCase seeded from the embedded catalog.
func NewRuleUseCase(rules repository.RuleRepository, logger *slog.Logger) *RuleUseCase {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RuleUseCase{rules: rules, defaults: catalog.Defaults, logger: logger}
}

type ruleInput struct {
	Name       string  `json:"name" validate:"required,max=100"`
	Category   string  `json:"category" validate:"required,oneof=education_level task_type urgency complexity page_count citation_style"`
	AppliesTo  string  `json:"appliesTo" validate:"required,max=100"`
	Multiplier float64 `json:"multiplier" validate:"gte=0.1,lte=10"`
}

func validateRule(rule *model.PricingRule) error {
	rule.Name = strings.TrimSpace(rule.Name)
	rule.AppliesTo = strings.TrimSpace(rule.AppliesTo)
	verr := validateStruct(ruleInput{
		Name:       rule.Name,
		Category:   string(rule.Category),
		AppliesTo:  rule.AppliesTo,
		Multiplier: rule.Multiplier,
	})
	if rule.BasePrice != nil {
		checkVar(verr, "basePrice", *rule.BasePrice, "gte=0")
	}
	return verr.OrNil()
}

// List returns every rule, optionally restricted to one category.
func (u *RuleUseCase) List(ctx context.Context, category *model.RuleCategory) ([]model.PricingRule, error) {
	if category != nil && !category.Valid() {
		return nil, domainErrors.NewValidationError("category", "is invalid")
	}
	rules, err := u.rules.List(ctx)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return rules, nil
	}
	filtered := make([]model.PricingRule, 0, len(rules))
	for _, r := range rules {
		if r.Category == *category {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// ActiveByCategory returns the active rules of category in presentation order.
func (u *RuleUseCase) ActiveByCategory(ctx context.Context, category model.RuleCategory) ([]model.PricingRule, error) {
	if !category.Valid() {
		return nil, domainErrors.NewValidationError("category", "is invalid")
	}
	return u.rules.ListActiveByCategory(ctx, category)
}

// Get returns a rule by id.
func (u *RuleUseCase) Get(ctx context.Context, id int64) (*model.PricingRule, error) {
	return u.rules.GetByID(ctx, id)
}

// Create validates and stores a new rule. A duplicate name is ErrAlreadyExists.
func (u *RuleUseCase) Create(ctx context.Context, rule model.PricingRule) (*model.PricingRule, error) {
	if err := validateRule(&rule); err != nil {
		return nil, err
	}
	rule.ID = 0
	if err := u.rules.Upsert(ctx, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// Update replaces the rule stored under id.
func (u *RuleUseCase) Update(ctx context.Context, id int64, rule model.PricingRule) (*model.PricingRule, error) {
	if err := validateRule(&rule); err != nil {
		return nil, err
	}
	existing, err := u.rules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rule.ID = existing.ID
	rule.CreatedAt = existing.CreatedAt
	if err := u.rules.Upsert(ctx, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// Delete removes the rule stored under id.
func (u *RuleUseCase) Delete(ctx context.Context, id int64) error {
	return u.rules.Delete(ctx, id)
}

// DeleteAll wipes the catalog. Pricing then falls back to the default base rate and 1.0 multipliers.
func (u *RuleUseCase) DeleteAll(ctx context.Context) error {
	if err := u.rules.DeleteAll(ctx); err != nil {
		return err
	}
	u.logger.Info("pricing rules deleted")
	return nil
}

// SeedDefaults replaces the whole catalog with the default rule set.
func (u *RuleUseCase) SeedDefaults(ctx context.Context) ([]model.PricingRule, error) {
	rules, err := u.defaults()
	if err != nil {
		return nil, fmt.Errorf("load default rules: %w", err)
	}
	if err := u.rules.ReplaceAll(ctx, rules); err != nil {
		return nil, err
	}
	u.logger.Info("pricing rules seeded", slog.Int("count", len(rules)))
	return u.rules.List(ctx)
}

// SeedIfEmpty seeds the default catalog only when no rule exists yet.
func (u *RuleUseCase) SeedIfEmpty(ctx context.Context) (bool, error) {
	existing, err := u.rules.List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	if _, err := u.SeedDefaults(ctx); err != nil {
		return false, err
	}
	return true, nil
}
