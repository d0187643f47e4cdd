package repository

import (
	"context"

	"github.com/polkiloo/papermill/internal/domain/model"
)

// RuleRepository stores pricing rules.
//
// FindActive and FindActiveByName return (nil, nil) when no active rule matches;
// absence is not an error. ListActiveByCategory orders by priority descending,
// then display order ascending.
// When several active rules share a (category, appliesTo) pair the highest priority wins.
type RuleRepository interface {
	FindActive(ctx context.Context, category model.RuleCategory, appliesTo string) (*model.PricingRule, error)
	FindActiveByName(ctx context.Context, name string) (*model.PricingRule, error)
	ListActiveByCategory(ctx context.Context, category model.RuleCategory) ([]model.PricingRule, error)
	List(ctx context.Context) ([]model.PricingRule, error)
	GetByID(ctx context.Context, id int64) (*model.PricingRule, error)
	Upsert(ctx context.Context, rule *model.PricingRule) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	ReplaceAll(ctx context.Context, rules []model.PricingRule) error
}
