package handlers

import (
	"context"

	"github.com/polkiloo/papermill/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (model.Actor, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	QuotePrice(ctx context.Context, draft model.OrderDraft) (*model.PriceQuote, error)
	CreateOrder(ctx context.Context, actor model.Actor, draft model.OrderDraft) (*model.Order, error)
	Order(ctx context.Context, actor model.Actor, id string) (*model.Order, error)
	Orders(ctx context.Context, actor model.Actor, filter model.OrderFilter) ([]model.Order, error)
	UpdateOrder(ctx context.Context, actor model.Actor, id string, upd model.OrderUpdate) (*model.Order, error)
	TransitionStatus(ctx context.Context, actor model.Actor, id string, status model.OrderStatus, note string) (*model.Order, error)
	CancelOrder(ctx context.Context, actor model.Actor, id string, reason string) (*model.Order, error)
	UpdateInstructions(ctx context.Context, actor model.Actor, id string, text string) (*model.Order, error)
	UpdateAdminFields(ctx context.Context, actor model.Actor, id string, upd model.OrderUpdate) (*model.Order, error)
	SubmitReview(ctx context.Context, actor model.Actor, id string, rating int, review string) (*model.Order, error)
}

// RuleFacade provides pricing rule administration.
type RuleFacade interface {
	PricingRules(ctx context.Context, category *model.RuleCategory) ([]model.PricingRule, error)
	ActivePricingRules(ctx context.Context, category model.RuleCategory) ([]model.PricingRule, error)
	PricingRule(ctx context.Context, id int64) (*model.PricingRule, error)
	CreatePricingRule(ctx context.Context, rule model.PricingRule) (*model.PricingRule, error)
	UpdatePricingRule(ctx context.Context, id int64, rule model.PricingRule) (*model.PricingRule, error)
	DeletePricingRule(ctx context.Context, id int64) error
	DeleteAllPricingRules(ctx context.Context) error
	SeedPricingRules(ctx context.Context) ([]model.PricingRule, error)
}

// HealthFacade reports readiness of backing services.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// BrokerFacade aggregates the full set of operations used across handlers.
type BrokerFacade interface {
	AuthFacade
	OrderFacade
	RuleFacade
	HealthFacade
}
