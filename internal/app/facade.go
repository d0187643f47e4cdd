package app

import (
	"context"

	"github.com/polkiloo/papermill/internal/domain/model"
	"github.com/polkiloo/papermill/internal/server/http/handlers"
	"github.com/polkiloo/papermill/internal/usecase"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// BrokerFacade adapts use cases to the operations the HTTP layer needs.
type BrokerFacade struct {
	auth   *usecase.AuthUseCase
	orders *usecase.OrderUseCase
	rules  *usecase.RuleUseCase
	health HealthChecker
}

var _ handlers.BrokerFacade = (*BrokerFacade)(nil)

func NewBrokerFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, rules *usecase.RuleUseCase, health HealthChecker) *BrokerFacade {
	return &BrokerFacade{auth: auth, orders: orders, rules: rules, health: health}
}

func (f *BrokerFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *BrokerFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *BrokerFacade) ParseToken(token string) (model.Actor, error) {
	return f.auth.ParseToken(token)
}

func (f *BrokerFacade) QuotePrice(ctx context.Context, draft model.OrderDraft) (*model.PriceQuote, error) {
	return f.orders.Quote(ctx, draft)
}

func (f *BrokerFacade) CreateOrder(ctx context.Context, actor model.Actor, draft model.OrderDraft) (*model.Order, error) {
	return f.orders.Create(ctx, actor, draft)
}

func (f *BrokerFacade) Order(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	return f.orders.Get(ctx, actor, id)
}

func (f *BrokerFacade) Orders(ctx context.Context, actor model.Actor, filter model.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, actor, filter)
}

func (f *BrokerFacade) UpdateOrder(ctx context.Context, actor model.Actor, id string, upd model.OrderUpdate) (*model.Order, error) {
	return f.orders.Update(ctx, actor, id, upd)
}

func (f *BrokerFacade) TransitionStatus(ctx context.Context, actor model.Actor, id string, status model.OrderStatus, note string) (*model.Order, error) {
	return f.orders.TransitionStatus(ctx, actor, id, status, note)
}

func (f *BrokerFacade) CancelOrder(ctx context.Context, actor model.Actor, id string, reason string) (*model.Order, error) {
	return f.orders.Cancel(ctx, actor, id, reason)
}

func (f *BrokerFacade) UpdateInstructions(ctx context.Context, actor model.Actor, id string, text string) (*model.Order, error) {
	return f.orders.UpdateInstructions(ctx, actor, id, text)
}

func (f *BrokerFacade) UpdateAdminFields(ctx context.Context, actor model.Actor, id string, upd model.OrderUpdate) (*model.Order, error) {
	return f.orders.UpdateAdminFields(ctx, actor, id, upd)
}

func (f *BrokerFacade) SubmitReview(ctx context.Context, actor model.Actor, id string, rating int, review string) (*model.Order, error) {
	return f.orders.SubmitReview(ctx, actor, id, rating, review)
}

func (f *BrokerFacade) PricingRules(ctx context.Context, category *model.RuleCategory) ([]model.PricingRule, error) {
	return f.rules.List(ctx, category)
}

func (f *BrokerFacade) ActivePricingRules(ctx context.Context, category model.RuleCategory) ([]model.PricingRule, error) {
	return f.rules.ActiveByCategory(ctx, category)
}

func (f *BrokerFacade) PricingRule(ctx context.Context, id int64) (*model.PricingRule, error) {
	return f.rules.Get(ctx, id)
}

func (f *BrokerFacade) CreatePricingRule(ctx context.Context, rule model.PricingRule) (*model.PricingRule, error) {
	return f.rules.Create(ctx, rule)
}

func (f *BrokerFacade) UpdatePricingRule(ctx context.Context, id int64, rule model.PricingRule) (*model.PricingRule, error) {
	return f.rules.Update(ctx, id, rule)
}

func (f *BrokerFacade) DeletePricingRule(ctx context.Context, id int64) error {
	return f.rules.Delete(ctx, id)
}

func (f *BrokerFacade) DeleteAllPricingRules(ctx context.Context) error {
	return f.rules.DeleteAll(ctx)
}

func (f *BrokerFacade) SeedPricingRules(ctx context.Context) ([]model.PricingRule, error) {
	return f.rules.SeedDefaults(ctx)
}

// Health reports storage reachability. A facade without a checker is always healthy.
func (f *BrokerFacade) Health(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
