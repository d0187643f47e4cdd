package test

import (
	"context"
	"time"

	"github.com/polkiloo/papermill/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (model.Actor, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken returns a student actor unless overridden. The token "admin" yields an administrator.
func (s AuthFacadeStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if token == "admin" {
		return model.Actor{ID: 99, Role: model.RoleAdmin}, nil
	}
	return model.Actor{ID: 1, Role: model.RoleStudent}, nil
}

// SampleOrder returns a populated pending order for HTTP layer tests.
func SampleOrder(id string, requester int64) *model.Order {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	order := &model.Order{
		ID:          id,
		OrderNumber: "ORD-2601-000042",
		RequesterID: requester,
		OrderAttributes: model.OrderAttributes{
			EducationLevel:  model.EducationGraduate,
			TaskType:        model.TaskEssay,
			Subject:         "History",
			Title:           "The Hanseatic League",
			Description:     "Trade networks of the Baltic",
			PageCount:       2,
			ComplexityLevel: model.ComplexityStandard,
			CitationStyle:   model.CitationNone,
			Deadline:        created.Add(7 * 24 * time.Hour),
			Urgency:         model.UrgencyStandard,
		},
		BasePrice:  30,
		TotalPrice: 60,
		Currency:   model.CurrencyUSD,
		Version:    1,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	order.RecordStatus(model.OrderStatusPending, created, "Order created")
	return order
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	QuoteFn        func(context.Context, model.OrderDraft) (*model.PriceQuote, error)
	CreateFn       func(context.Context, model.Actor, model.OrderDraft) (*model.Order, error)
	OrderFn        func(context.Context, model.Actor, string) (*model.Order, error)
	OrdersFn       func(context.Context, model.Actor, model.OrderFilter) ([]model.Order, error)
	UpdateFn       func(context.Context, model.Actor, string, model.OrderUpdate) (*model.Order, error)
	TransitionFn   func(context.Context, model.Actor, string, model.OrderStatus, string) (*model.Order, error)
	CancelFn       func(context.Context, model.Actor, string, string) (*model.Order, error)
	InstructionsFn func(context.Context, model.Actor, string, string) (*model.Order, error)
	AdminUpdateFn  func(context.Context, model.Actor, string, model.OrderUpdate) (*model.Order, error)
	ReviewFn       func(context.Context, model.Actor, string, int, string) (*model.Order, error)
}

// QuotePrice returns a fixed quote unless overridden.
func (s OrderFacadeStub) QuotePrice(ctx context.Context, draft model.OrderDraft) (*model.PriceQuote, error) {
	if s.QuoteFn != nil {
		return s.QuoteFn(ctx, draft)
	}
	return &model.PriceQuote{Urgency: model.UrgencyStandard, BasePricePerPage: 15, PageCount: 1, BasePrice: 15, TotalPrice: 15, Currency: model.CurrencyUSD}, nil
}

// CreateOrder returns a sample order owned by actor.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, actor model.Actor, draft model.OrderDraft) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, draft)
	}
	return SampleOrder("order-1", actor.ID), nil
}

// Order returns a sample order.
func (s OrderFacadeStub) Order(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, actor, id)
	}
	return SampleOrder(id, actor.ID), nil
}

// Orders returns a single sample order.
func (s OrderFacadeStub) Orders(ctx context.Context, actor model.Actor, filter model.OrderFilter) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, actor, filter)
	}
	return []model.Order{*SampleOrder("order-1", actor.ID)}, nil
}

// UpdateOrder returns a sample order.
func (s OrderFacadeStub) UpdateOrder(ctx context.Context, actor model.Actor, id string, upd model.OrderUpdate) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, actor, id, upd)
	}
	return SampleOrder(id, actor.ID), nil
}

// TransitionStatus returns a sample order in the requested status.
func (s OrderFacadeStub) TransitionStatus(ctx context.Context, actor model.Actor, id string, status model.OrderStatus, note string) (*model.Order, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, actor, id, status, note)
	}
	order := SampleOrder(id, actor.ID)
	order.RecordStatus(status, order.CreatedAt.Add(time.Hour), note)
	return order, nil
}

// CancelOrder returns a cancelled sample order.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, actor model.Actor, id string, reason string) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, actor, id, reason)
	}
	order := SampleOrder(id, actor.ID)
	order.RecordStatus(model.OrderStatusCancelled, order.CreatedAt.Add(time.Hour), reason)
	return order, nil
}

// UpdateInstructions returns a sample order carrying text.
func (s OrderFacadeStub) UpdateInstructions(ctx context.Context, actor model.Actor, id string, text string) (*model.Order, error) {
	if s.InstructionsFn != nil {
		return s.InstructionsFn(ctx, actor, id, text)
	}
	order := SampleOrder(id, actor.ID)
	order.AdditionalInstructions = text
	return order, nil
}

// UpdateAdminFields returns a sample order.
func (s OrderFacadeStub) UpdateAdminFields(ctx context.Context, actor model.Actor, id string, upd model.OrderUpdate) (*model.Order, error) {
	if s.AdminUpdateFn != nil {
		return s.AdminUpdateFn(ctx, actor, id, upd)
	}
	return SampleOrder(id, 1), nil
}

// SubmitReview returns a reviewed sample order.
func (s OrderFacadeStub) SubmitReview(ctx context.Context, actor model.Actor, id string, rating int, review string) (*model.Order, error) {
	if s.ReviewFn != nil {
		return s.ReviewFn(ctx, actor, id, rating, review)
	}
	order := SampleOrder(id, actor.ID)
	order.RecordStatus(model.OrderStatusCompleted, order.CreatedAt.Add(time.Hour), "")
	at := order.CreatedAt.Add(2 * time.Hour)
	order.Rating = &rating
	order.Review = review
	order.ReviewedAt = &at
	return order, nil
}

// RuleFacadeStub simulates pricing rule administration.
type RuleFacadeStub struct {
	ListFn      func(context.Context, *model.RuleCategory) ([]model.PricingRule, error)
	ActiveFn    func(context.Context, model.RuleCategory) ([]model.PricingRule, error)
	GetFn       func(context.Context, int64) (*model.PricingRule, error)
	CreateFn    func(context.Context, model.PricingRule) (*model.PricingRule, error)
	UpdateFn    func(context.Context, int64, model.PricingRule) (*model.PricingRule, error)
	DeleteFn    func(context.Context, int64) error
	DeleteAllFn func(context.Context) error
	SeedFn      func(context.Context) ([]model.PricingRule, error)
}

// PricingRules returns one sample rule unless overridden.
func (s RuleFacadeStub) PricingRules(ctx context.Context, category *model.RuleCategory) ([]model.PricingRule, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, category)
	}
	return []model.PricingRule{SampleRule(1)}, nil
}

// ActivePricingRules returns one sample rule unless overridden.
func (s RuleFacadeStub) ActivePricingRules(ctx context.Context, category model.RuleCategory) ([]model.PricingRule, error) {
	if s.ActiveFn != nil {
		return s.ActiveFn(ctx, category)
	}
	return []model.PricingRule{SampleRule(1)}, nil
}

// PricingRule returns a sample rule with id.
func (s RuleFacadeStub) PricingRule(ctx context.Context, id int64) (*model.PricingRule, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	rule := SampleRule(id)
	return &rule, nil
}

// CreatePricingRule echoes rule with an assigned id.
func (s RuleFacadeStub) CreatePricingRule(ctx context.Context, rule model.PricingRule) (*model.PricingRule, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, rule)
	}
	rule.ID = 1
	return &rule, nil
}

// UpdatePricingRule echoes rule under id.
func (s RuleFacadeStub) UpdatePricingRule(ctx context.Context, id int64, rule model.PricingRule) (*model.PricingRule, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, rule)
	}
	rule.ID = id
	return &rule, nil
}

// DeletePricingRule succeeds unless overridden.
func (s RuleFacadeStub) DeletePricingRule(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// DeleteAllPricingRules succeeds unless overridden.
func (s RuleFacadeStub) DeleteAllPricingRules(ctx context.Context) error {
	if s.DeleteAllFn != nil {
		return s.DeleteAllFn(ctx)
	}
	return nil
}

// SeedPricingRules returns one sample rule unless overridden.
func (s RuleFacadeStub) SeedPricingRules(ctx context.Context) ([]model.PricingRule, error) {
	if s.SeedFn != nil {
		return s.SeedFn(ctx)
	}
	return []model.PricingRule{SampleRule(1)}, nil
}

// SampleRule returns an active education level rule.
func SampleRule(id int64) model.PricingRule {
	return model.PricingRule{
		ID:          id,
		Name:        "education_phd",
		Category:    model.CategoryEducationLevel,
		AppliesTo:   string(model.EducationPhD),
		Multiplier:  3,
		IsActive:    true,
		DisplayName: "PhD",
	}
}

// HealthFacadeStub reports configured health.
type HealthFacadeStub struct {
	Err error
}

// Health returns the configured error.
func (s HealthFacadeStub) Health(context.Context) error {
	return s.Err
}

// BrokerFacadeStub aggregates facade dependencies for HTTP layer tests.
type BrokerFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	RuleFacadeStub
	HealthFacadeStub
}
