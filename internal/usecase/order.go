package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/papermill/internal/domain/errors"
	"github.com/polkiloo/papermill/internal/domain/model"
	"github.com/polkiloo/papermill/internal/domain/repository"
)

const (
	maxCreateAttempts = 3
	defaultListLimit  = 20
	maxListLimit      = 100
)

// OrderUseCase encapsulates order creation and the order lifecycle.
type OrderUseCase struct {
	orders      repository.OrderRepository
	pricing     *PricingEngine
	numbers     OrderNumberGenerator
	now         func() time.Time
	maxAttempts int
	logger      *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, pricing *PricingEngine, logger *slog.Logger) *OrderUseCase {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OrderUseCase{
		orders:      orders,
		pricing:     pricing,
		numbers:     NewRandomOrderNumbers(),
		now:         func() time.Time { return time.Now().UTC() },
		maxAttempts: maxCreateAttempts,
		logger:      logger,
	}
}

// Quote prices draft without persisting anything. Urgency is derived from the deadline.
// Only the pricing inputs are validated.
func (u *OrderUseCase) Quote(ctx context.Context, draft model.OrderDraft) (*model.PriceQuote, error) {
	attrs, err := u.prepare(draft, u.now(), false)
	if err != nil {
		return nil, err
	}
	return u.pricing.Quote(ctx, attrs)
}

// Create prices and persists a new pending order owned by actor.
// A number collision regenerates the number, up to maxAttempts in total.
func (u *OrderUseCase) Create(ctx context.Context, actor model.Actor, draft model.OrderDraft) (*model.Order, error) {
	now := u.now()
	attrs, err := u.prepare(draft, now, true)
	if err != nil {
		return nil, err
	}

	quote, err := u.pricing.Quote(ctx, attrs)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= u.maxAttempts; attempt++ {
		order := &model.Order{
			OrderNumber:     u.numbers.Generate(u.now()),
			RequesterID:     actor.ID,
			OrderAttributes: attrs,
			BasePrice:       quote.BasePrice,
			TotalPrice:      quote.TotalPrice,
			Currency:        quote.Currency,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		order.RecordStatus(model.OrderStatusPending, now, "Order created")

		err := u.orders.Create(ctx, order)
		if err == nil {
			u.logger.Info("order created",
				slog.String("order_id", order.ID),
				slog.String("order_number", order.OrderNumber),
				slog.Int64("actor_id", actor.ID),
				slog.Float64("total_price", order.TotalPrice),
			)
			return order, nil
		}
		if !errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, err
		}
		u.logger.Warn("order number collision",
			slog.String("order_number", order.OrderNumber),
			slog.Int("attempt", attempt),
		)
	}

	return nil, domainErrors.ErrOrderCreationExhausted
}

// prepare validates draft and fills defaults and the derived urgency.
// withText adds the checks on the free text fields required for creation.
func (u *OrderUseCase) prepare(draft model.OrderDraft, now time.Time, withText bool) (model.OrderAttributes, error) {
	draft.Subject = strings.TrimSpace(draft.Subject)
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)
	if draft.PageCount == 0 {
		draft.PageCount = 1
	}
	if draft.ComplexityLevel == "" {
		draft.ComplexityLevel = model.ComplexityStandard
	}
	if draft.CitationStyle == "" {
		draft.CitationStyle = model.CitationNone
	}

	verr := validateStruct(draft)
	if withText {
		checkVar(verr, "subject", draft.Subject, "required,max=200")
		checkVar(verr, "title", draft.Title, "required,max=300")
		checkVar(verr, "description", draft.Description, "required,max=10000")
		checkVar(verr, "additionalInstructions", draft.AdditionalInstructions, "max=5000")
	}
	switch {
	case draft.Deadline.IsZero():
		verr.Add("deadline", "is required")
	case !draft.Deadline.After(now):
		verr.Add("deadline", "must be in the future")
	}
	if err := verr.OrNil(); err != nil {
		return model.OrderAttributes{}, err
	}

	return model.OrderAttributes{
		EducationLevel:         draft.EducationLevel,
		TaskType:               draft.TaskType,
		Subject:                draft.Subject,
		Title:                  draft.Title,
		Description:            draft.Description,
		AdditionalInstructions: draft.AdditionalInstructions,
		PageCount:              draft.PageCount,
		ComplexityLevel:        draft.ComplexityLevel,
		CitationStyle:          draft.CitationStyle,
		Deadline:               draft.Deadline.UTC(),
		Urgency:                DeriveUrgency(draft.Deadline, now),
	}, nil
}

// Get returns the order when actor owns it or is an administrator.
// Anyone else gets ErrNotFound so existence is not disclosed.
func (u *OrderUseCase) Get(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.Owns(order) {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// List returns the actor's orders, or all orders for administrators, newest first.
// The requester filter is forced to the actor unless the actor is an administrator.
func (u *OrderUseCase) List(ctx context.Context, actor model.Actor, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, domainErrors.NewValidationError("status", "is invalid")
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if !actor.IsAdmin() {
		requester := actor.ID
		filter.RequesterID = &requester
	}
	return u.orders.List(ctx, filter)
}

// Update applies upd on behalf of actor. The stored order is re-read first and
// written back as a single versioned unit, so a concurrent writer yields ErrConflict.
//
// Owners may cancel a non-terminal order and edit additional instructions.
// Administrators may set any status on a non-terminal order, admin notes and progress.
// Setting the current status again changes nothing.
func (u *OrderUseCase) Update(ctx context.Context, actor model.Actor, id string, upd model.OrderUpdate) (*model.Order, error) {
	if err := validateUpdate(upd); err != nil {
		return nil, err
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	admin := actor.IsAdmin()
	owner := actor.Owns(order)
	if !admin && !owner {
		return nil, domainErrors.ErrNotFound
	}
	if upd.Empty() {
		return order, nil
	}

	terminal := order.Status.Terminal()
	previous := order.Status
	changed := false

	if upd.Status != nil {
		target := *upd.Status
		switch {
		case terminal:
			return nil, domainErrors.ErrConflict
		case !admin && target != model.OrderStatusCancelled:
			return nil, domainErrors.ErrForbidden
		case target != order.Status:
			order.RecordStatus(target, u.historyTime(order), strings.TrimSpace(upd.Note))
			changed = true
		}
	}

	if upd.AdminNotes != nil {
		if !admin {
			return nil, domainErrors.ErrForbidden
		}
		if *upd.AdminNotes != order.AdminNotes {
			order.AdminNotes = *upd.AdminNotes
			changed = true
		}
	}

	if upd.Progress != nil {
		if !admin {
			return nil, domainErrors.ErrForbidden
		}
		if terminal {
			return nil, domainErrors.ErrConflict
		}
		if p := model.ClampProgress(*upd.Progress); p != order.Progress {
			order.Progress = p
			changed = true
		}
	}

	if upd.AdditionalInstructions != nil {
		if !owner {
			return nil, domainErrors.ErrForbidden
		}
		if terminal {
			return nil, domainErrors.ErrConflict
		}
		if *upd.AdditionalInstructions != order.AdditionalInstructions {
			order.AdditionalInstructions = *upd.AdditionalInstructions
			changed = true
		}
	}

	if !changed {
		return order, nil
	}

	order.UpdatedAt = u.now()
	if err := u.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	if order.Status != previous {
		u.logger.Info("order status changed",
			slog.String("order_id", order.ID),
			slog.String("order_number", order.OrderNumber),
			slog.String("from", string(previous)),
			slog.String("to", string(order.Status)),
			slog.Int64("actor_id", actor.ID),
		)
	}
	return order, nil
}

// TransitionStatus moves the order to status, recording note in the history.
func (u *OrderUseCase) TransitionStatus(ctx context.Context, actor model.Actor, id string, status model.OrderStatus, note string) (*model.Order, error) {
	return u.Update(ctx, actor, id, model.OrderUpdate{Status: &status, Note: note})
}

// Cancel moves a non-terminal order to cancelled on behalf of its owner or an administrator.
func (u *OrderUseCase) Cancel(ctx context.Context, actor model.Actor, id string, reason string) (*model.Order, error) {
	status := model.OrderStatusCancelled
	if strings.TrimSpace(reason) == "" {
		reason = "Cancelled"
	}
	return u.Update(ctx, actor, id, model.OrderUpdate{Status: &status, Note: reason})
}

// UpdateAdminFields is the administrator only variant of Update.
func (u *OrderUseCase) UpdateAdminFields(ctx context.Context, actor model.Actor, id string, upd model.OrderUpdate) (*model.Order, error) {
	if !actor.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}
	upd.AdditionalInstructions = nil
	return u.Update(ctx, actor, id, upd)
}

// UpdateInstructions overwrites the additional instructions of an owned, non-terminal order.
func (u *OrderUseCase) UpdateInstructions(ctx context.Context, actor model.Actor, id string, text string) (*model.Order, error) {
	return u.Update(ctx, actor, id, model.OrderUpdate{AdditionalInstructions: &text})
}

// SubmitReview records the owner's one-time rating of a completed order.
func (u *OrderUseCase) SubmitReview(ctx context.Context, actor model.Actor, id string, rating int, review string) (*model.Order, error) {
	verr := &domainErrors.ValidationError{}
	checkVar(verr, "rating", rating, "gte=1,lte=5")
	checkVar(verr, "review", review, "max=2000")
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(order) {
		if actor.IsAdmin() {
			return nil, domainErrors.ErrForbidden
		}
		return nil, domainErrors.ErrNotFound
	}
	if order.Status != model.OrderStatusCompleted || order.Rating != nil {
		return nil, domainErrors.ErrConflict
	}

	now := u.now()
	order.Rating = &rating
	order.Review = strings.TrimSpace(review)
	order.ReviewedAt = &now
	order.UpdatedAt = now
	if err := u.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// historyTime keeps the status history non-decreasing even if the clock steps back.
func (u *OrderUseCase) historyTime(order *model.Order) time.Time {
	at := u.now()
	if n := len(order.StatusHistory); n > 0 && at.Before(order.StatusHistory[n-1].Timestamp) {
		return order.StatusHistory[n-1].Timestamp
	}
	return at
}

func validateUpdate(upd model.OrderUpdate) error {
	verr := &domainErrors.ValidationError{}
	if upd.Status != nil && !upd.Status.Valid() {
		verr.Add("status", "is invalid")
	}
	checkVar(verr, "note", upd.Note, "max=500")
	if upd.AdditionalInstructions != nil {
		checkVar(verr, "additionalInstructions", *upd.AdditionalInstructions, "max=5000")
	}
	if upd.AdminNotes != nil {
		checkVar(verr, "adminNotes", *upd.AdminNotes, "max=5000")
	}
	return verr.OrNil()
}
