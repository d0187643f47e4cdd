package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/papermill/internal/domain/errors"
	"github.com/polkiloo/papermill/internal/domain/model"
)

var orderCols = []string{
	"id", "order_number", "requester_id", "education_level", "task_type", "subject", "title", "description",
	"additional_instructions", "page_count", "complexity_level", "citation_style", "deadline", "urgency",
	"base_price", "total_price", "currency", "status", "status_history", "progress", "admin_notes",
	"rating", "review", "reviewed_at", "version", "created_at", "updated_at",
}

func sampleOrder(at time.Time) *model.Order {
	o := &model.Order{
		OrderNumber: "ORD-0115-000042",
		RequesterID: 7,
		OrderAttributes: model.OrderAttributes{
			EducationLevel:  model.EducationPhD,
			TaskType:        model.TaskEssay,
			Subject:         "History",
			Title:           "Industrial revolution",
			Description:     "Causes and effects",
			PageCount:       2,
			ComplexityLevel: model.ComplexityStandard,
			CitationStyle:   model.CitationNone,
			Deadline:        at.Add(96 * time.Hour),
			Urgency:         model.UrgencyStandard,
		},
		BasePrice:  30,
		TotalPrice: 90,
		Currency:   model.CurrencyUSD,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
	o.RecordStatus(model.OrderStatusPending, at, "Order created")
	return o
}

func addOrderRow(t *testing.T, rows *pgxmockv3.Rows, id uuid.UUID, o *model.Order) *pgxmockv3.Rows {
	t.Helper()
	history, err := json.Marshal(o.StatusHistory)
	if err != nil {
		t.Fatalf("marshal history: %v", err)
	}
	return rows.AddRow(
		id, o.OrderNumber, o.RequesterID, o.EducationLevel, o.TaskType, o.Subject, o.Title, o.Description,
		o.AdditionalInstructions, o.PageCount, o.ComplexityLevel, o.CitationStyle, o.Deadline, o.Urgency,
		o.BasePrice, o.TotalPrice, o.Currency, o.Status, history, o.Progress, o.AdminNotes,
		nil, o.Review, nil, o.Version, o.CreatedAt, o.UpdatedAt,
	)
}

func fixOrderID(t *testing.T, id uuid.UUID) {
	t.Helper()
	prev := newOrderID
	newOrderID = func() uuid.UUID { return id }
	t.Cleanup(func() { newOrderID = prev })
}

func TestOrderRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	at := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	id := uuid.MustParse("0b6f3f5e-8a9c-4d7e-9f00-1a2b3c4d5e6f")
	fixOrderID(t, id)

	order := sampleOrder(at)
	history, _ := json.Marshal(order.StatusHistory)
	args := []any{
		id, order.OrderNumber, order.RequesterID, order.EducationLevel, order.TaskType, order.Subject, order.Title,
		order.Description, order.AdditionalInstructions, order.PageCount, order.ComplexityLevel, order.CitationStyle,
		order.Deadline, order.Urgency, order.BasePrice, order.TotalPrice, order.Currency, order.Status, history,
		order.Progress, order.AdminNotes, order.CreatedAt, order.UpdatedAt,
	}

	mock.ExpectExec("INSERT INTO orders").WithArgs(args...).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != id.String() || order.Version != 1 {
		t.Fatalf("unexpected identity: id=%s version=%d", order.ID, order.Version)
	}

	collision := sampleOrder(at)
	mock.ExpectExec("INSERT INTO orders").WithArgs(args...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "orders_order_number_key"})
	if err := repo.Create(context.Background(), collision); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
	if collision.ID != "" {
		t.Fatalf("expected id to stay empty on failure, got %q", collision.ID)
	}

	keyClash := sampleOrder(at)
	mock.ExpectExec("INSERT INTO orders").WithArgs(args...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "orders_pkey"})
	err := repo.Create(context.Background(), keyClash)
	if err == nil || errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected primary key clash to stay unexpected, got %v", err)
	}

	mock.ExpectExec("INSERT INTO orders").WithArgs(args...).WillReturnError(errors.New("boom"))
	err = repo.Create(context.Background(), sampleOrder(at))
	if err == nil || errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected plain failure, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryGetByID(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	at := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	id := uuid.New()
	stored := sampleOrder(at)
	stored.Version = 3

	if _, err := repo.GetByID(context.Background(), "not-a-uuid"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for malformed id, got %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id=$1")).WithArgs(id).
		WillReturnRows(addOrderRow(t, pgxmockv3.NewRows(orderCols), id, stored))
	got, err := repo.GetByID(context.Background(), id.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != id.String() || got.OrderNumber != stored.OrderNumber || got.Version != 3 {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got.EducationLevel != model.EducationPhD || got.PageCount != 2 || got.TotalPrice != 90 {
		t.Fatalf("unexpected attributes: %+v", got.OrderAttributes)
	}
	if len(got.StatusHistory) != 1 || got.StatusHistory[0].Status != model.OrderStatusPending {
		t.Fatalf("unexpected history: %+v", got.StatusHistory)
	}
	if got.Rating != nil || got.ReviewedAt != nil {
		t.Fatalf("expected no review data")
	}

	missing := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id=$1")).WithArgs(missing).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), missing.String()); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryList(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	at := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	requester := int64(7)
	status := model.OrderStatusPending

	rows := pgxmockv3.NewRows(orderCols)
	addOrderRow(t, rows, uuid.New(), sampleOrder(at.Add(time.Hour)))
	addOrderRow(t, rows, uuid.New(), sampleOrder(at))

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE requester_id=$1 AND status=$2 ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4")).
		WithArgs(requester, status, 20, 5).
		WillReturnRows(rows)
	orders, err := repo.List(context.Background(), model.OrderFilter{RequesterID: &requester, Status: &status, Limit: 20, Offset: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if !orders[0].CreatedAt.After(orders[1].CreatedAt) {
		t.Fatalf("expected newest first")
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders ORDER BY created_at DESC, id DESC LIMIT $1")).
		WithArgs(10).
		WillReturnRows(pgxmockv3.NewRows(orderCols))
	orders, err = repo.List(context.Background(), model.OrderFilter{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders == nil || len(orders) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", orders)
	}

	mock.ExpectQuery("FROM orders").WillReturnError(errors.New("query fail"))
	if _, err := repo.List(context.Background(), model.OrderFilter{}); err == nil {
		t.Fatal("expected query error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}

	failing := &Storage{pool: &rowsErrorPool{rows: &errorRows{err: errors.New("rows")}}, logger: storage.logger}
	if _, err := (&orderRepository{storage: failing}).List(context.Background(), model.OrderFilter{}); err == nil {
		t.Fatal("expected rows error")
	}
}

func TestOrderRepositoryUpdate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	at := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	id := uuid.New()

	order := sampleOrder(at)
	order.ID = id.String()
	order.Version = 2
	order.RecordStatus(model.OrderStatusInProgress, at.Add(time.Hour), "assigned")
	order.Progress = 10
	order.UpdatedAt = at.Add(time.Hour)
	history, _ := json.Marshal(order.StatusHistory)

	updateArgs := func(version int64) []any {
		return []any{
			id, version, order.AdditionalInstructions, order.Status, history, order.Progress,
			order.AdminNotes, order.Rating, order.Review, order.ReviewedAt, order.UpdatedAt,
		}
	}

	t.Run("success bumps version", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET").WithArgs(updateArgs(2)...).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		if err := repo.Update(context.Background(), order); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.Version != 3 {
			t.Fatalf("expected version 3, got %d", order.Version)
		}
	})

	t.Run("stale version", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET").WithArgs(updateArgs(3)...).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT version FROM orders WHERE id=$1")).WithArgs(id).
			WillReturnRows(pgxmockv3.NewRows([]string{"version"}).AddRow(int64(4)))
		if err := repo.Update(context.Background(), order); !errors.Is(err, domainErrors.ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
		if order.Version != 3 {
			t.Fatalf("version must not change on conflict, got %d", order.Version)
		}
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET").WithArgs(updateArgs(3)...).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT version FROM orders WHERE id=$1")).WithArgs(id).WillReturnError(pgx.ErrNoRows)
		if err := repo.Update(context.Background(), order); !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("exec error", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET").WithArgs(updateArgs(3)...).WillReturnError(errors.New("boom"))
		if err := repo.Update(context.Background(), order); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		bad := sampleOrder(at)
		bad.ID = "nope"
		if err := repo.Update(context.Background(), bad); !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
