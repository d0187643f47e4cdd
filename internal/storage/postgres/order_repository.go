package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/papermill/internal/domain/errors"
	"github.com/polkiloo/papermill/internal/domain/model"
)

const orderColumns = `id, order_number, requester_id, education_level, task_type, subject, title, description,
       additional_instructions, page_count, complexity_level, citation_style, deadline, urgency,
       base_price, total_price, currency, status, status_history, progress, admin_notes,
       rating, review, reviewed_at, version, created_at, updated_at`

var newOrderID = uuid.New

type orderRepository struct {
	storage *Storage
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	const query = `INSERT INTO orders (id, order_number, requester_id, education_level, task_type, subject, title,
            description, additional_instructions, page_count, complexity_level, citation_style, deadline, urgency,
            base_price, total_price, currency, status, status_history, progress, admin_notes, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, 1, $22, $23)`

	history, err := json.Marshal(order.StatusHistory)
	if err != nil {
		return fmt.Errorf("encode status history: %w", err)
	}

	id := newOrderID()
	_, err = r.storage.pool.Exec(ctx, query,
		id, order.OrderNumber, order.RequesterID, order.EducationLevel, order.TaskType, order.Subject, order.Title,
		order.Description, order.AdditionalInstructions, order.PageCount, order.ComplexityLevel, order.CitationStyle,
		order.Deadline, order.Urgency, order.BasePrice, order.TotalPrice, order.Currency, order.Status, history,
		order.Progress, order.AdminNotes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		// Only an order number clash maps to ErrAlreadyExists.
		if isUniqueViolation(err) && violatedConstraint(err) != orderNumberConstraint {
			return fmt.Errorf("insert order: %w", err)
		}
		return translate(err)
	}

	order.ID = id.String()
	order.Version = 1
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, domainErrors.ErrNotFound
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		return nil, translate(err)
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	var (
		conds []string
		args  []any
	)
	if filter.RequesterID != nil {
		args = append(args, *filter.RequesterID)
		conds = append(conds, fmt.Sprintf("requester_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status=$%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + orderColumns + ` FROM orders`)
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.storage.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update writes the mutable part of the order, history included, in one statement
// guarded by the version the caller read.
func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	const query = `UPDATE orders SET additional_instructions=$3, status=$4, status_history=$5, progress=$6,
            admin_notes=$7, rating=$8, review=$9, reviewed_at=$10, updated_at=$11, version=version+1
        WHERE id=$1 AND version=$2`

	orderID, err := uuid.Parse(order.ID)
	if err != nil {
		return domainErrors.ErrNotFound
	}
	history, err := json.Marshal(order.StatusHistory)
	if err != nil {
		return fmt.Errorf("encode status history: %w", err)
	}

	tag, err := r.storage.pool.Exec(ctx, query,
		orderID, order.Version, order.AdditionalInstructions, order.Status, history, order.Progress,
		order.AdminNotes, order.Rating, order.Review, order.ReviewedAt, order.UpdatedAt,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		var current int64
		err := r.storage.pool.QueryRow(ctx, `SELECT version FROM orders WHERE id=$1`, orderID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		if err != nil {
			return err
		}
		r.storage.logger.Warn("stale order write rejected",
			slog.String("order_id", order.ID),
			slog.Int64("expected_version", order.Version),
			slog.Int64("current_version", current),
		)
		return domainErrors.ErrConflict
	}

	order.Version++
	return nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o       model.Order
		id      uuid.UUID
		history []byte
	)
	err := row.Scan(
		&id, &o.OrderNumber, &o.RequesterID, &o.EducationLevel, &o.TaskType, &o.Subject, &o.Title, &o.Description,
		&o.AdditionalInstructions, &o.PageCount, &o.ComplexityLevel, &o.CitationStyle, &o.Deadline, &o.Urgency,
		&o.BasePrice, &o.TotalPrice, &o.Currency, &o.Status, &history, &o.Progress, &o.AdminNotes,
		&o.Rating, &o.Review, &o.ReviewedAt, &o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &o.StatusHistory); err != nil {
		return nil, fmt.Errorf("decode status history: %w", err)
	}
	o.ID = id.String()
	return &o, nil
}
