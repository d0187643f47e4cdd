package repository

import (
	"context"

	"github.com/polkiloo/papermill/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// Create assigns the order ID and must report an order number collision as
// errors.ErrAlreadyExists, distinct from any other failure. Update writes the
// whole order as one unit when the stored version equals order.Version and
// returns errors.ErrConflict otherwise; on success order.Version is incremented.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	Update(ctx context.Context, order *model.Order) error
}
