package outbound

import (
	"context"

	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
)

type OrderRepository interface {
	// Save inserts the order and all of its items; ids are set on the
	// entities. Callers run it inside a unit of work so order and items
	// land atomically.
	Save(ctx context.Context, order *entity.Order) error
	// FindByID loads the order with its items; entity.ErrNotFound when absent.
	FindByID(ctx context.Context, id int64) (*entity.Order, error)
	// UpdateStatus moves the order from one status to another with a guarded
	// update keyed on the expected current status. A concurrent transition
	// that already moved the row away surfaces as
	// entity.ErrInvalidStateTransition.
	UpdateStatus(ctx context.Context, id int64, from, to entity.OrderStatus) error
	// List filters by customer and status; zero values mean no filter.
	List(ctx context.Context, customerID int64, status entity.OrderStatus) ([]*entity.Order, error)
}
