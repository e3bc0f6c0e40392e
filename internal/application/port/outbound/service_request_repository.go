package outbound

import (
	"context"

	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
)

type ServiceRequestRepository interface {
	Save(ctx context.Context, request *entity.ServiceRequest) error
	// FindByID fails with entity.ErrNotFound when the request does not exist.
	FindByID(ctx context.Context, id int64) (*entity.ServiceRequest, error)
	// Assign sets the specialist and moves the request to In Progress with a
	// guarded update (still Pending, no specialist yet). Exactly one of two
	// concurrent assigns wins; the loser gets
	// entity.ErrInvalidStateTransition.
	Assign(ctx context.Context, id, specialistID int64) error
	// UpdateStatus moves the request between statuses with a guarded update
	// keyed on the expected current status.
	UpdateStatus(ctx context.Context, id int64, from, to entity.RequestStatus) error
	// List filters by customer, specialist and status; zero values mean no
	// filter.
	List(ctx context.Context, customerID, specialistID int64, status entity.RequestStatus) ([]*entity.ServiceRequest, error)
}
