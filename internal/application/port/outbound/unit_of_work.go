package outbound

import (
	"context"
)

// RepositoryProvider hands out repositories bound to the current transaction.
type RepositoryProvider interface {
	Users() UserRepository
	Products() ProductRepository
	Orders() OrderRepository
	ServiceRequests() ServiceRequestRepository
	Outbox() OutboxRepository
}

// UnitOfWork runs fn inside one transaction: either every write in fn
// commits, or the whole transaction rolls back. The connection is released
// before Do returns.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(provider RepositoryProvider) error) error
}
