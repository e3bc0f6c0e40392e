package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ctrlmarket/ctrlmarket/internal/application/port/outbound"
	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
)

type RepositoryProviderImpl struct {
	tx DBTX
}

func (p *RepositoryProviderImpl) Users() outbound.UserRepository {
	return NewUserRepository(p.tx)
}

func (p *RepositoryProviderImpl) Products() outbound.ProductRepository {
	return NewProductRepository(p.tx)
}

func (p *RepositoryProviderImpl) Orders() outbound.OrderRepository {
	return NewOrderRepository(p.tx)
}

func (p *RepositoryProviderImpl) ServiceRequests() outbound.ServiceRequestRepository {
	return NewServiceRequestRepository(p.tx)
}

func (p *RepositoryProviderImpl) Outbox() outbound.OutboxRepository {
	return NewOutboxStore(p.tx)
}

type UnitOfWorkImpl struct {
	db *sql.DB
}

func NewUnitOfWork(db *sql.DB) *UnitOfWorkImpl {
	return &UnitOfWorkImpl{db: db}
}

// Do runs fn with repositories bound to one transaction. Read-committed
// isolation plus the guarded status updates is enough to serialize racing
// writers on the same row.
func (u *UnitOfWorkImpl) Do(ctx context.Context, fn func(provider outbound.RepositoryProvider) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", entity.ErrStorage, err)
	}

	provider := &RepositoryProviderImpl{tx: tx}

	if err := fn(provider); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w, rb err: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit transaction: %w", entity.ErrStorage, err)
	}
	return nil
}
