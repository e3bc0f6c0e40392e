package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/ctrlmarket/ctrlmarket/internal/application/port/outbound"
	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
	"github.com/ctrlmarket/ctrlmarket/pkg/logger"
)

type CancelUseCaseImpl struct {
	Uow    outbound.UnitOfWork
	Logger logger.Logger
}

func NewCancelUseCase(uow outbound.UnitOfWork, log logger.Logger) *CancelUseCaseImpl {
	return &CancelUseCaseImpl{Uow: uow, Logger: log}
}

// Execute cancels a pending order. Only the owning customer or an admin may
// cancel; completed and cancelled orders stay as they are. The row is kept,
// never deleted.
func (uc *CancelUseCaseImpl) Execute(ctx context.Context, input CancelInput) (Output, error) {
	var out Output
	err := uc.Uow.Do(ctx, func(p outbound.RepositoryProvider) error {
		order, err := p.Orders().FindByID(ctx, input.OrderID)
		if err != nil {
			return err
		}

		actor, err := p.Users().FindByID(ctx, input.ActingUserID)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return fmt.Errorf("%w: unknown acting user %d", entity.ErrUnauthorized, input.ActingUserID)
			}
			return err
		}
		if !order.OwnedBy(actor.ID) {
			if err := entity.RequireRole(actor, entity.RoleAdmin); err != nil {
				return fmt.Errorf("%w: only the owning customer or an admin may cancel", err)
			}
		}

		from := order.Status()
		if err := order.Cancel(); err != nil {
			return err
		}
		if err := p.Orders().UpdateStatus(ctx, order.ID(), from, order.Status()); err != nil {
			return err
		}
		out = ToOutput(order)
		return nil
	})
	if err != nil {
		return Output{}, err
	}

	uc.Logger.Info(ctx, "order cancelled",
		logger.Int64("order_id", out.ID),
		logger.Int64("acting_user_id", input.ActingUserID),
	)
	return out, nil
}
