package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/ctrlmarket/ctrlmarket/internal/application/port/outbound"
	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
	"github.com/ctrlmarket/ctrlmarket/pkg/logger"
)

const topicOrderCompleted = "orders.completed"

type CompleteUseCaseImpl struct {
	Uow    outbound.UnitOfWork
	Logger logger.Logger
}

func NewCompleteUseCase(uow outbound.UnitOfWork, log logger.Logger) *CompleteUseCaseImpl {
	return &CompleteUseCaseImpl{Uow: uow, Logger: log}
}

// Execute marks a pending order as completed. Admin only.
func (uc *CompleteUseCaseImpl) Execute(ctx context.Context, input CompleteInput) (Output, error) {
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
		if err := entity.RequireRole(actor, entity.RoleAdmin); err != nil {
			return fmt.Errorf("%w: only admins complete orders", err)
		}

		from := order.Status()
		if err := order.Complete(); err != nil {
			return err
		}
		if err := p.Orders().UpdateStatus(ctx, order.ID(), from, order.Status()); err != nil {
			return err
		}

		out = ToOutput(order)
		payload, err := json.Marshal(out)
		if err != nil {
			return err
		}
		return p.Outbox().SaveEvent(ctx, uuid.NewString(),
			strconv.FormatInt(order.ID(), 10), "order.completed", payload, topicOrderCompleted)
	})
	if err != nil {
		return Output{}, err
	}

	uc.Logger.Info(ctx, "order completed", logger.Int64("order_id", out.ID))
	return out, nil
}
