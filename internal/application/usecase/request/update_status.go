package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/ctrlmarket/ctrlmarket/internal/application/port/outbound"
	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
	"github.com/ctrlmarket/ctrlmarket/pkg/logger"
)

type UpdateStatusUseCaseImpl struct {
	Uow    outbound.UnitOfWork
	Logger logger.Logger
}

func NewUpdateStatusUseCase(uow outbound.UnitOfWork, log logger.Logger) *UpdateStatusUseCaseImpl {
	return &UpdateStatusUseCaseImpl{Uow: uow, Logger: log}
}

// Execute moves a request to Completed or Cancelled. Admins and the assigned
// specialist may do this; the state machine rejects everything else,
// including completing a request that never went through In Progress.
func (uc *UpdateStatusUseCaseImpl) Execute(ctx context.Context, input UpdateStatusInput) (Output, error) {
	target := entity.RequestStatus(input.Status)
	switch target {
	case entity.RequestStatusPending, entity.RequestStatusInProgress,
		entity.RequestStatusCompleted, entity.RequestStatusCancelled:
	default:
		return Output{}, fmt.Errorf("%w: unknown status %q", entity.ErrValidation, input.Status)
	}

	var out Output
	err := uc.Uow.Do(ctx, func(p outbound.RepositoryProvider) error {
		request, err := p.ServiceRequests().FindByID(ctx, input.RequestID)
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
		if !request.AssignedTo(actor.ID) {
			if err := entity.RequireRole(actor, entity.RoleAdmin); err != nil {
				return fmt.Errorf("%w: only admins or the assigned specialist update requests", err)
			}
		}

		from := request.Status()
		if err := request.ApplyStatus(target); err != nil {
			return err
		}
		if err := p.ServiceRequests().UpdateStatus(ctx, request.ID(), from, request.Status()); err != nil {
			return err
		}
		out = ToOutput(request)
		return nil
	})
	if err != nil {
		return Output{}, err
	}

	uc.Logger.Info(ctx, "service request status updated",
		logger.Int64("request_id", out.ID),
		logger.String("status", out.Status),
	)
	return out, nil
}
