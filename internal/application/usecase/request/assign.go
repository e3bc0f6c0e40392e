package request

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

const topicRequestAssigned = "requests.assigned"

type AssignUseCaseImpl struct {
	Uow    outbound.UnitOfWork
	Logger logger.Logger
}

func NewAssignUseCase(uow outbound.UnitOfWork, log logger.Logger) *AssignUseCaseImpl {
	return &AssignUseCaseImpl{Uow: uow, Logger: log}
}

// Execute attaches a specialist to a pending request and moves it to
// In Progress. Admins may assign anyone holding the Specialist role;
// specialists may claim a request for themselves. The guarded repository
// update makes exactly one of two racing assigns win.
func (uc *AssignUseCaseImpl) Execute(ctx context.Context, input AssignInput) (Output, error) {
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
		if actor.ID != input.SpecialistID {
			if err := entity.RequireRole(actor, entity.RoleAdmin); err != nil {
				return fmt.Errorf("%w: only admins assign other users", err)
			}
		}

		specialist, err := p.Users().FindByID(ctx, input.SpecialistID)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return entity.ErrSpecialistRequired
			}
			return err
		}
		if !specialist.HasRole(entity.RoleSpecialist) {
			return entity.ErrSpecialistRequired
		}

		if err := request.Assign(specialist.ID); err != nil {
			return err
		}
		if err := p.ServiceRequests().Assign(ctx, request.ID(), specialist.ID); err != nil {
			return err
		}

		out = ToOutput(request)
		payload, err := json.Marshal(out)
		if err != nil {
			return err
		}
		return p.Outbox().SaveEvent(ctx, uuid.NewString(),
			strconv.FormatInt(request.ID(), 10), "request.assigned", payload, topicRequestAssigned)
	})
	if err != nil {
		return Output{}, err
	}

	uc.Logger.Info(ctx, "specialist assigned",
		logger.Int64("request_id", out.ID),
		logger.Int64("specialist_id", input.SpecialistID),
	)
	return out, nil
}
