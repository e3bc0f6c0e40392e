package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/ctrlmarket/ctrlmarket/internal/application/port/outbound"
	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
	"github.com/ctrlmarket/ctrlmarket/pkg/logger"
)

type CreateUseCaseImpl struct {
	Uow    outbound.UnitOfWork
	Logger logger.Logger
}

func NewCreateUseCase(uow outbound.UnitOfWork, log logger.Logger) *CreateUseCaseImpl {
	return &CreateUseCaseImpl{Uow: uow, Logger: log}
}

// Execute files a new installation or support request for a customer. The
// request starts Pending with no specialist attached.
func (uc *CreateUseCaseImpl) Execute(ctx context.Context, input CreateInput) (Output, error) {
	var out Output
	err := uc.Uow.Do(ctx, func(p outbound.RepositoryProvider) error {
		customer, err := p.Users().FindByID(ctx, input.CustomerID)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return fmt.Errorf("%w: user %d is not a customer", entity.ErrUnauthorized, input.CustomerID)
			}
			return err
		}
		if err := entity.RequireRole(customer, entity.RoleCustomer); err != nil {
			return fmt.Errorf("%w: only customers file service requests", err)
		}

		request, err := entity.NewServiceRequest(customer.ID, entity.ServiceType(input.ServiceType))
		if err != nil {
			return err
		}
		if err := p.ServiceRequests().Save(ctx, request); err != nil {
			return err
		}
		out = ToOutput(request)
		return nil
	})
	if err != nil {
		return Output{}, err
	}

	uc.Logger.Info(ctx, "service request created",
		logger.Int64("request_id", out.ID),
		logger.String("service_type", out.ServiceType),
	)
	return out, nil
}
