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

const topicOrderCreated = "orders.created"

type CreateUseCaseImpl struct {
	Uow    outbound.UnitOfWork
	Logger logger.Logger
}

func NewCreateUseCase(uow outbound.UnitOfWork, log logger.Logger) *CreateUseCaseImpl {
	return &CreateUseCaseImpl{Uow: uow, Logger: log}
}

// Execute places an order for a customer. Product prices are snapshotted
// into the items at this moment; order, items and the outbox event commit as
// one transaction.
func (uc *CreateUseCaseImpl) Execute(ctx context.Context, input CreateInput) (Output, error) {
	if len(input.Items) == 0 {
		return Output{}, entity.ErrOrderNeedsItems
	}

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
			return fmt.Errorf("%w: only customers place orders", err)
		}

		items := make([]entity.OrderItem, 0, len(input.Items))
		for _, it := range input.Items {
			if it.Quantity <= 0 {
				return entity.ErrQuantityMustBePos
			}
			product, err := p.Products().FindByID(ctx, it.ProductID)
			if err != nil {
				if errors.Is(err, entity.ErrNotFound) {
					return fmt.Errorf("%w: product %d does not exist", entity.ErrValidation, it.ProductID)
				}
				return err
			}
			items = append(items, entity.OrderItem{
				ProductID: product.ID,
				Quantity:  it.Quantity,
				UnitPrice: product.Price,
			})
		}

		order, err := entity.NewOrder(customer.ID, items)
		if err != nil {
			return err
		}
		if err := p.Orders().Save(ctx, order); err != nil {
			return err
		}

		out = ToOutput(order)
		payload, err := json.Marshal(out)
		if err != nil {
			return err
		}
		return p.Outbox().SaveEvent(ctx, uuid.NewString(),
			strconv.FormatInt(order.ID(), 10), "order.created", payload, topicOrderCreated)
	})
	if err != nil {
		return Output{}, err
	}

	uc.Logger.Info(ctx, "order created",
		logger.Int64("order_id", out.ID),
		logger.Int64("customer_id", out.CustomerID),
		logger.String("total", out.Total),
	)
	return out, nil
}
