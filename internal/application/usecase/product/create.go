package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/ctrlmarket/ctrlmarket/internal/application/port/outbound"
	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
	"github.com/ctrlmarket/ctrlmarket/pkg/logger"
)

// Catalog management writes one row at a time, so these use cases talk to
// the repositories directly instead of opening a unit of work.

type CreateUseCaseImpl struct {
	Products outbound.ProductRepository
	Users    outbound.UserRepository
	Logger   logger.Logger
}

func NewCreateUseCase(products outbound.ProductRepository, users outbound.UserRepository, log logger.Logger) *CreateUseCaseImpl {
	return &CreateUseCaseImpl{Products: products, Users: users, Logger: log}
}

// Execute adds a product to the catalog. Admin only.
func (uc *CreateUseCaseImpl) Execute(ctx context.Context, input CreateInput) (Output, error) {
	if err := requireAdmin(ctx, uc.Users, input.ActingUserID); err != nil {
		return Output{}, err
	}

	product, err := entity.NewProduct(input.Name, input.Category, entity.Cents(input.PriceCents))
	if err != nil {
		return Output{}, err
	}
	if err := uc.Products.Save(ctx, product); err != nil {
		return Output{}, err
	}

	out := ToOutput(product)
	uc.Logger.Info(ctx, "product created",
		logger.Int64("product_id", out.ID),
		logger.String("category", out.Category),
	)
	return out, nil
}

func requireAdmin(ctx context.Context, users outbound.UserRepository, actingUserID int64) error {
	actor, err := users.FindByID(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("%w: unknown acting user %d", entity.ErrUnauthorized, actingUserID)
		}
		return err
	}
	if err := entity.RequireRole(actor, entity.RoleAdmin); err != nil {
		return fmt.Errorf("%w: only admins manage the catalog", err)
	}
	return nil
}
