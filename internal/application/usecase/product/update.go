package product

import (
	"context"

	"github.com/ctrlmarket/ctrlmarket/internal/application/port/outbound"
	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
	"github.com/ctrlmarket/ctrlmarket/pkg/logger"
)

type UpdateUseCaseImpl struct {
	Products outbound.ProductRepository
	Users    outbound.UserRepository
	Logger   logger.Logger
}

func NewUpdateUseCase(products outbound.ProductRepository, users outbound.UserRepository, log logger.Logger) *UpdateUseCaseImpl {
	return &UpdateUseCaseImpl{Products: products, Users: users, Logger: log}
}

// Execute applies a partial catalog update. Admin only. A price change never
// touches existing order items; they keep the unit price snapshotted at
// order time.
func (uc *UpdateUseCaseImpl) Execute(ctx context.Context, input UpdateInput) (Output, error) {
	if err := requireAdmin(ctx, uc.Users, input.ActingUserID); err != nil {
		return Output{}, err
	}

	current, err := uc.Products.FindByID(ctx, input.ProductID)
	if err != nil {
		return Output{}, err
	}

	name := current.Name
	if input.Name != nil {
		name = *input.Name
	}
	category := current.Category
	if input.Category != nil {
		category = *input.Category
	}
	price := current.Price
	if input.PriceCents != nil {
		price = entity.Cents(*input.PriceCents)
	}

	// Revalidates the merged state, so a partial update cannot sneak in an
	// empty name or a negative price.
	updated, err := entity.NewProduct(name, category, price)
	if err != nil {
		return Output{}, err
	}
	updated.ID = current.ID

	if err := uc.Products.Update(ctx, updated); err != nil {
		return Output{}, err
	}

	out := ToOutput(updated)
	uc.Logger.Info(ctx, "product updated", logger.Int64("product_id", out.ID))
	return out, nil
}
