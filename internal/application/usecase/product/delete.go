package product

import (
	"context"

	"github.com/ctrlmarket/ctrlmarket/internal/application/port/outbound"
	"github.com/ctrlmarket/ctrlmarket/pkg/logger"
)

type DeleteUseCaseImpl struct {
	Products outbound.ProductRepository
	Users    outbound.UserRepository
	Logger   logger.Logger
}

func NewDeleteUseCase(products outbound.ProductRepository, users outbound.UserRepository, log logger.Logger) *DeleteUseCaseImpl {
	return &DeleteUseCaseImpl{Products: products, Users: users, Logger: log}
}

// Execute removes a product from the catalog. Admin only. A product still
// referenced by order items cannot be deleted; the store restricts it and
// the failure surfaces as a validation error.
func (uc *DeleteUseCaseImpl) Execute(ctx context.Context, input DeleteInput) error {
	if err := requireAdmin(ctx, uc.Users, input.ActingUserID); err != nil {
		return err
	}
	if err := uc.Products.Delete(ctx, input.ProductID); err != nil {
		return err
	}

	uc.Logger.Info(ctx, "product deleted", logger.Int64("product_id", input.ProductID))
	return nil
}
