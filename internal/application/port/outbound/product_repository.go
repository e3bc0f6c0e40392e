package outbound

import (
	"context"

	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
)

type ProductRepository interface {
	// FindByID fails with entity.ErrNotFound when the product does not exist.
	FindByID(ctx context.Context, id int64) (*entity.Product, error)
	// List filters by category and a name/category search term; empty strings
	// mean no filter.
	List(ctx context.Context, category, search string) ([]*entity.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	// Save inserts the product and sets its id.
	Save(ctx context.Context, product *entity.Product) error
	// Update rewrites name, category and price; entity.ErrNotFound when the
	// product does not exist. Existing order items keep their snapshotted
	// unit price.
	Update(ctx context.Context, product *entity.Product) error
	// Delete fails with entity.ErrValidation while order items still
	// reference the product (the store restricts the delete), and with
	// entity.ErrNotFound when it does not exist.
	Delete(ctx context.Context, id int64) error
}
