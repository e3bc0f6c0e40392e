package product

import (
	"context"
	"fmt"

	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
	"github.com/ctrlmarket/ctrlmarket/pkg/logger"
)

// Row-backed fakes in the same shape as the other usecase packages. The
// referenced set stands in for the order_items foreign key: deleting a
// product in it fails the way ON DELETE RESTRICT would.

type fakeStore struct {
	users      map[int64]*entity.User
	products   map[int64]*entity.Product
	referenced map[int64]bool
	nextID     int64
}

func seededStore() *fakeStore {
	return &fakeStore{
		users: map[int64]*entity.User{
			1:  {ID: 1, Name: "Ada", Role: entity.RoleAdmin},
			7:  {ID: 7, Name: "Carla", Role: entity.RoleCustomer},
			12: {ID: 12, Name: "Sam", Role: entity.RoleSpecialist},
		},
		products: map[int64]*entity.Product{
			1: {ID: 1, Name: "Laser Level", Category: "Tools", Price: 10000},
			2: {ID: 2, Name: "Wall Anchor Kit", Category: "Hardware", Price: 2550},
		},
		referenced: map[int64]bool{1: true},
		nextID:     100,
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

type fakeUsers struct{ store *fakeStore }

func (r *fakeUsers) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", entity.ErrNotFound, id)
	}
	return u, nil
}

type fakeProducts struct{ store *fakeStore }

func (r *fakeProducts) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	prod, ok := r.store.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", entity.ErrNotFound, id)
	}
	copied := *prod
	return &copied, nil
}

func (r *fakeProducts) List(ctx context.Context, category, search string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, prod := range r.store.products {
		copied := *prod
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeProducts) ListCategories(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (r *fakeProducts) Save(ctx context.Context, product *entity.Product) error {
	product.ID = r.store.id()
	copied := *product
	r.store.products[product.ID] = &copied
	return nil
}

func (r *fakeProducts) Update(ctx context.Context, product *entity.Product) error {
	if _, ok := r.store.products[product.ID]; !ok {
		return fmt.Errorf("%w: product %d", entity.ErrNotFound, product.ID)
	}
	copied := *product
	r.store.products[product.ID] = &copied
	return nil
}

func (r *fakeProducts) Delete(ctx context.Context, id int64) error {
	if _, ok := r.store.products[id]; !ok {
		return fmt.Errorf("%w: product %d", entity.ErrNotFound, id)
	}
	if r.store.referenced[id] {
		return fmt.Errorf("%w: product %d is referenced by order items", entity.ErrValidation, id)
	}
	delete(r.store.products, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, fields ...logger.Field) {}
func (nopLogger) Info(ctx context.Context, msg string, fields ...logger.Field)  {}
func (nopLogger) Warn(ctx context.Context, msg string, fields ...logger.Field)  {}
func (nopLogger) Error(ctx context.Context, msg string, fields ...logger.Field) {}
func (l nopLogger) With(fields ...logger.Field) logger.Logger                   { return l }
