package order

import (
	"context"
	"fmt"
	"time"

	"github.com/ctrlmarket/ctrlmarket/internal/application/port/outbound"
	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
	"github.com/ctrlmarket/ctrlmarket/pkg/logger"
)

// The fakes store plain rows, the way a database would, and rehydrate
// entities on read. The fake unit of work snapshots the rows before running
// fn and restores them on error, so rollback behavior is observable.

type orderRow struct {
	id         int64
	customerID int64
	orderDate  time.Time
	status     entity.OrderStatus
	total      entity.Cents
	items      []entity.OrderItem
}

type outboxRow struct {
	eventID     string
	aggregateID string
	eventType   string
	payload     []byte
	topic       string
}

type fakeStore struct {
	users    map[int64]*entity.User
	products map[int64]*entity.Product
	orders   map[int64]orderRow
	outbox   []outboxRow
	nextID   int64

	failOutbox bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[int64]*entity.User),
		products: make(map[int64]*entity.Product),
		orders:   make(map[int64]orderRow),
		nextID:   100,
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Do(ctx context.Context, fn func(p outbound.RepositoryProvider) error) error {
	ordersBackup := make(map[int64]orderRow, len(u.store.orders))
	for k, v := range u.store.orders {
		ordersBackup[k] = v
	}
	outboxBackup := append([]outboxRow(nil), u.store.outbox...)
	nextIDBackup := u.store.nextID

	if err := fn(&fakeProvider{store: u.store}); err != nil {
		u.store.orders = ordersBackup
		u.store.outbox = outboxBackup
		u.store.nextID = nextIDBackup
		return err
	}
	return nil
}

type fakeProvider struct {
	store *fakeStore
}

func (p *fakeProvider) Users() outbound.UserRepository       { return &fakeUsers{store: p.store} }
func (p *fakeProvider) Products() outbound.ProductRepository { return &fakeProducts{store: p.store} }
func (p *fakeProvider) Orders() outbound.OrderRepository     { return &fakeOrders{store: p.store} }
func (p *fakeProvider) ServiceRequests() outbound.ServiceRequestRepository {
	panic("not used in order tests")
}
func (p *fakeProvider) Outbox() outbound.OutboxRepository { return &fakeOutbox{store: p.store} }

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
	delete(r.store.products, id)
	return nil
}

type fakeOrders struct{ store *fakeStore }

func (r *fakeOrders) Save(ctx context.Context, order *entity.Order) error {
	order.SetID(r.store.id())
	items := make([]entity.OrderItem, len(order.Items()))
	copy(items, order.Items())
	for i := range items {
		items[i].ID = r.store.id()
	}
	r.store.orders[order.ID()] = orderRow{
		id:         order.ID(),
		customerID: order.CustomerID(),
		orderDate:  order.OrderDate(),
		status:     order.Status(),
		total:      order.Total(),
		items:      items,
	}
	return nil
}

func (r *fakeOrders) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	row, ok := r.store.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order %d", entity.ErrNotFound, id)
	}
	return entity.RestoreOrder(row.id, row.customerID, row.orderDate, row.status, row.total, row.items)
}

func (r *fakeOrders) UpdateStatus(ctx context.Context, id int64, from, to entity.OrderStatus) error {
	row, ok := r.store.orders[id]
	if !ok {
		return fmt.Errorf("%w: order %d", entity.ErrNotFound, id)
	}
	if row.status != from {
		return entity.ErrInvalidStateTransition
	}
	row.status = to
	r.store.orders[id] = row
	return nil
}

func (r *fakeOrders) List(ctx context.Context, customerID int64, status entity.OrderStatus) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, row := range r.store.orders {
		if customerID != 0 && row.customerID != customerID {
			continue
		}
		if status != "" && row.status != status {
			continue
		}
		o, err := entity.RestoreOrder(row.id, row.customerID, row.orderDate, row.status, row.total, row.items)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

type fakeOutbox struct{ store *fakeStore }

func (r *fakeOutbox) SaveEvent(ctx context.Context, eventID, aggregateID, eventType string, payload []byte, topic string) error {
	if r.store.failOutbox {
		return fmt.Errorf("%w: outbox insert failed", entity.ErrStorage)
	}
	r.store.outbox = append(r.store.outbox, outboxRow{
		eventID:     eventID,
		aggregateID: aggregateID,
		eventType:   eventType,
		payload:     payload,
		topic:       topic,
	})
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, fields ...logger.Field) {}
func (nopLogger) Info(ctx context.Context, msg string, fields ...logger.Field)  {}
func (nopLogger) Warn(ctx context.Context, msg string, fields ...logger.Field)  {}
func (nopLogger) Error(ctx context.Context, msg string, fields ...logger.Field) {}
func (l nopLogger) With(fields ...logger.Field) logger.Logger                   { return l }
