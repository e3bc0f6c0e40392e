package request

import (
	"context"
	"fmt"
	"time"

	"github.com/ctrlmarket/ctrlmarket/internal/application/port/outbound"
	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
	"github.com/ctrlmarket/ctrlmarket/pkg/logger"
)

type requestRow struct {
	id           int64
	serviceType  entity.ServiceType
	requestDate  time.Time
	status       entity.RequestStatus
	customerID   int64
	specialistID *int64
}

type outboxRow struct {
	eventID   string
	eventType string
	topic     string
}

type fakeStore struct {
	users    map[int64]*entity.User
	requests map[int64]requestRow
	outbox   []outboxRow
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[int64]*entity.User),
		requests: make(map[int64]requestRow),
		nextID:   100,
	}
}

func seededStore() *fakeStore {
	store := newFakeStore()
	store.users[7] = &entity.User{ID: 7, Name: "Carla", Role: entity.RoleCustomer}
	store.users[12] = &entity.User{ID: 12, Name: "Sam", Role: entity.RoleSpecialist}
	store.users[13] = &entity.User{ID: 13, Name: "Nia", Role: entity.RoleSpecialist}
	store.users[1] = &entity.User{ID: 1, Name: "Ada", Role: entity.RoleAdmin}
	return store
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Do(ctx context.Context, fn func(p outbound.RepositoryProvider) error) error {
	backup := make(map[int64]requestRow, len(u.store.requests))
	for k, v := range u.store.requests {
		backup[k] = v
	}
	outboxBackup := append([]outboxRow(nil), u.store.outbox...)

	if err := fn(&fakeProvider{store: u.store}); err != nil {
		u.store.requests = backup
		u.store.outbox = outboxBackup
		return err
	}
	return nil
}

type fakeProvider struct {
	store *fakeStore
}

func (p *fakeProvider) Users() outbound.UserRepository { return &fakeUsers{store: p.store} }
func (p *fakeProvider) Products() outbound.ProductRepository {
	panic("not used in request tests")
}
func (p *fakeProvider) Orders() outbound.OrderRepository {
	panic("not used in request tests")
}
func (p *fakeProvider) ServiceRequests() outbound.ServiceRequestRepository {
	return &fakeRequests{store: p.store}
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

type fakeRequests struct{ store *fakeStore }

func (r *fakeRequests) Save(ctx context.Context, request *entity.ServiceRequest) error {
	r.store.nextID++
	request.SetID(r.store.nextID)
	r.store.requests[request.ID()] = requestRow{
		id:           request.ID(),
		serviceType:  request.ServiceType(),
		requestDate:  request.RequestDate(),
		status:       request.Status(),
		customerID:   request.CustomerID(),
		specialistID: request.SpecialistID(),
	}
	return nil
}

func (r *fakeRequests) FindByID(ctx context.Context, id int64) (*entity.ServiceRequest, error) {
	row, ok := r.store.requests[id]
	if !ok {
		return nil, fmt.Errorf("%w: service request %d", entity.ErrNotFound, id)
	}
	return entity.RestoreServiceRequest(row.id, row.customerID, row.specialistID, row.serviceType, row.requestDate, row.status)
}

func (r *fakeRequests) Assign(ctx context.Context, id, specialistID int64) error {
	row, ok := r.store.requests[id]
	if !ok {
		return fmt.Errorf("%w: service request %d", entity.ErrNotFound, id)
	}
	if row.status != entity.RequestStatusPending || row.specialistID != nil {
		return entity.ErrInvalidStateTransition
	}
	row.specialistID = &specialistID
	row.status = entity.RequestStatusInProgress
	r.store.requests[id] = row
	return nil
}

func (r *fakeRequests) UpdateStatus(ctx context.Context, id int64, from, to entity.RequestStatus) error {
	row, ok := r.store.requests[id]
	if !ok {
		return fmt.Errorf("%w: service request %d", entity.ErrNotFound, id)
	}
	if row.status != from {
		return entity.ErrInvalidStateTransition
	}
	row.status = to
	r.store.requests[id] = row
	return nil
}

func (r *fakeRequests) List(ctx context.Context, customerID, specialistID int64, status entity.RequestStatus) ([]*entity.ServiceRequest, error) {
	var out []*entity.ServiceRequest
	for _, row := range r.store.requests {
		if customerID != 0 && row.customerID != customerID {
			continue
		}
		if specialistID != 0 && (row.specialistID == nil || *row.specialistID != specialistID) {
			continue
		}
		if status != "" && row.status != status {
			continue
		}
		req, err := entity.RestoreServiceRequest(row.id, row.customerID, row.specialistID, row.serviceType, row.requestDate, row.status)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}

type fakeOutbox struct{ store *fakeStore }

func (r *fakeOutbox) SaveEvent(ctx context.Context, eventID, aggregateID, eventType string, payload []byte, topic string) error {
	r.store.outbox = append(r.store.outbox, outboxRow{eventID: eventID, eventType: eventType, topic: topic})
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, fields ...logger.Field) {}
func (nopLogger) Info(ctx context.Context, msg string, fields ...logger.Field)  {}
func (nopLogger) Warn(ctx context.Context, msg string, fields ...logger.Field)  {}
func (nopLogger) Error(ctx context.Context, msg string, fields ...logger.Field) {}
func (l nopLogger) With(fields ...logger.Field) logger.Logger                   { return l }
