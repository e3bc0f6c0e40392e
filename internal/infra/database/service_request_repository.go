package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
)

type ServiceRequestRepositoryImpl struct {
	db DBTX
}

func NewServiceRequestRepository(db DBTX) *ServiceRequestRepositoryImpl {
	return &ServiceRequestRepositoryImpl{db: db}
}

func (r *ServiceRequestRepositoryImpl) Save(ctx context.Context, request *entity.ServiceRequest) error {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO service_requests (service_type, request_date, status, customer_id, specialist_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING request_id`,
		string(request.ServiceType()), request.RequestDate(), string(request.Status()),
		request.CustomerID(), request.SpecialistID(),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("%w: insert service request: %w", entity.ErrStorage, err)
	}
	request.SetID(id)
	return nil
}

func (r *ServiceRequestRepositoryImpl) FindByID(ctx context.Context, id int64) (*entity.ServiceRequest, error) {
	var (
		serviceType  string
		requestDate  time.Time
		status       string
		customerID   int64
		specialistID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT service_type, request_date, status, customer_id, specialist_id
		 FROM service_requests WHERE request_id = $1`,
		id,
	).Scan(&serviceType, &requestDate, &status, &customerID, &specialistID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: service request %d", entity.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query service request: %w", entity.ErrStorage, err)
	}

	var specialist *int64
	if specialistID.Valid {
		specialist = &specialistID.Int64
	}
	return entity.RestoreServiceRequest(id, customerID, specialist,
		entity.ServiceType(serviceType), requestDate, entity.RequestStatus(status))
}

// Assign is guarded on Pending status and an empty specialist slot, so two
// racing assigns on the same request cannot both succeed: the second update
// matches zero rows.
func (r *ServiceRequestRepositoryImpl) Assign(ctx context.Context, id, specialistID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE service_requests
		 SET specialist_id = $1, status = $2
		 WHERE request_id = $3 AND status = $4 AND specialist_id IS NULL`,
		specialistID, string(entity.RequestStatusInProgress), id, string(entity.RequestStatusPending),
	)
	if err != nil {
		return fmt.Errorf("%w: assign specialist: %w", entity.ErrStorage, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: assign specialist: %w", entity.ErrStorage, err)
	}
	if affected == 0 {
		return entity.ErrInvalidStateTransition
	}
	return nil
}

func (r *ServiceRequestRepositoryImpl) UpdateStatus(ctx context.Context, id int64, from, to entity.RequestStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE service_requests SET status = $1 WHERE request_id = $2 AND status = $3`,
		string(to), id, string(from),
	)
	if err != nil {
		return fmt.Errorf("%w: update request status: %w", entity.ErrStorage, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: update request status: %w", entity.ErrStorage, err)
	}
	if affected == 0 {
		return entity.ErrInvalidStateTransition
	}
	return nil
}

func (r *ServiceRequestRepositoryImpl) List(ctx context.Context, customerID, specialistID int64, status entity.RequestStatus) ([]*entity.ServiceRequest, error) {
	query := `SELECT request_id, service_type, request_date, status, customer_id, specialist_id
	          FROM service_requests WHERE 1=1`
	args := []any{}

	if customerID != 0 {
		args = append(args, customerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if specialistID != 0 {
		args = append(args, specialistID)
		query += fmt.Sprintf(" AND specialist_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, string(status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY request_date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list service requests: %w", entity.ErrStorage, err)
	}
	defer rows.Close()

	var requests []*entity.ServiceRequest
	for rows.Next() {
		var (
			id, custID  int64
			serviceType string
			requestDate time.Time
			rowStatus   string
			specID      sql.NullInt64
		)
		if err := rows.Scan(&id, &serviceType, &requestDate, &rowStatus, &custID, &specID); err != nil {
			return nil, fmt.Errorf("%w: scan service request: %w", entity.ErrStorage, err)
		}
		var specialist *int64
		if specID.Valid {
			specialist = &specID.Int64
		}
		request, err := entity.RestoreServiceRequest(id, custID, specialist,
			entity.ServiceType(serviceType), requestDate, entity.RequestStatus(rowStatus))
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list service requests: %w", entity.ErrStorage, err)
	}
	return requests, nil
}
