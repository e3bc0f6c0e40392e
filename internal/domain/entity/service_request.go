package entity

import "time"

type ServiceType string

const (
	ServiceTypeInstallation ServiceType = "Installation"
	ServiceTypeSupport      ServiceType = "Support"
)

func (t ServiceType) Valid() bool {
	return t == ServiceTypeInstallation || t == ServiceTypeSupport
}

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "Pending"
	RequestStatusInProgress RequestStatus = "In Progress"
	RequestStatusCompleted  RequestStatus = "Completed"
	RequestStatusCancelled  RequestStatus = "Cancelled"
)

// ServiceRequest is an installation or support request filed by a customer.
// A specialist is attached on assignment, never at creation.
type ServiceRequest struct {
	id           int64
	serviceType  ServiceType
	requestDate  time.Time
	customerID   int64
	specialistID *int64
	state        RequestState
}

func NewServiceRequest(customerID int64, serviceType ServiceType) (*ServiceRequest, error) {
	if customerID <= 0 {
		return nil, ErrCustomerIsRequired
	}
	if !serviceType.Valid() {
		return nil, ErrUnknownServiceType
	}
	return &ServiceRequest{
		serviceType: serviceType,
		requestDate: time.Now(),
		customerID:  customerID,
		state:       &RequestPendingState{},
	}, nil
}

func RestoreServiceRequest(id, customerID int64, specialistID *int64, serviceType ServiceType, requestDate time.Time, status RequestStatus) (*ServiceRequest, error) {
	state, err := requestStateFor(status)
	if err != nil {
		return nil, err
	}
	return &ServiceRequest{
		id:           id,
		serviceType:  serviceType,
		requestDate:  requestDate,
		customerID:   customerID,
		specialistID: specialistID,
		state:        state,
	}, nil
}

// Assign attaches a specialist and moves the request to In Progress. The
// caller is responsible for checking the assignee's role; the request itself
// rejects self-assignment.
func (r *ServiceRequest) Assign(specialistID int64) error {
	if specialistID == r.customerID {
		return ErrSelfAssignment
	}
	return r.state.Assign(r, specialistID)
}

func (r *ServiceRequest) Complete() error { return r.state.Complete(r) }
func (r *ServiceRequest) Cancel() error   { return r.state.Cancel(r) }

// ApplyStatus maps a requested target status onto a state-machine action.
// In Progress is reachable only through Assign, and nothing returns to
// Pending.
func (r *ServiceRequest) ApplyStatus(status RequestStatus) error {
	switch status {
	case RequestStatusCompleted:
		return r.Complete()
	case RequestStatusCancelled:
		return r.Cancel()
	}
	return ErrInvalidStateTransition
}

func (r *ServiceRequest) TransitionTo(state RequestState) {
	r.state = state
}

func (r *ServiceRequest) setSpecialist(id int64) {
	r.specialistID = &id
}

func (r *ServiceRequest) ID() int64                { return r.id }
func (r *ServiceRequest) SetID(id int64)           { r.id = id }
func (r *ServiceRequest) ServiceType() ServiceType { return r.serviceType }
func (r *ServiceRequest) RequestDate() time.Time   { return r.requestDate }
func (r *ServiceRequest) CustomerID() int64        { return r.customerID }
func (r *ServiceRequest) SpecialistID() *int64     { return r.specialistID }
func (r *ServiceRequest) Status() RequestStatus    { return r.state.Name() }

// AssignedTo reports whether the given user is the assigned specialist.
func (r *ServiceRequest) AssignedTo(userID int64) bool {
	return r.specialistID != nil && *r.specialistID == userID
}
