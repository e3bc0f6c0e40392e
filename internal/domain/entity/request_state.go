package entity

// RequestState encodes the service request status machine:
// Pending -> In Progress (assign only), In Progress -> Completed,
// Pending/In Progress -> Cancelled; Completed and Cancelled terminal.
// Pending -> Completed without passing through In Progress is rejected.
type RequestState interface {
	Name() RequestStatus
	Assign(r *ServiceRequest, specialistID int64) error
	Complete(r *ServiceRequest) error
	Cancel(r *ServiceRequest) error
}

func requestStateFor(status RequestStatus) (RequestState, error) {
	switch status {
	case RequestStatusPending:
		return &RequestPendingState{}, nil
	case RequestStatusInProgress:
		return &RequestInProgressState{}, nil
	case RequestStatusCompleted:
		return &RequestCompletedState{}, nil
	case RequestStatusCancelled:
		return &RequestCancelledState{}, nil
	}
	return nil, ErrInvalidStateTransition
}

type RequestPendingState struct{}

func (s *RequestPendingState) Name() RequestStatus { return RequestStatusPending }

func (s *RequestPendingState) Assign(r *ServiceRequest, specialistID int64) error {
	r.setSpecialist(specialistID)
	r.TransitionTo(&RequestInProgressState{})
	return nil
}

func (s *RequestPendingState) Complete(r *ServiceRequest) error {
	return ErrInvalidStateTransition
}

func (s *RequestPendingState) Cancel(r *ServiceRequest) error {
	r.TransitionTo(&RequestCancelledState{})
	return nil
}

type RequestInProgressState struct{}

func (s *RequestInProgressState) Name() RequestStatus { return RequestStatusInProgress }

func (s *RequestInProgressState) Assign(r *ServiceRequest, specialistID int64) error {
	return ErrInvalidStateTransition
}

func (s *RequestInProgressState) Complete(r *ServiceRequest) error {
	r.TransitionTo(&RequestCompletedState{})
	return nil
}

func (s *RequestInProgressState) Cancel(r *ServiceRequest) error {
	r.TransitionTo(&RequestCancelledState{})
	return nil
}

type RequestCompletedState struct{}

func (s *RequestCompletedState) Name() RequestStatus { return RequestStatusCompleted }
func (s *RequestCompletedState) Assign(r *ServiceRequest, specialistID int64) error {
	return ErrInvalidStateTransition
}
func (s *RequestCompletedState) Complete(r *ServiceRequest) error { return ErrInvalidStateTransition }
func (s *RequestCompletedState) Cancel(r *ServiceRequest) error   { return ErrInvalidStateTransition }

type RequestCancelledState struct{}

func (s *RequestCancelledState) Name() RequestStatus { return RequestStatusCancelled }
func (s *RequestCancelledState) Assign(r *ServiceRequest, specialistID int64) error {
	return ErrInvalidStateTransition
}
func (s *RequestCancelledState) Complete(r *ServiceRequest) error { return ErrInvalidStateTransition }
func (s *RequestCancelledState) Cancel(r *ServiceRequest) error   { return ErrInvalidStateTransition }
