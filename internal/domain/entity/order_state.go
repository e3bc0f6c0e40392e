package entity

// OrderState encodes the order status machine:
// Pending -> Completed, Pending -> Cancelled; both targets terminal.
type OrderState interface {
	Name() OrderStatus
	Complete(o *Order) error
	Cancel(o *Order) error
}

func orderStateFor(status OrderStatus) (OrderState, error) {
	switch status {
	case OrderStatusPending:
		return &OrderPendingState{}, nil
	case OrderStatusCompleted:
		return &OrderCompletedState{}, nil
	case OrderStatusCancelled:
		return &OrderCancelledState{}, nil
	}
	return nil, ErrInvalidStateTransition
}

type OrderPendingState struct{}

func (s *OrderPendingState) Name() OrderStatus { return OrderStatusPending }

func (s *OrderPendingState) Complete(o *Order) error {
	o.TransitionTo(&OrderCompletedState{})
	return nil
}

func (s *OrderPendingState) Cancel(o *Order) error {
	o.TransitionTo(&OrderCancelledState{})
	return nil
}

type OrderCompletedState struct{}

func (s *OrderCompletedState) Name() OrderStatus       { return OrderStatusCompleted }
func (s *OrderCompletedState) Complete(o *Order) error { return ErrInvalidStateTransition }
func (s *OrderCompletedState) Cancel(o *Order) error   { return ErrInvalidStateTransition }

type OrderCancelledState struct{}

func (s *OrderCancelledState) Name() OrderStatus       { return OrderStatusCancelled }
func (s *OrderCancelledState) Complete(o *Order) error { return ErrInvalidStateTransition }
func (s *OrderCancelledState) Cancel(o *Order) error   { return ErrInvalidStateTransition }
