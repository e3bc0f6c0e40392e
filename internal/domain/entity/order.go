package entity

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// OrderItem carries a price snapshot; it never re-reads the product price.
type OrderItem struct {
	ID        int64
	ProductID int64
	Quantity  int
	UnitPrice Cents
}

func (i OrderItem) LineTotal() Cents {
	return i.UnitPrice.Mul(i.Quantity)
}

// Order is the aggregate the order use cases operate on. Total is always
// recomputed from the items, never set independently.
type Order struct {
	id         int64
	customerID int64
	orderDate  time.Time
	items      []OrderItem
	total      Cents
	state      OrderState
}

func NewOrder(customerID int64, items []OrderItem) (*Order, error) {
	o := &Order{
		customerID: customerID,
		orderDate:  time.Now(),
		items:      items,
		state:      &OrderPendingState{},
	}

	if err := o.validate(); err != nil {
		return nil, err
	}
	o.total = o.computeTotal()

	return o, nil
}

// RestoreOrder rehydrates an order from storage without re-running creation
// validation so historical rows remain loadable.
func RestoreOrder(id, customerID int64, orderDate time.Time, status OrderStatus, total Cents, items []OrderItem) (*Order, error) {
	state, err := orderStateFor(status)
	if err != nil {
		return nil, err
	}
	return &Order{
		id:         id,
		customerID: customerID,
		orderDate:  orderDate,
		items:      items,
		total:      total,
		state:      state,
	}, nil
}

func (o *Order) validate() error {
	if o.customerID <= 0 {
		return ErrCustomerIsRequired
	}
	if len(o.items) == 0 {
		return ErrOrderNeedsItems
	}
	for _, item := range o.items {
		if item.ProductID <= 0 {
			return fmt.Errorf("%w: order item needs a product", ErrValidation)
		}
		if item.Quantity <= 0 {
			return ErrQuantityMustBePos
		}
		if item.UnitPrice < 0 {
			return ErrPriceMustBeNonNeg
		}
	}
	return nil
}

func (o *Order) computeTotal() Cents {
	var total Cents
	for _, item := range o.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (o *Order) Complete() error { return o.state.Complete(o) }
func (o *Order) Cancel() error   { return o.state.Cancel(o) }

func (o *Order) TransitionTo(state OrderState) {
	o.state = state
}

func (o *Order) ID() int64            { return o.id }
func (o *Order) SetID(id int64)       { o.id = id }
func (o *Order) CustomerID() int64    { return o.customerID }
func (o *Order) OrderDate() time.Time { return o.orderDate }
func (o *Order) Items() []OrderItem   { return o.items }
func (o *Order) Total() Cents         { return o.total }
func (o *Order) Status() OrderStatus  { return o.state.Name() }

// OwnedBy reports whether the given user is the ordering customer.
func (o *Order) OwnedBy(userID int64) bool {
	return o.customerID == userID
}
