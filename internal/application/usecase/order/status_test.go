package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
)

func placeOrder(t *testing.T, store *fakeStore, customerID int64) int64 {
	t.Helper()
	uc := NewCreateUseCase(&fakeUow{store: store}, nopLogger{})
	out, err := uc.Execute(context.Background(), CreateInput{
		CustomerID: customerID,
		Items:      []CreateItemInput{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	return out.ID
}

func TestCancelOrder(t *testing.T) {
	t.Run("Should let the owning customer cancel", func(t *testing.T) {
		store := seededStore()
		orderID := placeOrder(t, store, 7)
		uc := NewCancelUseCase(&fakeUow{store: store}, nopLogger{})

		out, err := uc.Execute(context.Background(), CancelInput{OrderID: orderID, ActingUserID: 7})

		require.NoError(t, err)
		assert.Equal(t, "Cancelled", out.Status)
		assert.Equal(t, entity.OrderStatusCancelled, store.orders[orderID].status)
	})

	t.Run("Should let an admin cancel", func(t *testing.T) {
		store := seededStore()
		orderID := placeOrder(t, store, 7)
		uc := NewCancelUseCase(&fakeUow{store: store}, nopLogger{})

		_, err := uc.Execute(context.Background(), CancelInput{OrderID: orderID, ActingUserID: 1})

		require.NoError(t, err)
	})

	t.Run("Should reject another customer", func(t *testing.T) {
		store := seededStore()
		orderID := placeOrder(t, store, 7)
		uc := NewCancelUseCase(&fakeUow{store: store}, nopLogger{})

		_, err := uc.Execute(context.Background(), CancelInput{OrderID: orderID, ActingUserID: 8})

		assert.ErrorIs(t, err, entity.ErrUnauthorized)
		assert.Equal(t, entity.OrderStatusPending, store.orders[orderID].status)
	})

	t.Run("Should return not found for a missing order", func(t *testing.T) {
		store := seededStore()
		uc := NewCancelUseCase(&fakeUow{store: store}, nopLogger{})

		_, err := uc.Execute(context.Background(), CancelInput{OrderID: 404, ActingUserID: 7})

		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("Should reject cancelling a completed order", func(t *testing.T) {
		store := seededStore()
		orderID := placeOrder(t, store, 7)
		complete := NewCompleteUseCase(&fakeUow{store: store}, nopLogger{})
		_, err := complete.Execute(context.Background(), CompleteInput{OrderID: orderID, ActingUserID: 1})
		require.NoError(t, err)

		uc := NewCancelUseCase(&fakeUow{store: store}, nopLogger{})
		_, err = uc.Execute(context.Background(), CancelInput{OrderID: orderID, ActingUserID: 7})

		assert.ErrorIs(t, err, entity.ErrInvalidStateTransition)
		assert.Equal(t, entity.OrderStatusCompleted, store.orders[orderID].status)
	})

	t.Run("Should reject cancelling twice", func(t *testing.T) {
		store := seededStore()
		orderID := placeOrder(t, store, 7)
		uc := NewCancelUseCase(&fakeUow{store: store}, nopLogger{})
		_, err := uc.Execute(context.Background(), CancelInput{OrderID: orderID, ActingUserID: 7})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), CancelInput{OrderID: orderID, ActingUserID: 7})

		assert.ErrorIs(t, err, entity.ErrInvalidStateTransition)
	})
}

func TestCompleteOrder(t *testing.T) {
	t.Run("Should let an admin complete a pending order", func(t *testing.T) {
		store := seededStore()
		orderID := placeOrder(t, store, 7)
		uc := NewCompleteUseCase(&fakeUow{store: store}, nopLogger{})

		out, err := uc.Execute(context.Background(), CompleteInput{OrderID: orderID, ActingUserID: 1})

		require.NoError(t, err)
		assert.Equal(t, "Completed", out.Status)
		assert.Equal(t, "order.completed", store.outbox[len(store.outbox)-1].eventType)
	})

	t.Run("Should reject the owning customer", func(t *testing.T) {
		store := seededStore()
		orderID := placeOrder(t, store, 7)
		uc := NewCompleteUseCase(&fakeUow{store: store}, nopLogger{})

		_, err := uc.Execute(context.Background(), CompleteInput{OrderID: orderID, ActingUserID: 7})

		assert.ErrorIs(t, err, entity.ErrUnauthorized)
	})

	t.Run("Should reject completing a cancelled order and leave it cancelled", func(t *testing.T) {
		store := seededStore()
		orderID := placeOrder(t, store, 7)
		cancel := NewCancelUseCase(&fakeUow{store: store}, nopLogger{})
		_, err := cancel.Execute(context.Background(), CancelInput{OrderID: orderID, ActingUserID: 7})
		require.NoError(t, err)

		uc := NewCompleteUseCase(&fakeUow{store: store}, nopLogger{})
		_, err = uc.Execute(context.Background(), CompleteInput{OrderID: orderID, ActingUserID: 1})

		assert.ErrorIs(t, err, entity.ErrInvalidStateTransition)
		assert.Equal(t, entity.OrderStatusCancelled, store.orders[orderID].status)
	})
}
