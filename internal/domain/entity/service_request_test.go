package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewServiceRequest(t *testing.T) {
	request, err := NewServiceRequest(7, ServiceTypeInstallation)

	assert.Nil(t, err)
	assert.Equal(t, RequestStatusPending, request.Status())
	assert.Nil(t, request.SpecialistID())
}

func TestNewServiceRequest_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		customerID  int64
		serviceType ServiceType
		expectedErr error
	}{
		{"Should return error when customer is missing", 0, ServiceTypeSupport, ErrCustomerIsRequired},
		{"Should return error when service type is unknown", 7, ServiceType("Repair"), ErrUnknownServiceType},
		{"Should return error when service type is empty", 7, ServiceType(""), ErrUnknownServiceType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request, err := NewServiceRequest(tt.customerID, tt.serviceType)

			assert.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, request)
		})
	}
}

func TestServiceRequest_Assign(t *testing.T) {
	t.Run("Should assign a specialist to a pending request", func(t *testing.T) {
		request, _ := NewServiceRequest(7, ServiceTypeSupport)

		err := request.Assign(12)

		assert.Nil(t, err)
		assert.Equal(t, RequestStatusInProgress, request.Status())
		assert.True(t, request.AssignedTo(12))
	})

	t.Run("Should reject assigning the customer to their own request", func(t *testing.T) {
		request, _ := NewServiceRequest(7, ServiceTypeSupport)

		err := request.Assign(7)

		assert.ErrorIs(t, err, ErrSelfAssignment)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, RequestStatusPending, request.Status())
		assert.Nil(t, request.SpecialistID())
	})

	t.Run("Should reject assignment when request is not pending", func(t *testing.T) {
		request, _ := NewServiceRequest(7, ServiceTypeSupport)
		assert.Nil(t, request.Assign(12))

		err := request.Assign(13)

		assert.ErrorIs(t, err, ErrInvalidStateTransition)
		assert.True(t, request.AssignedTo(12))
	})
}

func TestServiceRequest_StateTransitions(t *testing.T) {
	t.Run("Should complete an in-progress request", func(t *testing.T) {
		request, _ := NewServiceRequest(7, ServiceTypeInstallation)
		assert.Nil(t, request.Assign(12))

		err := request.Complete()

		assert.Nil(t, err)
		assert.Equal(t, RequestStatusCompleted, request.Status())
	})

	t.Run("Should reject completing a pending request", func(t *testing.T) {
		request, _ := NewServiceRequest(7, ServiceTypeInstallation)

		err := request.Complete()

		assert.ErrorIs(t, err, ErrInvalidStateTransition)
		assert.Equal(t, RequestStatusPending, request.Status())
	})

	t.Run("Should cancel a pending request", func(t *testing.T) {
		request, _ := NewServiceRequest(7, ServiceTypeInstallation)

		err := request.Cancel()

		assert.Nil(t, err)
		assert.Equal(t, RequestStatusCancelled, request.Status())
	})

	t.Run("Should cancel an in-progress request", func(t *testing.T) {
		request, _ := NewServiceRequest(7, ServiceTypeInstallation)
		assert.Nil(t, request.Assign(12))

		err := request.Cancel()

		assert.Nil(t, err)
		assert.Equal(t, RequestStatusCancelled, request.Status())
	})

	t.Run("Should reject transitions out of terminal states", func(t *testing.T) {
		request, _ := NewServiceRequest(7, ServiceTypeInstallation)
		assert.Nil(t, request.Cancel())

		assert.ErrorIs(t, request.Complete(), ErrInvalidStateTransition)
		assert.ErrorIs(t, request.Cancel(), ErrInvalidStateTransition)
		assert.ErrorIs(t, request.Assign(12), ErrInvalidStateTransition)
	})
}

func TestServiceRequest_ApplyStatus(t *testing.T) {
	tests := []struct {
		name        string
		prepare     func(r *ServiceRequest)
		target      RequestStatus
		expectedErr error
		finalStatus RequestStatus
	}{
		{"Should complete from in progress", func(r *ServiceRequest) { _ = r.Assign(12) }, RequestStatusCompleted, nil, RequestStatusCompleted},
		{"Should cancel from pending", func(r *ServiceRequest) {}, RequestStatusCancelled, nil, RequestStatusCancelled},
		{"Should reject completed from pending", func(r *ServiceRequest) {}, RequestStatusCompleted, ErrInvalidStateTransition, RequestStatusPending},
		{"Should reject moving to in progress directly", func(r *ServiceRequest) {}, RequestStatusInProgress, ErrInvalidStateTransition, RequestStatusPending},
		{"Should reject moving back to pending", func(r *ServiceRequest) { _ = r.Assign(12) }, RequestStatusPending, ErrInvalidStateTransition, RequestStatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request, _ := NewServiceRequest(7, ServiceTypeSupport)
			tt.prepare(request)

			err := request.ApplyStatus(tt.target)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.Nil(t, err)
			}
			assert.Equal(t, tt.finalStatus, request.Status())
		})
	}
}

func TestRestoreServiceRequest(t *testing.T) {
	specialist := int64(12)

	request, err := RestoreServiceRequest(5, 7, &specialist, ServiceTypeSupport, time.Now(), RequestStatusInProgress)

	assert.Nil(t, err)
	assert.Equal(t, int64(5), request.ID())
	assert.True(t, request.AssignedTo(12))
	assert.Nil(t, request.Complete())
}
