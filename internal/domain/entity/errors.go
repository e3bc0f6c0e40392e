package entity

import (
	"errors"
	"fmt"
)

// Error kinds. Callers branch on these with errors.Is; the web layer maps
// them to status codes. Specific failures wrap a kind so both the kind and
// the detail survive the trip up the stack.
var (
	ErrValidation             = errors.New("validation failed")
	ErrUnauthorized           = errors.New("operation not permitted for this user")
	ErrNotFound               = errors.New("entity not found")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrStorage                = errors.New("storage failure")
)

var (
	ErrCustomerIsRequired = fmt.Errorf("%w: customer id is required", ErrValidation)
	ErrOrderNeedsItems    = fmt.Errorf("%w: an order needs at least one item", ErrValidation)
	ErrQuantityMustBePos  = fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	ErrPriceMustBeNonNeg  = fmt.Errorf("%w: price must not be negative", ErrValidation)
	ErrUnknownServiceType = fmt.Errorf("%w: unknown service type", ErrValidation)
	ErrSelfAssignment     = fmt.Errorf("%w: a customer cannot be assigned to their own request", ErrValidation)
	ErrSpecialistRequired = fmt.Errorf("%w: assignee must hold the Specialist role", ErrValidation)
)

// NewValidationError wraps an ad-hoc message in the validation kind.
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
