package request

import (
	"time"

	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
)

// Input

type CreateInput struct {
	CustomerID  int64  `json:"customer_id"`
	ServiceType string `json:"service_type"`
}

type AssignInput struct {
	RequestID    int64
	SpecialistID int64 `json:"specialist_id"`
	ActingUserID int64
}

type UpdateStatusInput struct {
	RequestID    int64
	Status       string `json:"status"`
	ActingUserID int64
}

// Output

type Output struct {
	ID           int64     `json:"id"`
	ServiceType  string    `json:"service_type"`
	Status       string    `json:"status"`
	RequestDate  time.Time `json:"request_date"`
	CustomerID   int64     `json:"customer_id"`
	SpecialistID *int64    `json:"specialist_id,omitempty"`
}

func ToOutput(r *entity.ServiceRequest) Output {
	return Output{
		ID:           r.ID(),
		ServiceType:  string(r.ServiceType()),
		Status:       string(r.Status()),
		RequestDate:  r.RequestDate(),
		CustomerID:   r.CustomerID(),
		SpecialistID: r.SpecialistID(),
	}
}
