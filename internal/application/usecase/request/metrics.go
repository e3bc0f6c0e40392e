package request

import (
	"context"
	"time"

	"github.com/ctrlmarket/ctrlmarket/pkg/metrics"
)

type CreateMetricsDecorator struct {
	Next    CreateUseCase
	Metrics metrics.Metrics
}

func (d *CreateMetricsDecorator) Execute(ctx context.Context, input CreateInput) (Output, error) {
	start := time.Now()
	output, err := d.Next.Execute(ctx, input)
	d.Metrics.RecordUseCaseExecution("CreateServiceRequest", err == nil, time.Since(start))
	if err == nil {
		d.Metrics.RecordRequestCreated(output.ServiceType)
	}
	return output, err
}

type AssignMetricsDecorator struct {
	Next    AssignUseCase
	Metrics metrics.Metrics
}

func (d *AssignMetricsDecorator) Execute(ctx context.Context, input AssignInput) (Output, error) {
	start := time.Now()
	output, err := d.Next.Execute(ctx, input)
	d.Metrics.RecordUseCaseExecution("AssignSpecialist", err == nil, time.Since(start))
	if err == nil {
		d.Metrics.RecordRequestAssigned(output.Status)
	}
	return output, err
}

type UpdateStatusMetricsDecorator struct {
	Next    UpdateStatusUseCase
	Metrics metrics.Metrics
}

func (d *UpdateStatusMetricsDecorator) Execute(ctx context.Context, input UpdateStatusInput) (Output, error) {
	start := time.Now()
	output, err := d.Next.Execute(ctx, input)
	d.Metrics.RecordUseCaseExecution("UpdateRequestStatus", err == nil, time.Since(start))
	return output, err
}
