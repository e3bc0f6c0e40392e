package product

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
	d.Metrics.RecordUseCaseExecution("CreateProduct", err == nil, time.Since(start))
	return output, err
}

type UpdateMetricsDecorator struct {
	Next    UpdateUseCase
	Metrics metrics.Metrics
}

func (d *UpdateMetricsDecorator) Execute(ctx context.Context, input UpdateInput) (Output, error) {
	start := time.Now()
	output, err := d.Next.Execute(ctx, input)
	d.Metrics.RecordUseCaseExecution("UpdateProduct", err == nil, time.Since(start))
	return output, err
}

type DeleteMetricsDecorator struct {
	Next    DeleteUseCase
	Metrics metrics.Metrics
}

func (d *DeleteMetricsDecorator) Execute(ctx context.Context, input DeleteInput) error {
	start := time.Now()
	err := d.Next.Execute(ctx, input)
	d.Metrics.RecordUseCaseExecution("DeleteProduct", err == nil, time.Since(start))
	return err
}
