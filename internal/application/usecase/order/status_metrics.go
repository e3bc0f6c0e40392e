package order

import (
	"context"
	"time"

	"github.com/ctrlmarket/ctrlmarket/pkg/metrics"
)

type CancelMetricsDecorator struct {
	Next    CancelUseCase
	Metrics metrics.Metrics
}

func (d *CancelMetricsDecorator) Execute(ctx context.Context, input CancelInput) (Output, error) {
	start := time.Now()
	output, err := d.Next.Execute(ctx, input)
	d.Metrics.RecordUseCaseExecution("CancelOrder", err == nil, time.Since(start))
	if err == nil {
		d.Metrics.RecordOrderStatusChange(output.Status)
	}
	return output, err
}

type CompleteMetricsDecorator struct {
	Next    CompleteUseCase
	Metrics metrics.Metrics
}

func (d *CompleteMetricsDecorator) Execute(ctx context.Context, input CompleteInput) (Output, error) {
	start := time.Now()
	output, err := d.Next.Execute(ctx, input)
	d.Metrics.RecordUseCaseExecution("CompleteOrder", err == nil, time.Since(start))
	if err == nil {
		d.Metrics.RecordOrderStatusChange(output.Status)
	}
	return output, err
}
