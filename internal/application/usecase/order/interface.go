package order

import (
	"context"
)

type CreateUseCase interface {
	Execute(ctx context.Context, input CreateInput) (Output, error)
}

type CancelUseCase interface {
	Execute(ctx context.Context, input CancelInput) (Output, error)
}

type CompleteUseCase interface {
	Execute(ctx context.Context, input CompleteInput) (Output, error)
}
