package request

import (
	"context"
)

type CreateUseCase interface {
	Execute(ctx context.Context, input CreateInput) (Output, error)
}

type AssignUseCase interface {
	Execute(ctx context.Context, input AssignInput) (Output, error)
}

type UpdateStatusUseCase interface {
	Execute(ctx context.Context, input UpdateStatusInput) (Output, error)
}
