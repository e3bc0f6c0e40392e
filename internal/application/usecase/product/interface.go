package product

import (
	"context"
)

type CreateUseCase interface {
	Execute(ctx context.Context, input CreateInput) (Output, error)
}

type UpdateUseCase interface {
	Execute(ctx context.Context, input UpdateInput) (Output, error)
}

type DeleteUseCase interface {
	Execute(ctx context.Context, input DeleteInput) error
}
