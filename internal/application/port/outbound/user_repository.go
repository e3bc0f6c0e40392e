package outbound

import (
	"context"

	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
)

type UserRepository interface {
	// FindByID fails with entity.ErrNotFound when the user does not exist.
	FindByID(ctx context.Context, id int64) (*entity.User, error)
}
