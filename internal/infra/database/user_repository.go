package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
)

type UserRepositoryImpl struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var u entity.User
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, name, email, phone, role FROM users WHERE user_id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %d", entity.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query user: %w", entity.ErrStorage, err)
	}
	return &u, nil
}
