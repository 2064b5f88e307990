package repository

import (
	"context"
	"errors"

	"github.com/rugue/FullStackEcommerce/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type UserRepository interface {
	Create(ctx context.Context, user model.User) (int64, error)
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
}
