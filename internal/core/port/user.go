package port

import (
	"context"

	"authservice/internal/core/domain"
)

type UserRepository interface {
	GetByUUID(ctx context.Context, uuid string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
}

type UserService interface {
	GetUserByUUID(ctx context.Context, uuid string) (domain.User, error)
}
