package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"authservice/internal/core/domain"
	"authservice/internal/core/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo}
}

func (us *UserService) GetUserByUUID(ctx context.Context, uuid string) (domain.User, error) {
	user, err := us.repo.GetByUUID(ctx, uuid)

	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}

		slog.Error("User#GetUserByUUID", "get_by_uuid", err)
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return user, nil
}
