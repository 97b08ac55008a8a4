package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "authservice/pkg/test"

	"authservice/internal/adapter/database/sqlite/repository"
	"authservice/internal/core/domain"
	"authservice/internal/core/port"
	"authservice/internal/core/service"
	"authservice/pkg/test/factory"
)

type UserUseCaseTestSuite struct {
	suite.Suite
	UseCase port.UserService
	repo    port.UserRepository
}

func (s *UserUseCaseTestSuite) SetupTest() {
	s.repo = repository.NewUserRepository(InitTestDB())
	s.UseCase = service.NewUserService(s.repo)
}

func TestUserUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(UserUseCaseTestSuite))
}

func (s *UserUseCaseTestSuite) TestUseCase_GetUserByUUID() {
	user := factory.NewUser[domain.User](map[string]any{
		"UUID":      uuid.New(),
		"Email":     "a@x.com",
		"Role":      domain.RoleUser,
		"CreatedAt": time.Now().UTC().Truncate(time.Second),
	})

	_, err := s.repo.Create(context.Background(), user)
	assert.NoError(s.T(), err)

	found, err := s.UseCase.GetUserByUUID(context.Background(), user.UUID.String())

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "a@x.com", found.Email)
	assert.Equal(s.T(), user.UUID, found.UUID)
}

func (s *UserUseCaseTestSuite) TestUseCase_GetUserByUUID_NotFound() {
	_, err := s.UseCase.GetUserByUUID(context.Background(), uuid.NewString())

	assert.ErrorIs(s.T(), err, domain.ErrUserNotFound)
}
