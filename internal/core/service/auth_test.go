package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "authservice/pkg/test"

	"authservice/internal/adapter/cache"
	"authservice/internal/adapter/database/sqlite/repository"
	"authservice/internal/adapter/token"
	"authservice/internal/core/domain"
	"authservice/internal/core/model/request"
	"authservice/internal/core/port"
	"authservice/internal/core/service"
	"authservice/internal/core/util"
)

type AuthUseCaseTestSuite struct {
	suite.Suite
	UseCase port.AuthService
	repo    port.UserRepository
	tokens  port.TokenService
	refresh port.RefreshTokenStore
}

func (s *AuthUseCaseTestSuite) SetupTest() {
	db := InitTestDB()
	client, _ := InitTestRedis(s.T())

	s.repo = repository.NewUserRepository(db)
	s.tokens = token.NewJwtService("test-signing-secret", time.Hour)
	s.refresh = cache.NewRefreshTokenStore(client, 24*time.Hour)

	s.UseCase = service.NewAuthService(s.repo, s.tokens, s.refresh)
}

func TestAuthUseCaseTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthUseCaseTestSuite))
}

func (s *AuthUseCaseTestSuite) signUp(email, password string) *domain.User {
	user, err := s.UseCase.Registration(context.Background(), &request.SignUpRequest{
		Email:    email,
		Password: password,
	})

	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), user)

	return user
}

func (s *AuthUseCaseTestSuite) TestUseCase_Registration_Success() {
	user := s.signUp("a@x.com", "longpassword1")

	assert.Equal(s.T(), "a@x.com", user.Email)
	assert.Equal(s.T(), domain.RoleUser, user.Role)
	assert.NotEmpty(s.T(), user.UUID.String())
	assert.False(s.T(), user.CreatedAt.IsZero())
}

func (s *AuthUseCaseTestSuite) TestUseCase_Registration_HashesPassword() {
	user := s.signUp("a@x.com", "longpassword1")

	assert.NotEqual(s.T(), "longpassword1", user.EncryptedPassword)
	assert.NoError(s.T(), util.ComparePassword("longpassword1", user.EncryptedPassword))
}

func (s *AuthUseCaseTestSuite) TestUseCase_Registration_UserAlreadyExists() {
	s.signUp("a@x.com", "longpassword1")

	_, err := s.UseCase.Registration(context.Background(), &request.SignUpRequest{
		Email:    "a@x.com",
		Password: "otherpassword2",
	})

	assert.ErrorIs(s.T(), err, domain.ErrUserAlreadyExists)

	// The losing attempt must not clobber the stored record.
	_, err = s.UseCase.Login(context.Background(), &request.LoginRequest{
		Email:    "a@x.com",
		Password: "longpassword1",
	})
	assert.NoError(s.T(), err)
}

func (s *AuthUseCaseTestSuite) TestUseCase_Registration_ConcurrentSameEmail() {
	const callers = 8

	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := s.UseCase.Registration(context.Background(), &request.SignUpRequest{
				Email:    "race@x.com",
				Password: "longpassword1",
			})
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	successes := 0
	conflicts := 0

	for err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(s.T(), err, domain.ErrUserAlreadyExists):
			conflicts++
		}
	}

	assert.Equal(s.T(), 1, successes)
	assert.Equal(s.T(), callers-1, conflicts)
}

func (s *AuthUseCaseTestSuite) TestUseCase_Login_Success() {
	user := s.signUp("a@x.com", "longpassword1")

	pair, err := s.UseCase.Login(context.Background(), &request.LoginRequest{
		Email:    "a@x.com",
		Password: "longpassword1",
	})

	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), pair.AccessToken)
	assert.NotEmpty(s.T(), pair.RefreshToken)

	subject, err := s.tokens.Verify(pair.AccessToken)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), user.UUID.String(), subject)

	resolved, err := s.refresh.Resolve(context.Background(), pair.RefreshToken)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), user.UUID.String(), resolved)
}

func (s *AuthUseCaseTestSuite) TestUseCase_Login_FailuresAreIndistinguishable() {
	s.signUp("a@x.com", "longpassword1")

	_, wrongPassword := s.UseCase.Login(context.Background(), &request.LoginRequest{
		Email:    "a@x.com",
		Password: "wrongpassword",
	})

	_, unknownEmail := s.UseCase.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@x.com",
		Password: "longpassword1",
	})

	assert.ErrorIs(s.T(), wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(s.T(), unknownEmail, domain.ErrInvalidCredentials)
	assert.Equal(s.T(), wrongPassword.Error(), unknownEmail.Error())
}

func (s *AuthUseCaseTestSuite) TestUseCase_Refresh_RotatesToken() {
	user := s.signUp("a@x.com", "longpassword1")

	pair, err := s.UseCase.Login(context.Background(), &request.LoginRequest{
		Email:    "a@x.com",
		Password: "longpassword1",
	})
	assert.NoError(s.T(), err)

	rotated, err := s.UseCase.Refresh(context.Background(), pair.RefreshToken)

	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), rotated.AccessToken)
	assert.NotEqual(s.T(), pair.RefreshToken, rotated.RefreshToken)

	subject, err := s.tokens.Verify(rotated.AccessToken)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), user.UUID.String(), subject)

	// The presented token is gone after rotation.
	_, err = s.refresh.Resolve(context.Background(), pair.RefreshToken)
	assert.ErrorIs(s.T(), err, domain.ErrRefreshTokenNotFound)

	resolved, err := s.refresh.Resolve(context.Background(), rotated.RefreshToken)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), user.UUID.String(), resolved)
}

func (s *AuthUseCaseTestSuite) TestUseCase_Refresh_UnknownToken() {
	_, err := s.UseCase.Refresh(context.Background(), "never-issued")

	assert.ErrorIs(s.T(), err, domain.ErrRefreshTokenNotFound)
}

func (s *AuthUseCaseTestSuite) TestUseCase_Logout_RevokesRefreshToken() {
	s.signUp("a@x.com", "longpassword1")

	pair, err := s.UseCase.Login(context.Background(), &request.LoginRequest{
		Email:    "a@x.com",
		Password: "longpassword1",
	})
	assert.NoError(s.T(), err)

	assert.NoError(s.T(), s.UseCase.Logout(context.Background(), pair.RefreshToken))

	_, err = s.UseCase.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(s.T(), err, domain.ErrRefreshTokenNotFound)

	// Logging out twice is harmless.
	assert.NoError(s.T(), s.UseCase.Logout(context.Background(), pair.RefreshToken))
}
