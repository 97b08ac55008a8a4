package http

import (
	"authservice/internal/adapter/http/handler"
	"authservice/internal/core/port"
	"authservice/internal/core/service"
	"authservice/pkg/tracing"
)

type Container struct {
	UserRepo port.UserRepository

	AuthUseCase port.AuthService
	UserUseCase port.UserService

	AuthHandler *handler.AuthHandler
	UserHandler *handler.UserHandler
}

func NewContainer(userRepo port.UserRepository, tokens port.TokenService, refresh port.RefreshTokenStore, metrics *tracing.AppMetrics) *Container {
	authSvc := service.NewAuthService(userRepo, tokens, refresh)
	userSvc := service.NewUserService(userRepo)

	authHandler := handler.NewAuthHandler(authSvc, metrics)
	userHandler := handler.NewUserHandler(userSvc)

	return &Container{
		UserRepo: userRepo,

		AuthUseCase: authSvc,
		UserUseCase: userSvc,

		AuthHandler: authHandler,
		UserHandler: userHandler,
	}
}
