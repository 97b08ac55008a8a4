package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"authservice/internal/adapter/http/helper"
	"authservice/internal/adapter/http/validation"
	"authservice/internal/core/domain"
	"authservice/internal/core/model/request"
	"authservice/internal/core/model/response"
	"authservice/internal/core/port"
	"authservice/internal/core/util"
	"authservice/pkg/tracing"
)

type AuthHandler struct {
	svc     port.AuthService
	metrics *tracing.AppMetrics
}

func NewAuthHandler(svc port.AuthService, metrics *tracing.AppMetrics) *AuthHandler {
	return &AuthHandler{
		svc:     svc,
		metrics: metrics,
	}
}

func (a *AuthHandler) RegisterByEmailAndPassword(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.SignUpRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user, err := a.svc.Registration(ctx, &params)

	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			a.record(c, "registration", "conflict")
			helper.SendConflictError(c, "User with this email already exists")
			return
		}

		slog.Error("AuthHandler#RegisterByEmailAndPassword", "error", err)
		a.record(c, "registration", "error")
		helper.SendInternalError(c)
		return
	}

	a.record(c, "registration", "success")

	userResponse := response.UserResponse{
		UUID:      user.UUID.String(),
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}

	helper.SendSuccess(c, http.StatusCreated, userResponse)
}

func (a *AuthHandler) AuthByEmailAndPassword(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	pair, err := a.svc.Login(ctx, &params)

	if err != nil {
		// Unknown email and wrong password come out identical on purpose.
		if errors.Is(err, domain.ErrInvalidCredentials) {
			a.record(c, "login", "invalid_credentials")
			helper.SendUnauthorizedError(c, "Invalid email or password")
			return
		}

		slog.Error("AuthHandler#AuthByEmailAndPassword", "error", err)
		a.record(c, "login", "error")
		helper.SendInternalError(c)
		return
	}

	a.record(c, "login", "success")
	c.JSON(http.StatusOK, pair)
}

func (a *AuthHandler) RefreshToken(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.RefreshRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	pair, err := a.svc.Refresh(ctx, params.RefreshToken)

	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenNotFound) {
			a.record(c, "refresh", "not_found")
			helper.SendUnauthorizedError(c, "Invalid or expired refresh token")
			return
		}

		slog.Error("AuthHandler#RefreshToken", "error", err)
		a.record(c, "refresh", "error")
		helper.SendInternalError(c)
		return
	}

	a.record(c, "refresh", "success")
	c.JSON(http.StatusOK, pair)
}

func (a *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.LogoutRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	if err := a.svc.Logout(ctx, params.RefreshToken); err != nil {
		slog.Error("AuthHandler#Logout", "error", err)
		a.record(c, "logout", "error")
		helper.SendInternalError(c)
		return
	}

	a.record(c, "logout", "success")
	helper.SendSuccess(c, http.StatusOK, nil, "Logged out")
}

func (a *AuthHandler) record(c *gin.Context, operation, result string) {
	if a.metrics != nil {
		a.metrics.RecordAuthOperation(c.Request.Context(), operation, result)
	}
}
