package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"authservice/internal/adapter/http/helper"
	"authservice/internal/adapter/http/middleware"
	"authservice/internal/core/domain"
	"authservice/internal/core/model/response"
	"authservice/internal/core/port"
)

type UserHandler struct {
	svc port.UserService
}

func NewUserHandler(svc port.UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// Me returns the record behind the verified access token subject.
func (u *UserHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	userUUID := c.GetString(middleware.UserUUIDKey)

	if userUUID == "" {
		helper.SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	user, err := u.svc.GetUserByUUID(ctx, userUUID)

	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helper.SendNotFoundError(c, "User not found")
			return
		}

		slog.Error("UserHandler#Me", "error", err)
		helper.SendInternalError(c)
		return
	}

	userResponse := response.UserResponse{
		UUID:      user.UUID.String(),
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}

	helper.SendSuccess(c, http.StatusOK, userResponse)
}
