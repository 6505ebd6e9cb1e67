package users

import (
	"context"
	"errors"

	"linkmark/cmd/server/ctxkeys"
	"linkmark/cmd/server/handlers/handlerutil"
	"linkmark/cmd/server/handlers/httperr"
	"linkmark/internal/logger"
	"linkmark/internal/services/auth"
	"linkmark/internal/services/users"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service defines the interface for the users service
type Service interface {
	Edit(ctx context.Context, userID bson.ObjectID, req users.UpdateUserRequest) (*users.UserResponse, error)
}

// Handlers contains the profile HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new users handlers
func NewHandlers(service Service, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// Me returns the authenticated user. The password hash field never
// serializes (json:"-"), so the response is the profile only.
func (h *Handlers) Me(c *fiber.Ctx) error {
	user, err := ctxkeys.Principal(c)
	if err != nil {
		return err
	}

	return c.JSON(users.UserResponse{User: user})
}

// EditMe applies a partial profile update to the authenticated user.
// The target is always the caller; the body cannot name another account.
func (h *Handlers) EditMe(c *fiber.Ctx) error {
	user, err := ctxkeys.Principal(c)
	if err != nil {
		return err
	}

	var req users.UpdateUserRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "EditMe"); err != nil {
		return err
	}

	resp, err := h.service.Edit(c.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, auth.ErrCredentialsTaken) {
			return httperr.Forbidden(err.Error())
		}
		if errors.Is(err, auth.ErrUserNotFound) {
			return httperr.Fail(httperr.ErrUnauthorized)
		}
		logger.L().Error("edit profile failed", "handler", "EditMe", "user_id", user.ID.Hex(), "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.JSON(resp)
}
