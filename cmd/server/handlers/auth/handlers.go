package auth

import (
	"context"
	"errors"

	"linkmark/cmd/server/handlers/handlerutil"
	"linkmark/cmd/server/handlers/httperr"
	"linkmark/internal/logger"
	"linkmark/internal/services/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Service defines the interface for the auth service
type Service interface {
	SignUp(ctx context.Context, req auth.SignUpRequest) (*auth.TokenResponse, error)
	SignIn(ctx context.Context, req auth.SignInRequest) (*auth.TokenResponse, error)
}

// Handlers contains the auth HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new auth handlers
func NewHandlers(service Service, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// SignUp handles user registration.
// Responds 201 with a bearer token; 403 when the email is taken; 400 on a
// malformed body.
func (h *Handlers) SignUp(c *fiber.Ctx) error {
	var req auth.SignUpRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "SignUp"); err != nil {
		return err
	}

	resp, err := h.service.SignUp(c.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrCredentialsTaken) {
			return httperr.Forbidden(err.Error())
		}
		logger.L().Error("signup service failed", "handler", "SignUp", "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.Status(201).JSON(resp)
}

// SignIn handles user authentication.
// Responds 200 with a bearer token; 403 with an identical message for both
// unknown email and wrong password; 400 on a malformed body.
func (h *Handlers) SignIn(c *fiber.Ctx) error {
	var req auth.SignInRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "SignIn"); err != nil {
		return err
	}

	resp, err := h.service.SignIn(c.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrCredentialsIncorrect) {
			return httperr.Forbidden(err.Error())
		}
		logger.L().Error("signin service failed", "handler", "SignIn", "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.JSON(resp)
}
