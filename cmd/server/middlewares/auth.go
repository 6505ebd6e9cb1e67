package middlewares

import (
	"context"
	"errors"

	"linkmark/cmd/server/ctxkeys"
	"linkmark/cmd/server/handlers/httperr"
	"linkmark/internal/config"
	"linkmark/internal/logger"
	"linkmark/internal/services/auth"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserLoader resolves a token subject to a live account.
type UserLoader interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*auth.User, error)
}

// Auth returns a configured Fiber middleware that:
//
//   - validates the Bearer token signature and expiry using cfg.JWTSecret
//   - resolves the "sub" claim to a user via the loader
//   - attaches that user to the request context so downstream handlers can
//     read it through ctxkeys.Principal.
//
// A missing or malformed header, a bad or expired token, and a subject whose
// account no longer exists all fail with 401 before any handler runs.
func Auth(cfg config.Config, users UserLoader) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			// Signature and expiry already verified at this point.
			token := c.Locals("user").(*jwt.Token)
			claims, _ := token.Claims.(jwt.MapClaims)

			sub, ok := claims["sub"].(string)
			if !ok || sub == "" {
				return httperr.Fail(httperr.ErrUnauthorized)
			}

			userID, err := bson.ObjectIDFromHex(sub)
			if err != nil {
				logger.L().Warn("invalid subject in token", "sub", sub, "error", err)
				return httperr.Fail(httperr.ErrUnauthorized)
			}

			user, err := users.FindByID(c.Context(), userID)
			if err != nil {
				if errors.Is(err, auth.ErrUserNotFound) {
					logger.L().Info("token subject no longer exists", "user_id", sub)
					return httperr.Fail(httperr.ErrUnauthorized)
				}
				logger.L().Error("failed to load token subject", "user_id", sub, "error", err)
				return httperr.Fail(httperr.ErrInternal)
			}

			ctxkeys.SetPrincipal(c, user)
			return c.Next()
		},

		// Override the default "unauthorized" JSON to match the project style
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return httperr.Fail(httperr.ErrUnauthorized)
		},
	})
}
