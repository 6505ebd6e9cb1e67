package ctxkeys

import (
	"linkmark/cmd/server/handlers/httperr"
	"linkmark/internal/logger"
	"linkmark/internal/services/auth"

	"github.com/gofiber/fiber/v2"
)

// PrincipalKey is the fiber.Ctx locals key under which the auth middleware
// stores the authenticated user.
const PrincipalKey = "principal"

// SetPrincipal attaches the authenticated user to the request context.
func SetPrincipal(c *fiber.Ctx, user *auth.User) {
	c.Locals(PrincipalKey, user)
}

// Principal returns the user the auth middleware attached to this request.
// Handlers behind the middleware can rely on it; a missing principal means
// the route was wired without authentication and is reported as 401.
func Principal(c *fiber.Ctx) (*auth.User, error) {
	user, ok := c.Locals(PrincipalKey).(*auth.User)
	if !ok || user == nil {
		logger.L().Error("principal not found in context", "path", c.Path())
		return nil, httperr.Fail(httperr.ErrUnauthorized)
	}
	return user, nil
}
