package handlerutil

import (
	"linkmark/cmd/server/handlers/httperr"
	"linkmark/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ParseAndValidateBody parses the request body and validates it
func ParseAndValidateBody(c *fiber.Ctx, req any, validator *validator.Validate, handlerName string) error {
	if err := c.BodyParser(req); err != nil {
		logger.L().Warn("failed to parse request body", "handler", handlerName, "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := validator.Struct(req); err != nil {
		logger.L().Warn("request validation failed", "handler", handlerName, "error", err)
		return httperr.InvalidInput(err)
	}

	return nil
}

// BookmarkID extracts and parses the bookmark id from the URL parameter.
// A missing or malformed id is reported with onAbsent: an id that cannot
// parse certainly names no bookmark of the caller's, so it gets the same
// response as an absent one.
func BookmarkID(c *fiber.Ctx, handlerName string, onAbsent error) (bson.ObjectID, error) {
	idStr := c.Params("id")
	if idStr == "" {
		logger.L().Warn("missing bookmark ID parameter", "handler", handlerName, "path", c.Path())
		return bson.ObjectID{}, onAbsent
	}

	id, err := bson.ObjectIDFromHex(idStr)
	if err != nil {
		logger.L().Warn("invalid bookmark ID parameter", "handler", handlerName, "id", idStr, "error", err)
		return bson.ObjectID{}, onAbsent
	}

	return id, nil
}
