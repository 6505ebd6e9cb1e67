package bookmarks

import (
	"context"
	"errors"

	"linkmark/cmd/server/ctxkeys"
	"linkmark/cmd/server/handlers/handlerutil"
	"linkmark/cmd/server/handlers/httperr"
	"linkmark/internal/logger"
	"linkmark/internal/services/bookmarks"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service defines the interface for the bookmarks service
type Service interface {
	Create(ctx context.Context, userID bson.ObjectID, req bookmarks.CreateBookmarkRequest) (*bookmarks.BookmarkResponse, error)
	List(ctx context.Context, userID bson.ObjectID) (*bookmarks.ListBookmarksResponse, error)
	Get(ctx context.Context, userID, bookmarkID bson.ObjectID) (*bookmarks.BookmarkResponse, error)
	Update(ctx context.Context, userID, bookmarkID bson.ObjectID, req bookmarks.UpdateBookmarkRequest) (*bookmarks.BookmarkResponse, error)
	Delete(ctx context.Context, userID, bookmarkID bson.ObjectID) error
}

// Handlers contains the bookmarks HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new bookmarks handlers
func NewHandlers(service Service, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// Create handles bookmark creation; 201 with the created record.
func (h *Handlers) Create(c *fiber.Ctx) error {
	user, err := ctxkeys.Principal(c)
	if err != nil {
		return err
	}

	var req bookmarks.CreateBookmarkRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Create"); err != nil {
		return err
	}

	resp, err := h.service.Create(c.Context(), user.ID, req)
	if err != nil {
		logger.L().Error("create bookmark failed", "handler", "Create", "user_id", user.ID.Hex(), "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.Status(201).JSON(resp)
}

// List returns all of the caller's bookmarks.
func (h *Handlers) List(c *fiber.Ctx) error {
	user, err := ctxkeys.Principal(c)
	if err != nil {
		return err
	}

	resp, err := h.service.List(c.Context(), user.ID)
	if err != nil {
		logger.L().Error("list bookmarks failed", "handler", "List", "user_id", user.ID.Hex(), "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.JSON(resp)
}

// Get returns a single caller-owned bookmark; 404 when it is absent or
// belongs to someone else.
func (h *Handlers) Get(c *fiber.Ctx) error {
	user, err := ctxkeys.Principal(c)
	if err != nil {
		return err
	}

	bookmarkID, err := handlerutil.BookmarkID(c, "Get", httperr.NotFound(bookmarks.ErrBookmarkNotFound.Error()))
	if err != nil {
		return err
	}

	resp, err := h.service.Get(c.Context(), user.ID, bookmarkID)
	if err != nil {
		if errors.Is(err, bookmarks.ErrBookmarkNotFound) {
			return httperr.NotFound(err.Error())
		}
		logger.L().Error("get bookmark failed", "handler", "Get", "user_id", user.ID.Hex(), "bookmark_id", bookmarkID.Hex(), "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.JSON(resp)
}

// Update patches a caller-owned bookmark; 403 when it is absent or belongs
// to someone else.
func (h *Handlers) Update(c *fiber.Ctx) error {
	user, err := ctxkeys.Principal(c)
	if err != nil {
		return err
	}

	bookmarkID, err := handlerutil.BookmarkID(c, "Update", httperr.Forbidden(bookmarks.ErrAccessDenied.Error()))
	if err != nil {
		return err
	}

	var req bookmarks.UpdateBookmarkRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Update"); err != nil {
		return err
	}

	resp, err := h.service.Update(c.Context(), user.ID, bookmarkID, req)
	if err != nil {
		if errors.Is(err, bookmarks.ErrAccessDenied) {
			return httperr.Forbidden(err.Error())
		}
		logger.L().Error("update bookmark failed", "handler", "Update", "user_id", user.ID.Hex(), "bookmark_id", bookmarkID.Hex(), "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.JSON(resp)
}

// Delete removes a caller-owned bookmark; 204 on success, 403 when it is
// absent or belongs to someone else.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	user, err := ctxkeys.Principal(c)
	if err != nil {
		return err
	}

	bookmarkID, err := handlerutil.BookmarkID(c, "Delete", httperr.Forbidden(bookmarks.ErrAccessDenied.Error()))
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), user.ID, bookmarkID); err != nil {
		if errors.Is(err, bookmarks.ErrAccessDenied) {
			return httperr.Forbidden(err.Error())
		}
		logger.L().Error("delete bookmark failed", "handler", "Delete", "user_id", user.ID.Hex(), "bookmark_id", bookmarkID.Hex(), "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.SendStatus(204)
}
