package bookmarks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"linkmark/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles bookmarks business logic
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new bookmarks service
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// CreateBookmarkRequest represents a bookmark creation request
type CreateBookmarkRequest struct {
	Title       string `json:"title" validate:"required,max=256" example:"Go Blog"`
	Description string `json:"description" validate:"omitempty,max=2048" example:"Official Go project blog"`
	Link        string `json:"link" validate:"required,url" example:"https://go.dev/blog"`
}

// UpdateBookmarkRequest represents a bookmark update request
type UpdateBookmarkRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=256" example:"Go Blog (updated)"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2048" example:"Updated description"`
	Link        *string `json:"link,omitempty" validate:"omitempty,url" example:"https://go.dev"`
}

// UpdateBookmark is the repository-level patch; only non-nil fields are written.
type UpdateBookmark UpdateBookmarkRequest

// BookmarkResponse represents a single bookmark response
type BookmarkResponse struct {
	Bookmark *Bookmark `json:"bookmark"`
}

// ListBookmarksResponse represents a list of bookmarks response
type ListBookmarksResponse struct {
	Bookmarks []*Bookmark `json:"bookmarks"`
}

// Create persists a new bookmark owned by userID and returns it with its
// generated id.
func (s *Service) Create(ctx context.Context, userID bson.ObjectID, req CreateBookmarkRequest) (*BookmarkResponse, error) {
	now := time.Now()
	bookmark := &Bookmark{
		ID:          bson.NewObjectID(),
		UserID:      userID,
		Title:       sanitize.Clean(req.Title),
		Description: sanitize.Clean(req.Description),
		Link:        req.Link,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, bookmark); err != nil {
		s.log.Error(ErrCreateBookmark.Error(), "error", err, "user_id", userID.Hex())
		return nil, ErrCreateBookmark
	}

	return &BookmarkResponse{Bookmark: bookmark}, nil
}

// List returns all bookmarks owned by userID in insertion order.
func (s *Service) List(ctx context.Context, userID bson.ObjectID) (*ListBookmarksResponse, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error(ErrListBookmarks.Error(), "error", err, "user_id", userID.Hex())
		return nil, ErrListBookmarks
	}

	if list == nil {
		list = []*Bookmark{}
	}

	return &ListBookmarksResponse{Bookmarks: list}, nil
}

// Get returns the bookmark only when it exists and belongs to userID.
// Absence and foreign ownership are both reported as not-found.
func (s *Service) Get(ctx context.Context, userID, bookmarkID bson.ObjectID) (*BookmarkResponse, error) {
	bookmark, err := s.repo.FindByID(ctx, userID, bookmarkID)
	if err != nil {
		if errors.Is(err, ErrBookmarkNotFound) {
			return nil, ErrBookmarkNotFound
		}
		s.log.Error(ErrGetBookmark.Error(), "error", err, "user_id", userID.Hex(), "bookmark_id", bookmarkID.Hex())
		return nil, ErrGetBookmark
	}

	return &BookmarkResponse{Bookmark: bookmark}, nil
}

// Update applies a patch to a bookmark owned by userID. The repository
// performs the ownership check and the write as one conditional update, so a
// bookmark that is absent or foreign-owned yields ErrAccessDenied without
// revealing which.
func (s *Service) Update(ctx context.Context, userID, bookmarkID bson.ObjectID, req UpdateBookmarkRequest) (*BookmarkResponse, error) {
	patch := sanitizedUpdateBookmark(req)

	updated, err := s.repo.Update(ctx, userID, bookmarkID, patch)
	if err != nil {
		if errors.Is(err, ErrBookmarkNotFound) {
			s.log.Info("bookmark not found for update", "user_id", userID.Hex(), "bookmark_id", bookmarkID.Hex())
			return nil, ErrAccessDenied
		}
		s.log.Error(ErrUpdateBookmark.Error(), "error", err, "user_id", userID.Hex(), "bookmark_id", bookmarkID.Hex())
		return nil, ErrUpdateBookmark
	}

	return &BookmarkResponse{Bookmark: updated}, nil
}

// Delete removes a bookmark owned by userID, with the same ownership rule
// and error as Update.
func (s *Service) Delete(ctx context.Context, userID, bookmarkID bson.ObjectID) error {
	if err := s.repo.Delete(ctx, userID, bookmarkID); err != nil {
		if errors.Is(err, ErrBookmarkNotFound) {
			s.log.Info("bookmark not found for delete", "user_id", userID.Hex(), "bookmark_id", bookmarkID.Hex())
			return ErrAccessDenied
		}
		s.log.Error(ErrDeleteBookmark.Error(), "error", err, "user_id", userID.Hex(), "bookmark_id", bookmarkID.Hex())
		return ErrDeleteBookmark
	}

	return nil
}

// sanitizedUpdateBookmark creates an UpdateBookmark with sanitized text fields
func sanitizedUpdateBookmark(req UpdateBookmarkRequest) UpdateBookmark {
	patch := UpdateBookmark(req)

	if patch.Title != nil {
		cleaned := sanitize.Clean(*patch.Title)
		patch.Title = &cleaned
	}
	if patch.Description != nil {
		cleaned := sanitize.Clean(*patch.Description)
		patch.Description = &cleaned
	}

	return patch
}
