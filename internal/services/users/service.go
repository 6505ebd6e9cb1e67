package users

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"linkmark/internal/services/auth"
	"linkmark/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles profile business logic. The target of every operation is
// the authenticated user itself; userID always comes from the request
// context, never from the body.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new users service
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// UpdateUserRequest represents a partial profile update
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email" example:"new@example.com"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100" example:"Ada"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100" example:"Lovelace"`
}

// UpdateUser is the repository-level patch; only non-nil fields are written.
type UpdateUser UpdateUserRequest

// UserResponse represents a single user response
type UserResponse struct {
	User *auth.User `json:"user"`
}

// ErrUpdateUser is returned when a profile update fails.
var ErrUpdateUser = errors.New("failed to update user")

// Edit applies a partial update to the caller's own profile and returns the
// updated record. An email collision surfaces as ErrCredentialsTaken, same as
// on signup.
func (s *Service) Edit(ctx context.Context, userID bson.ObjectID, req UpdateUserRequest) (*UserResponse, error) {
	patch := sanitizedUpdateUser(req)

	updated, err := s.repo.Update(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicate) {
			s.log.Info("email already taken on profile edit", "user_id", userID.Hex())
			return nil, auth.ErrCredentialsTaken
		}
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, auth.ErrUserNotFound
		}
		s.log.Error(ErrUpdateUser.Error(), "error", err, "user_id", userID.Hex())
		return nil, ErrUpdateUser
	}

	return &UserResponse{User: updated}, nil
}

// sanitizedUpdateUser normalizes the email and strips HTML from name fields.
func sanitizedUpdateUser(req UpdateUserRequest) UpdateUser {
	patch := UpdateUser(req)

	if patch.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*patch.Email))
		patch.Email = &normalized
	}
	if patch.FirstName != nil {
		cleaned := sanitize.Clean(*patch.FirstName)
		patch.FirstName = &cleaned
	}
	if patch.LastName != nil {
		cleaned := sanitize.Clean(*patch.LastName)
		patch.LastName = &cleaned
	}

	return patch
}
