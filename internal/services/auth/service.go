package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"linkmark/internal/config"
	"linkmark/internal/utils/crypto"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles authentication business logic
type Service struct {
	users  UsersRepo
	config config.Config
	log    *slog.Logger
}

// NewService creates a new auth service
func NewService(users UsersRepo, cfg config.Config, log *slog.Logger) *Service {
	return &Service{
		users:  users,
		config: cfg,
		log:    log,
	}
}

// SignUpRequest represents a user registration request
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email" example:"test@example.com"`
	Password string `json:"password" validate:"required,password" example:"Password123"`
}

// SignInRequest represents a user login request
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email" example:"test@example.com"`
	Password string `json:"password" validate:"required" example:"Password123"`
}

// TokenResponse carries the issued bearer token. Authentication responses
// never include profile data.
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// SignUp registers a new user and issues a bearer token for it.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*TokenResponse, error) {
	email := normalizeEmail(req.Email)

	hash, err := crypto.HashPassword(req.Password, s.hashParams())
	if err != nil {
		s.log.Error("failed to hash password", "error", err)
		return nil, errors.New("failed to process password")
	}

	now := time.Now()
	user := &User{
		ID:           bson.NewObjectID(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, ErrCredentialsTaken
		}
		// Anything but a uniqueness violation propagates unchanged.
		return nil, err
	}

	token, err := s.signToken(user.ID, user.Email)
	if err != nil {
		s.log.Error(ErrGenAccessToken.Error(), "error", err, "user_id", user.ID.Hex())
		return nil, ErrGenAccessToken
	}

	return &TokenResponse{AccessToken: token}, nil
}

// SignIn authenticates a user and issues a bearer token.
// Unknown email and wrong password produce the same error.
func (s *Service) SignIn(ctx context.Context, req SignInRequest) (*TokenResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrCredentialsIncorrect
		}
		return nil, err
	}

	if err := crypto.CheckPassword(req.Password, user.PasswordHash); err != nil {
		s.log.Info("password verification failed", "user_id", user.ID.Hex())
		return nil, ErrCredentialsIncorrect
	}

	token, err := s.signToken(user.ID, user.Email)
	if err != nil {
		s.log.Error(ErrGenAccessToken.Error(), "error", err, "user_id", user.ID.Hex())
		return nil, ErrGenAccessToken
	}

	return &TokenResponse{AccessToken: token}, nil
}

// signToken builds the payload {sub: userID, email} and signs it with the
// process-wide secret. Expiry is fixed by config (15 minutes by default).
func (s *Service) signToken(userID bson.ObjectID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.Hex(),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(s.config.AccessTokenMinutes) * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func (s *Service) hashParams() crypto.Params {
	p := crypto.DefaultParams()
	if s.config.ArgonMemoryKiB > 0 {
		p.MemoryKiB = uint32(s.config.ArgonMemoryKiB)
	}
	if s.config.ArgonIterations > 0 {
		p.Iterations = uint32(s.config.ArgonIterations)
	}
	if s.config.ArgonParallelism > 0 {
		p.Parallelism = uint8(s.config.ArgonParallelism)
	}
	return p
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
