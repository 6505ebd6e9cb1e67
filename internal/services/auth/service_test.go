package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"linkmark/internal/config"
	"linkmark/internal/utils/crypto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// MockUsersRepo is a mock implementation of UsersRepo
type MockUsersRepo struct {
	mock.Mock
}

func (m *MockUsersRepo) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsersRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUsersRepo) FindByID(ctx context.Context, id bson.ObjectID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:          "test-secret-key-that-is-at-least-32-chars",
		AccessTokenMinutes: 15,
		ArgonMemoryKiB:     8 * 1024,
		ArgonIterations:    1,
		ArgonParallelism:   1,
	}
}

func testHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := crypto.HashPassword(password, crypto.Params{MemoryKiB: 8 * 1024, Iterations: 1, Parallelism: 1})
	require.NoError(t, err)
	return hash
}

func TestSignUp(t *testing.T) {
	tests := []struct {
		name      string
		req       SignUpRequest
		createErr error
		wantErr   error
	}{
		{
			name: "success",
			req:  SignUpRequest{Email: "test@example.com", Password: "Password123"},
		},
		{
			name:      "duplicate email",
			req:       SignUpRequest{Email: "taken@example.com", Password: "Password123"},
			createErr: ErrDuplicate,
			wantErr:   ErrCredentialsTaken,
		},
		{
			name:      "store error propagates",
			req:       SignUpRequest{Email: "test@example.com", Password: "Password123"},
			createErr: errors.New("connection reset"),
			wantErr:   errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUsersRepo)
			repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(tt.createErr)

			svc := NewService(repo, testConfig(), silentLogger)
			resp, err := svc.SignUp(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.NotEmpty(t, resp.AccessToken)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestSignUp_StoresHashNotPassword(t *testing.T) {
	repo := new(MockUsersRepo)

	var created *User
	repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*User)
		}).
		Return(nil)

	svc := NewService(repo, testConfig(), silentLogger)
	_, err := svc.SignUp(context.Background(), SignUpRequest{Email: "Test@Example.COM ", Password: "Password123"})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "test@example.com", created.Email, "email is normalized before storage")
	assert.NotEqual(t, "Password123", created.PasswordHash)
	assert.NoError(t, crypto.CheckPassword("Password123", created.PasswordHash))
}

func TestSignIn(t *testing.T) {
	hash := testHash(t, "Password123")
	user := &User{
		ID:           bson.NewObjectID(),
		Email:        "test@example.com",
		PasswordHash: hash,
	}

	tests := []struct {
		name     string
		password string
		findUser *User
		findErr  error
		wantErr  error
	}{
		{
			name:     "success",
			password: "Password123",
			findUser: user,
		},
		{
			name:     "unknown email",
			password: "Password123",
			findErr:  ErrUserNotFound,
			wantErr:  ErrCredentialsIncorrect,
		},
		{
			name:     "wrong password",
			password: "WrongPassword1",
			findUser: user,
			wantErr:  ErrCredentialsIncorrect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUsersRepo)
			repo.On("FindByEmail", mock.Anything, "test@example.com").Return(tt.findUser, tt.findErr)

			svc := NewService(repo, testConfig(), silentLogger)
			resp, err := svc.SignIn(context.Background(), SignInRequest{Email: "test@example.com", Password: tt.password})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.NotEmpty(t, resp.AccessToken)
			}
			repo.AssertExpectations(t)
		})
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestSignIn_UniformFailureError(t *testing.T) {
	hash := testHash(t, "Password123")

	unknownRepo := new(MockUsersRepo)
	unknownRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, ErrUserNotFound)

	wrongPassRepo := new(MockUsersRepo)
	wrongPassRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&User{
		ID:           bson.NewObjectID(),
		Email:        "test@example.com",
		PasswordHash: hash,
	}, nil)

	cfg := testConfig()
	_, errUnknown := NewService(unknownRepo, cfg, silentLogger).
		SignIn(context.Background(), SignInRequest{Email: "nobody@example.com", Password: "Password123"})
	_, errWrongPass := NewService(wrongPassRepo, cfg, silentLogger).
		SignIn(context.Background(), SignInRequest{Email: "test@example.com", Password: "WrongPassword1"})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPass)
	assert.Equal(t, errUnknown, errWrongPass)
	assert.Equal(t, "Credentials incorrect", errUnknown.Error())
}

func TestSignIn_TokenClaims(t *testing.T) {
	hash := testHash(t, "Password123")
	user := &User{
		ID:           bson.NewObjectID(),
		Email:        "test@example.com",
		PasswordHash: hash,
	}

	repo := new(MockUsersRepo)
	repo.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)

	cfg := testConfig()
	svc := NewService(repo, cfg, silentLogger)
	resp, err := svc.SignIn(context.Background(), SignInRequest{Email: "test@example.com", Password: "Password123"})
	require.NoError(t, err)

	parsed, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (any, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.Hex(), claims["sub"])
	assert.Equal(t, user.Email, claims["email"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	iat, err := claims.GetIssuedAt()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(cfg.AccessTokenMinutes)*time.Minute, exp.Sub(iat.Time))
}
