package bookmarks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, bookmark *Bookmark) error {
	args := m.Called(ctx, bookmark)
	return args.Error(0)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID bson.ObjectID) ([]*Bookmark, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Bookmark), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, userID, bookmarkID bson.ObjectID) (*Bookmark, error) {
	args := m.Called(ctx, userID, bookmarkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Bookmark), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, userID, bookmarkID bson.ObjectID, patch UpdateBookmark) (*Bookmark, error) {
	args := m.Called(ctx, userID, bookmarkID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Bookmark), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, userID, bookmarkID bson.ObjectID) error {
	args := m.Called(ctx, userID, bookmarkID)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	userID := bson.NewObjectID()

	repo := new(MockRepository)
	var created *Bookmark
	repo.On("Create", mock.Anything, mock.AnythingOfType("*bookmarks.Bookmark")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*Bookmark)
		}).
		Return(nil)

	svc := NewService(repo, silentLogger)
	resp, err := svc.Create(context.Background(), userID, CreateBookmarkRequest{
		Title:       "<b>Go Blog</b>",
		Description: "Official <script>x()</script>Go project blog",
		Link:        "https://go.dev/blog",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.NotNil(t, created)

	assert.Equal(t, created, resp.Bookmark)
	assert.Equal(t, userID, created.UserID)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, "Go Blog", created.Title, "title is sanitized")
	assert.Equal(t, "Official Go project blog", created.Description, "description is sanitized")
	assert.Equal(t, "https://go.dev/blog", created.Link)
	assert.False(t, created.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestCreate_RepoError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	svc := NewService(repo, silentLogger)
	resp, err := svc.Create(context.Background(), bson.NewObjectID(), CreateBookmarkRequest{
		Title: "Go Blog",
		Link:  "https://go.dev/blog",
	})
	assert.ErrorIs(t, err, ErrCreateBookmark)
	assert.Nil(t, resp)
}

func TestList(t *testing.T) {
	userID := bson.NewObjectID()
	stored := []*Bookmark{
		{ID: bson.NewObjectID(), UserID: userID, Title: "first"},
		{ID: bson.NewObjectID(), UserID: userID, Title: "second"},
	}

	repo := new(MockRepository)
	repo.On("ListByUser", mock.Anything, userID).Return(stored, nil)

	svc := NewService(repo, silentLogger)
	resp, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, stored, resp.Bookmarks)
	repo.AssertExpectations(t)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	userID := bson.NewObjectID()

	repo := new(MockRepository)
	repo.On("ListByUser", mock.Anything, userID).Return(nil, nil)

	svc := NewService(repo, silentLogger)
	resp, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, resp.Bookmarks, "empty list must serialize as [] not null")
	assert.Empty(t, resp.Bookmarks)
}

func TestGet(t *testing.T) {
	userID := bson.NewObjectID()
	bookmarkID := bson.NewObjectID()
	stored := &Bookmark{ID: bookmarkID, UserID: userID, Title: "Go Blog"}

	tests := []struct {
		name    string
		repoBm  *Bookmark
		repoErr error
		wantErr error
	}{
		{
			name:   "success",
			repoBm: stored,
		},
		{
			name:    "absent or foreign is not found",
			repoErr: ErrBookmarkNotFound,
			wantErr: ErrBookmarkNotFound,
		},
		{
			name:    "store error is opaque",
			repoErr: errors.New("connection reset"),
			wantErr: ErrGetBookmark,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("FindByID", mock.Anything, userID, bookmarkID).Return(tt.repoBm, tt.repoErr)

			svc := NewService(repo, silentLogger)
			resp, err := svc.Get(context.Background(), userID, bookmarkID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				assert.Equal(t, stored, resp.Bookmark)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUpdate(t *testing.T) {
	userID := bson.NewObjectID()
	bookmarkID := bson.NewObjectID()
	updated := &Bookmark{ID: bookmarkID, UserID: userID, Title: "Go Blog (updated)"}

	tests := []struct {
		name    string
		repoBm  *Bookmark
		repoErr error
		wantErr error
	}{
		{
			name:   "success",
			repoBm: updated,
		},
		{
			name:    "absent or foreign is denied",
			repoErr: ErrBookmarkNotFound,
			wantErr: ErrAccessDenied,
		},
		{
			name:    "store error is opaque",
			repoErr: errors.New("connection reset"),
			wantErr: ErrUpdateBookmark,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("Update", mock.Anything, userID, bookmarkID, mock.AnythingOfType("bookmarks.UpdateBookmark")).
				Return(tt.repoBm, tt.repoErr)

			svc := NewService(repo, silentLogger)
			resp, err := svc.Update(context.Background(), userID, bookmarkID, UpdateBookmarkRequest{Title: strPtr("Go Blog (updated)")})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				assert.Equal(t, updated, resp.Bookmark)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUpdate_SanitizesPatch(t *testing.T) {
	userID := bson.NewObjectID()
	bookmarkID := bson.NewObjectID()

	repo := new(MockRepository)
	var gotPatch UpdateBookmark
	repo.On("Update", mock.Anything, userID, bookmarkID, mock.AnythingOfType("bookmarks.UpdateBookmark")).
		Run(func(args mock.Arguments) {
			gotPatch = args.Get(3).(UpdateBookmark)
		}).
		Return(&Bookmark{ID: bookmarkID, UserID: userID}, nil)

	svc := NewService(repo, silentLogger)
	_, err := svc.Update(context.Background(), userID, bookmarkID, UpdateBookmarkRequest{
		Title:       strPtr("<i>Go Blog</i>"),
		Description: strPtr("desc<script>x()</script>"),
		Link:        strPtr("https://go.dev"),
	})
	require.NoError(t, err)

	require.NotNil(t, gotPatch.Title)
	assert.Equal(t, "Go Blog", *gotPatch.Title)
	require.NotNil(t, gotPatch.Description)
	assert.Equal(t, "desc", *gotPatch.Description)
	require.NotNil(t, gotPatch.Link)
	assert.Equal(t, "https://go.dev", *gotPatch.Link, "link is not rewritten")
}

func TestDelete(t *testing.T) {
	userID := bson.NewObjectID()
	bookmarkID := bson.NewObjectID()

	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{
			name: "success",
		},
		{
			name:    "absent or foreign is denied",
			repoErr: ErrBookmarkNotFound,
			wantErr: ErrAccessDenied,
		},
		{
			name:    "store error is opaque",
			repoErr: errors.New("connection reset"),
			wantErr: ErrDeleteBookmark,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("Delete", mock.Anything, userID, bookmarkID).Return(tt.repoErr)

			svc := NewService(repo, silentLogger)
			err := svc.Delete(context.Background(), userID, bookmarkID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}
