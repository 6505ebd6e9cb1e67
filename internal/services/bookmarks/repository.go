package bookmarks

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository defines the interface for bookmarks repository operations.
// Every method is scoped to an owner: implementations must never return or
// touch a bookmark whose user_id differs from the given userID.
type Repository interface {
	Create(ctx context.Context, b *Bookmark) error
	ListByUser(ctx context.Context, userID bson.ObjectID) ([]*Bookmark, error)
	FindByID(ctx context.Context, userID, bookmarkID bson.ObjectID) (*Bookmark, error)
	Update(ctx context.Context, userID, bookmarkID bson.ObjectID, patch UpdateBookmark) (*Bookmark, error)
	Delete(ctx context.Context, userID, bookmarkID bson.ObjectID) error
}
