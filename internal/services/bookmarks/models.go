package bookmarks

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Bookmark represents a saved link owned by exactly one user.
// UserID is set at creation and never changes.
type Bookmark struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	UserID      bson.ObjectID `bson:"user_id" json:"user_id" example:"683cdb8aa96ad71e8e075bd2"`
	Title       string        `bson:"title" json:"title" example:"Go Blog"`
	Description string        `bson:"description,omitempty" json:"description,omitempty" example:"Official Go project blog"`
	Link        string        `bson:"link" json:"link" example:"https://go.dev/blog"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at" example:"2025-06-01T23:00:26.005703677Z"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at" example:"2025-06-01T23:00:26.005703677Z"`
}
