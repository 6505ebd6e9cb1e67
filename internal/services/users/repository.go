package users

import (
	"context"

	"linkmark/internal/services/auth"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository defines the interface for profile repository operations
type Repository interface {
	Update(ctx context.Context, id bson.ObjectID, patch UpdateUser) (*auth.User, error)
}
