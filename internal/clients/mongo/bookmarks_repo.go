package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"linkmark/internal/logger"
	"linkmark/internal/services/bookmarks"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// BookmarksRepo implements the bookmarks.Repository interface for MongoDB.
// Ownership checks are folded into the query filter: every read and write
// matches on both _id and user_id, so a foreign-owned bookmark behaves
// exactly like a missing one.
type BookmarksRepo struct {
	collection *mongo.Collection
}

// translateNotFound maps the driver ErrNoDocuments to the domain-level ErrBookmarkNotFound.
func translateNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return bookmarks.ErrBookmarkNotFound
	}
	return err
}

// NewBookmarksRepo creates a new bookmarks repository
func NewBookmarksRepo(parentCtx context.Context, db *mongo.Database) (*BookmarksRepo, error) {
	collection := db.Collection("bookmarks")

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "_id", Value: 1},
		},
	}

	ctx, cancel := context.WithTimeout(parentCtx, OpTimeout)
	defer cancel()

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			logger.L().Debug("index already exists, continuing", "collection", "bookmarks")
		} else {
			return nil, fmt.Errorf("failed to create bookmarks collection index: %w", err)
		}
	}

	return &BookmarksRepo{
		collection: collection,
	}, nil
}

// Create creates a new bookmark in the database
func (r *BookmarksRepo) Create(ctx context.Context, b *bookmarks.Bookmark) error {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, b)
	return err
}

// ListByUser retrieves all bookmarks owned by userID in insertion order
func (r *BookmarksRepo) ListByUser(ctx context.Context, userID bson.ObjectID) ([]*bookmarks.Bookmark, error) {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer func(ctxToClose context.Context) {
		if cerr := cursor.Close(ctxToClose); cerr != nil {
			logger.L().Error("failed to close cursor", "error", cerr)
		}
	}(ctx)

	var list []*bookmarks.Bookmark
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}

	return list, nil
}

// FindByID retrieves a single bookmark owned by userID
func (r *BookmarksRepo) FindByID(ctx context.Context, userID, bookmarkID bson.ObjectID) (*bookmarks.Bookmark, error) {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	filter := bson.M{
		"_id":     bookmarkID,
		"user_id": userID,
	}

	var b bookmarks.Bookmark
	if err := r.collection.FindOne(ctx, filter).Decode(&b); err != nil {
		return nil, translateNotFound(err)
	}

	return &b, nil
}

// Update applies a patch to a bookmark owned by userID as a single
// conditional update, so the ownership check and the write cannot race.
func (r *BookmarksRepo) Update(ctx context.Context, userID, bookmarkID bson.ObjectID, patch bookmarks.UpdateBookmark) (*bookmarks.Bookmark, error) {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	filter := bson.M{
		"_id":     bookmarkID,
		"user_id": userID,
	}

	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Link != nil {
		set["link"] = *patch.Link
	}

	// Skip the write if only updated_at would be set
	if len(set) == 1 {
		var existing bookmarks.Bookmark
		if err := r.collection.FindOne(ctx, filter).Decode(&existing); err != nil {
			return nil, translateNotFound(err)
		}
		return &existing, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated bookmarks.Bookmark
	if err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return nil, translateNotFound(err)
	}

	return &updated, nil
}

// Delete removes a bookmark owned by userID
func (r *BookmarksRepo) Delete(ctx context.Context, userID, bookmarkID bson.ObjectID) error {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	filter := bson.M{
		"_id":     bookmarkID,
		"user_id": userID,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return bookmarks.ErrBookmarkNotFound
	}

	return nil
}
