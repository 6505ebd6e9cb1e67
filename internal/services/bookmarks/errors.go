package bookmarks

import "errors"

// ErrBookmarkNotFound - bookmark absent or owned by someone else. Reads treat
// the two cases the same so ids never leak across owners.
var ErrBookmarkNotFound = errors.New("bookmark not found")

// ErrAccessDenied is returned on mutation when the bookmark is absent or
// owned by someone else; the message matches in both cases on purpose.
var ErrAccessDenied = errors.New("Access to resources denied")

// ErrCreateBookmark is returned when bookmark creation fails.
var ErrCreateBookmark = errors.New("failed to create bookmark")

// ErrListBookmarks is returned when bookmark listing fails.
var ErrListBookmarks = errors.New("failed to list bookmarks")

// ErrGetBookmark is returned when a bookmark read fails.
var ErrGetBookmark = errors.New("failed to get bookmark")

// ErrUpdateBookmark is returned when a bookmark update fails.
var ErrUpdateBookmark = errors.New("failed to update bookmark")

// ErrDeleteBookmark is returned when a bookmark deletion fails.
var ErrDeleteBookmark = errors.New("failed to delete bookmark")

// ErrCreateBookmarksRepo is returned when bookmarks repository creation fails.
var ErrCreateBookmarksRepo = errors.New("failed to create bookmarks repository")
