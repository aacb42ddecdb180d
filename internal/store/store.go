package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by find operations when no record matches.
var ErrNotFound = errors.New("record not found")

// Users is the persistence contract for accounts.
type Users interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// Posts is the persistence contract for posts.
type Posts interface {
	Create(ctx context.Context, post *Post) error
	FindByID(ctx context.Context, id string) (*Post, error)
	FindByUser(ctx context.Context, userID string) ([]*Post, error)
	FindAll(ctx context.Context) ([]*Post, error)
	// UpdateContent overwrites the content of the post with the given id.
	// Returns ErrNotFound if the post does not exist.
	UpdateContent(ctx context.Context, id, content string) error
	// SetCommentIDs replaces the post's comment reference list.
	SetCommentIDs(ctx context.Context, id string, commentIDs IDList) error
	// Delete removes the post with the given id. Deleting a missing id is a
	// no-op, not an error.
	Delete(ctx context.Context, id string) error
}

// Comments is the persistence contract for comments.
type Comments interface {
	Create(ctx context.Context, comment *Comment) error
	FindByPost(ctx context.Context, postID string) ([]*Comment, error)
	// FindByIDs returns comments in the order of ids. Ids that do not
	// resolve are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*Comment, error)
	// CountOrphans reports how many comments reference a post that no longer
	// exists.
	CountOrphans(ctx context.Context) (int64, error)
}

// Stores bundles the three collections behind one handle.
type Stores struct {
	Users    Users
	Posts    Posts
	Comments Comments
}
