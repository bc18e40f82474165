package comment

import "context"

// Store is the document store behind comments.
//
// The store is eventually consistent: a document inserted by one call may not
// be visible to an immediately following ListByPost. Callers must not assume
// read-after-write ordering across operations. There is no transactionality
// with the relational post store; the postId reference is not enforced.
type Store interface {
	// Insert persists a new comment as a single atomic write.
	Insert(ctx context.Context, c *Comment) error
	// FindByID returns the comment or (nil, nil) when no such id exists.
	FindByID(ctx context.Context, commentID string) (*Comment, error)
	// MarkDeleted sets the deleted flag via a targeted field update. The
	// document keeps its id; it is never removed.
	MarkDeleted(ctx context.Context, commentID string) error
	// ListByPost returns non-deleted comments for a post, oldest first.
	ListByPost(ctx context.Context, postID string) ([]Comment, error)
}
