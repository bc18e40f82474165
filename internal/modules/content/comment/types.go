package comment

import "time"

// Comment is the persisted document layout. Ids referencing relational rows
// are stored in string form; createdAt is an ISO-8601 string so the secondary
// index sorts chronologically.
type Comment struct {
	CommentID      string `bson:"commentId"`
	PostID         string `bson:"postId"`
	AuthorID       string `bson:"authorId"`
	AuthorUsername string `bson:"authorUsername"`
	Content        string `bson:"content"`
	CreatedAt      string `bson:"createdAt"`
	IsDeleted      bool   `bson:"isDeleted"`
}

// Response is the API shape of a comment.
type Response struct {
	ID             string    `json:"id"`
	PostID         uint      `json:"postId"`
	AuthorID       uint      `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CreateDTO is the payload for posting a comment.
type CreateDTO struct {
	Content string `json:"content" binding:"required,max=2000"`
}
