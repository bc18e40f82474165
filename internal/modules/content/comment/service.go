package comment

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/techblog/core/internal/models"
	"github.com/techblog/core/internal/pkg/apperr"
	"go.uber.org/zap"
)

// Service applies the business rules over the comment document store:
// id/timestamp stamping on create, ownership checks on delete, and the
// availability policy (reads degrade, writes fail loudly).
type Service struct {
	store Store
	log   *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

// Create persists a new comment with a fresh opaque id. The author's display
// name is denormalized into the document at write time. Single atomic write,
// no read-before-write.
func (s *Service) Create(ctx context.Context, postID uint, dto *CreateDTO, author *models.UserModel) (*Response, error) {
	c := Comment{
		CommentID:      uuid.NewString(),
		PostID:         formatID(postID),
		AuthorID:       formatID(author.ID),
		AuthorUsername: author.Username,
		Content:        dto.Content,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339Nano),
		IsDeleted:      false,
	}

	if err := s.store.Insert(ctx, &c); err != nil {
		s.log.Error("comment insert failed", zap.String("post_id", c.PostID), zap.Error(err))
		return nil, apperr.StoreUnavailable(err, "save comment")
	}
	return toResponse(&c), nil
}

// ListActiveByPost returns the non-deleted comments of a post in creation
// order. A store fault degrades to an empty result: the read path stays
// available and callers cannot distinguish "no comments" from "store down".
func (s *Service) ListActiveByPost(ctx context.Context, postID uint) []Response {
	comments, err := s.store.ListByPost(ctx, formatID(postID))
	if err != nil {
		s.log.Error("comment listing degraded to empty result",
			zap.Uint("post_id", postID), zap.Error(err))
		return []Response{}
	}

	out := make([]Response, 0, len(comments))
	for i := range comments {
		out = append(out, *toResponse(&comments[i]))
	}
	return out
}

// SoftDelete flags a comment as deleted. Only the original author or an admin
// may delete. Unlike listing, this write path surfaces store faults.
func (s *Service) SoftDelete(ctx context.Context, commentID string, actor *models.UserModel) error {
	c, err := s.store.FindByID(ctx, commentID)
	if err != nil {
		s.log.Error("comment fetch failed", zap.String("comment_id", commentID), zap.Error(err))
		return apperr.StoreUnavailable(err, "load comment")
	}
	if c == nil {
		return apperr.NotFound("comment not found: %s", commentID)
	}

	if c.AuthorID != formatID(actor.ActorID()) && !actor.IsAdmin() {
		return apperr.Forbidden("not authorized to delete this comment")
	}

	if err := s.store.MarkDeleted(ctx, commentID); err != nil {
		s.log.Error("comment delete failed", zap.String("comment_id", commentID), zap.Error(err))
		return apperr.StoreUnavailable(err, "delete comment")
	}
	return nil
}

func toResponse(c *Comment) *Response {
	createdAt, err := time.Parse(time.RFC3339Nano, c.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}
	return &Response{
		ID:             c.CommentID,
		PostID:         parseID(c.PostID),
		AuthorID:       parseID(c.AuthorID),
		AuthorUsername: c.AuthorUsername,
		Content:        c.Content,
		CreatedAt:      createdAt,
	}
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseID(s string) uint {
	v, _ := strconv.ParseUint(s, 10, 64)
	return uint(v)
}
