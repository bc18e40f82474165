// Package content composes the post store, like ledger, page cache, comment
// store and event emitter into the content use-cases. Every mutation follows
// the same order: authoritative write, then cache invalidation, then event
// emission — never the other way around.
package content

import (
	"context"

	"github.com/techblog/core/internal/models"
	"github.com/techblog/core/internal/modules/analytics"
	"github.com/techblog/core/internal/modules/content/comment"
	"github.com/techblog/core/internal/modules/content/pagecache"
	"github.com/techblog/core/internal/modules/content/post"
	"github.com/techblog/core/internal/pkg/pagination"
	"github.com/techblog/core/internal/pkg/response"
)

const listingSort = "created_desc"

// PostPage is one cached snapshot of a published-post listing.
type PostPage struct {
	Posts      []PostResponse      `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

// Service orchestrates the content use-cases.
type Service struct {
	posts    *post.Service
	likes    *post.LikeLedger
	comments *comment.Service
	cache    *pagecache.Cache[PostPage]
	emitter  *analytics.Emitter
}

func NewService(posts *post.Service, likes *post.LikeLedger, comments *comment.Service, emitter *analytics.Emitter) *Service {
	return &Service{
		posts:    posts,
		likes:    likes,
		comments: comments,
		cache:    pagecache.New[PostPage](),
		emitter:  emitter,
	}
}

// CreatePost publishes or drafts a new post for the author.
func (s *Service) CreatePost(dto *post.CreatePostDTO, author *models.UserModel) (*PostResponse, error) {
	p, err := s.posts.Create(dto, author)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateAll()
	s.emitter.Emit("post_create", map[string]interface{}{
		"postId":   p.ID,
		"authorId": author.ID,
	})
	return s.toResponse(p, author), nil
}

// GetPublishedPosts returns a page of published posts, newest first. The
// cached snapshot is viewer-neutral; liked flags for an authenticated viewer
// are applied on top of it.
func (s *Service) GetPublishedPosts(q pagination.Query, viewer *models.UserModel) (PostPage, error) {
	q, err := q.Validate()
	if err != nil {
		return PostPage{}, err
	}

	key := pagecache.Key{
		Status: string(models.StatusPublished),
		Page:   q.Page,
		Size:   q.Size,
		Sort:   listingSort,
	}
	page, err := s.cache.GetOrCompute(key, func() (PostPage, error) {
		posts, pag, err := s.posts.ListByStatus(models.StatusPublished, q)
		if err != nil {
			return PostPage{}, err
		}
		out := make([]PostResponse, 0, len(posts))
		for i := range posts {
			out = append(out, *s.toResponse(&posts[i], nil))
		}
		return PostPage{Posts: out, Pagination: pag}, nil
	})
	if err != nil {
		return PostPage{}, err
	}

	if viewer != nil {
		page = s.personalize(page, viewer)
	}
	return page, nil
}

// GetPostBySlug fetches a post, counts the view and emits the view event. The
// counter update is atomic at the store; the response carries the snapshot
// read before the increment.
func (s *Service) GetPostBySlug(slug string, viewer *models.UserModel) (*PostResponse, error) {
	p, err := s.posts.FindBySlug(slug)
	if err != nil {
		return nil, err
	}

	if err := s.posts.IncrementViewCount(p.ID); err != nil {
		return nil, err
	}
	s.cache.InvalidateAll()
	s.emitter.Emit("post_view", map[string]interface{}{
		"postId": p.ID,
		"slug":   slug,
	})
	return s.toResponse(p, viewer), nil
}

// UpdatePost edits a post in place. The slug never changes.
func (s *Service) UpdatePost(id uint, dto *post.UpdatePostDTO, actor *models.UserModel) (*PostResponse, error) {
	p, err := s.posts.Update(id, dto, actor)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateAll()
	s.emitter.Emit("post_update", map[string]interface{}{
		"postId":  p.ID,
		"actorId": actor.ID,
	})
	return s.toResponse(p, actor), nil
}

// DeletePost removes a post and its like edges.
func (s *Service) DeletePost(id uint, actor *models.UserModel) error {
	if err := s.posts.Delete(id, actor); err != nil {
		return err
	}

	s.cache.InvalidateAll()
	s.emitter.Emit("post_delete", map[string]interface{}{
		"postId":  id,
		"actorId": actor.ID,
	})
	return nil
}

// ToggleLike flips the actor's like on a post and returns the new state.
func (s *Service) ToggleLike(id uint, actor *models.UserModel) (bool, error) {
	if _, err := s.posts.FindByID(id); err != nil {
		return false, err
	}

	liked, err := s.likes.Toggle(id, actor.ID)
	if err != nil {
		return liked, err
	}

	s.cache.InvalidateAll()
	s.emitter.Emit("post_like", map[string]interface{}{
		"postId": id,
		"userId": actor.ID,
		"liked":  liked,
	})
	return liked, nil
}

// ListComments returns the active comments of a post. Degrades to an empty
// list when the comment store is unavailable.
func (s *Service) ListComments(ctx context.Context, postID uint) []comment.Response {
	return s.comments.ListActiveByPost(ctx, postID)
}

// CreateComment adds a comment to a post. The post reference is not enforced
// against the relational store.
func (s *Service) CreateComment(ctx context.Context, postID uint, dto *comment.CreateDTO, author *models.UserModel) (*comment.Response, error) {
	c, err := s.comments.Create(ctx, postID, dto, author)
	if err != nil {
		return nil, err
	}

	s.emitter.Emit("comment_create", map[string]interface{}{
		"commentId": c.ID,
		"postId":    postID,
		"authorId":  author.ID,
	})
	return c, nil
}

// DeleteComment soft-deletes a comment.
func (s *Service) DeleteComment(ctx context.Context, commentID string, actor *models.UserModel) error {
	if err := s.comments.SoftDelete(ctx, commentID, actor); err != nil {
		return err
	}

	s.emitter.Emit("comment_delete", map[string]interface{}{
		"commentId": commentID,
		"actorId":   actor.ID,
	})
	return nil
}

func (s *Service) personalize(page PostPage, viewer *models.UserModel) PostPage {
	posts := make([]PostResponse, len(page.Posts))
	copy(posts, page.Posts)
	for i := range posts {
		liked, err := s.posts.LikedBy(posts[i].ID, viewer.ID)
		if err != nil {
			break
		}
		posts[i].LikedByCurrentUser = liked
	}
	page.Posts = posts
	return page
}
