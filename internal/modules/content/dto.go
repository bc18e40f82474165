package content

import (
	"time"

	"github.com/techblog/core/internal/models"
)

// PostResponse is the API shape of a post.
type PostResponse struct {
	ID                 uint      `json:"id"`
	Title              string    `json:"title"`
	Slug               string    `json:"slug"`
	Content            string    `json:"content"`
	Excerpt            string    `json:"excerpt"`
	CoverImageURL      string    `json:"coverImageUrl"`
	AuthorID           uint      `json:"authorId"`
	AuthorUsername     string    `json:"authorUsername"`
	Status             string    `json:"status"`
	ViewCount          int       `json:"viewCount"`
	LikeCount          int       `json:"likeCount"`
	Tags               string    `json:"tags"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
	LikedByCurrentUser bool      `json:"likedByCurrentUser"`
}

func (s *Service) toResponse(p *models.PostModel, viewer *models.UserModel) *PostResponse {
	resp := &PostResponse{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		CoverImageURL: p.CoverImageURL,
		AuthorID:      p.AuthorID,
		Status:        string(p.Status),
		ViewCount:     p.ViewCount,
		LikeCount:     p.LikeCount,
		Tags:          p.Tags,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Author != nil {
		resp.AuthorUsername = p.Author.Username
	}
	if viewer != nil {
		if liked, err := s.posts.LikedBy(p.ID, viewer.ID); err == nil {
			resp.LikedByCurrentUser = liked
		}
	}
	return resp
}
