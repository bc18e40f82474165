package post

import (
	"errors"
	"strings"

	"github.com/techblog/core/internal/models"
	"github.com/techblog/core/internal/pkg/apperr"
	"github.com/techblog/core/internal/pkg/pagination"
	"github.com/techblog/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Service is the authoritative post store: CRUD plus atomic counter mutation.
type Service struct {
	db    *gorm.DB
	slugs *SlugAllocator
}

func NewService(db *gorm.DB) *Service {
	s := &Service{db: db}
	s.slugs = NewSlugAllocator(s.slugExists)
	return s
}

// Create assigns a unique slug derived from the title, initializes counters to
// zero and persists the post.
func (s *Service) Create(dto *CreatePostDTO, author *models.UserModel) (*models.PostModel, error) {
	slug, err := s.slugs.Allocate(dto.Title)
	if err != nil {
		return nil, err
	}

	status := models.StatusDraft
	if strings.EqualFold(dto.Status, string(models.StatusPublished)) {
		status = models.StatusPublished
	}

	post := models.PostModel{
		Title:         dto.Title,
		Slug:          slug,
		Content:       dto.Content,
		Excerpt:       dto.Excerpt,
		CoverImageURL: dto.CoverImageURL,
		AuthorID:      author.ID,
		Status:        status,
		Tags:          dto.Tags,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, apperr.StoreUnavailable(err, "create post")
	}
	post.Author = author
	return &post, nil
}

// FindBySlug fetches a single post by slug.
func (s *Service) FindBySlug(slug string) (*models.PostModel, error) {
	var post models.PostModel
	if err := s.db.Preload("Author").Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found: %s", slug)
		}
		return nil, apperr.StoreUnavailable(err, "load post by slug")
	}
	return &post, nil
}

// FindByID fetches a single post by ID.
func (s *Service) FindByID(id uint) (*models.PostModel, error) {
	var post models.PostModel
	if err := s.db.Preload("Author").First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found: %d", id)
		}
		return nil, apperr.StoreUnavailable(err, "load post by id")
	}
	return &post, nil
}

// ListByStatus returns a page of posts with the given status, newest first.
func (s *Service) ListByStatus(status models.PostStatus, q pagination.Query) ([]models.PostModel, response.Pagination, error) {
	tx := s.db.Model(&models.PostModel{}).
		Preload("Author").
		Where("status = ?", status).
		Order("created_at DESC")

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	if err != nil {
		return nil, response.Pagination{}, apperr.StoreUnavailable(err, "list posts")
	}
	return posts, pag, nil
}

// Update replaces the editable fields of a post. Only the author or an admin
// may update; the slug is never recomputed.
func (s *Service) Update(id uint, dto *UpdatePostDTO, actor *models.UserModel) (*models.PostModel, error) {
	post, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.ActorID() && !actor.IsAdmin() {
		return nil, apperr.Forbidden("not authorized to update this post")
	}

	updates := map[string]interface{}{
		"title":           dto.Title,
		"content":         dto.Content,
		"excerpt":         dto.Excerpt,
		"cover_image_url": dto.CoverImageURL,
		"tags":            dto.Tags,
	}
	if dto.Status != "" {
		status, ok := models.ParsePostStatus(dto.Status)
		if !ok {
			return nil, apperr.InvalidArgument("unknown post status: %s", dto.Status)
		}
		updates["status"] = status
	}

	if err := s.db.Model(post).Updates(updates).Error; err != nil {
		return nil, apperr.StoreUnavailable(err, "update post")
	}
	return post, nil
}

// Delete removes a post and cascades its like edges. Only the author or an
// admin may delete.
func (s *Service) Delete(id uint, actor *models.UserModel) error {
	post, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if post.AuthorID != actor.ActorID() && !actor.IsAdmin() {
		return apperr.Forbidden("not authorized to delete this post")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLikeModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PostModel{}, "id = ?", id).Error
	})
	if err != nil {
		return apperr.StoreUnavailable(err, "delete post")
	}
	return nil
}

// IncrementViewCount atomically increments the view counter. No application
// level read-modify-write: concurrent increments never lose updates.
func (s *Service) IncrementViewCount(id uint) error {
	err := s.db.Model(&models.PostModel{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return apperr.StoreUnavailable(err, "increment view count")
	}
	return nil
}

// IncrementLikeCount atomically increments the like counter.
func (s *Service) IncrementLikeCount(id uint) error {
	err := s.db.Model(&models.PostModel{}).Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	if err != nil {
		return apperr.StoreUnavailable(err, "increment like count")
	}
	return nil
}

// DecrementLikeCount atomically decrements the like counter, clamped at zero.
// Decrementing an already-zero counter is a no-op, not an error.
func (s *Service) DecrementLikeCount(id uint) error {
	err := s.db.Model(&models.PostModel{}).Where("id = ? AND like_count > 0", id).
		UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	if err != nil {
		return apperr.StoreUnavailable(err, "decrement like count")
	}
	return nil
}

// LikedBy reports whether the user has an active like on the post.
func (s *Service) LikedBy(postID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.PostLikeModel{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, apperr.StoreUnavailable(err, "check like edge")
	}
	return count > 0, nil
}

func (s *Service) slugExists(slug string) (bool, error) {
	var count int64
	err := s.db.Model(&models.PostModel{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, apperr.StoreUnavailable(err, "check slug")
	}
	return count > 0, nil
}
