package models

import "strings"

// PostStatus is the publication state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "DRAFT"
	StatusPublished PostStatus = "PUBLISHED"
)

// ParsePostStatus validates a status string against the declared enum.
// Matching is case-insensitive; the empty string is not valid.
func ParsePostStatus(s string) (PostStatus, bool) {
	switch {
	case strings.EqualFold(s, string(StatusDraft)):
		return StatusDraft, true
	case strings.EqualFold(s, string(StatusPublished)):
		return StatusPublished, true
	}
	return "", false
}

// PostModel is a blog post. The slug is derived from the title on create and
// never recomputed afterwards. Counters are only mutated through atomic column
// updates, never read-modify-write.
type PostModel struct {
	Base
	Title         string     `json:"title"           gorm:"size:200;not null"`
	Slug          string     `json:"slug"            gorm:"uniqueIndex;size:220;not null"`
	Content       string     `json:"content"         gorm:"type:longtext"`
	Excerpt       string     `json:"excerpt"         gorm:"size:500"`
	CoverImageURL string     `json:"cover_image_url"`
	AuthorID      uint       `json:"author_id"       gorm:"index;not null"`
	Author        *UserModel `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Status        PostStatus `json:"status"          gorm:"size:16;default:DRAFT;index"`
	ViewCount     int        `json:"view_count"      gorm:"column:view_count;default:0"`
	LikeCount     int        `json:"like_count"      gorm:"column:like_count;default:0"`
	Tags          string     `json:"tags"`

	Likes []PostLikeModel `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (PostModel) TableName() string { return "posts" }

// PostLikeModel is an active like edge. Identity is the composite
// (post_id, user_id) pair; rows are hard-deleted on toggle-off.
type PostLikeModel struct {
	ID     uint `json:"id"      gorm:"primaryKey;autoIncrement"`
	PostID uint `json:"post_id" gorm:"uniqueIndex:idx_post_user;not null"`
	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_post_user;not null"`
}

func (PostLikeModel) TableName() string { return "post_likes" }
