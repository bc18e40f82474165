package post

import (
	"github.com/techblog/core/internal/models"
	"github.com/techblog/core/internal/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeLedger tracks which (post, user) pairs hold an active like and keeps the
// post's like counter in step with the edge set.
type LikeLedger struct {
	db    *gorm.DB
	posts *Service
}

func NewLikeLedger(db *gorm.DB, posts *Service) *LikeLedger {
	return &LikeLedger{db: db, posts: posts}
}

// Toggle flips the like edge for (postID, userID) and returns the new liked
// state. Both directions are conditional writes guarded by the unique edge
// index: the insert ignores an existing edge and the counter only moves when a
// row was actually inserted or deleted, so concurrent toggles from the same
// user cannot double-count.
func (l *LikeLedger) Toggle(postID, userID uint) (bool, error) {
	edge := models.PostLikeModel{PostID: postID, UserID: userID}
	res := l.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge)
	if res.Error != nil {
		return false, apperr.StoreUnavailable(res.Error, "insert like edge")
	}
	if res.RowsAffected > 0 {
		if err := l.posts.IncrementLikeCount(postID); err != nil {
			return true, err
		}
		return true, nil
	}

	res = l.db.Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.PostLikeModel{})
	if res.Error != nil {
		return false, apperr.StoreUnavailable(res.Error, "delete like edge")
	}
	if res.RowsAffected > 0 {
		if err := l.posts.DecrementLikeCount(postID); err != nil {
			return false, err
		}
	}
	return false, nil
}
