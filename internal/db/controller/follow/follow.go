// Package follow manages follower to author links.
package follow

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/paginator"
)

var (
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("users can not follow themselves")
	// ErrFollowNotFound is returned when no follow link matches.
	ErrFollowNotFound = errors.New("follow not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Follow links userID to authorID unless the link already exists.
func Follow(db *gorm.DB, userID, authorID uint) error {
	if db == nil {
		return ErrDBNil
	}

	if userID == authorID {
		return ErrSelfFollow
	}

	f := models.Follow{UserID: userID, AuthorID: authorID}
	if err := db.Where(&models.Follow{UserID: userID, AuthorID: authorID}).FirstOrCreate(&f).Error; err != nil {
		return fmt.Errorf("follow: %w", err)
	}

	return nil
}

// Unfollow removes every follow link to authorID. Missing links are not an error.
func Unfollow(db *gorm.DB, authorID uint) error {
	if db == nil {
		return ErrDBNil
	}

	if err := db.Where("author_id = ?", authorID).Delete(&models.Follow{}).Error; err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}

	return nil
}

// IsFollowing reports whether userID follows authorID.
func IsFollowing(db *gorm.DB, userID, authorID uint) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var n int64
	if err := db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count follow: %w", err)
	}

	return n > 0, nil
}

// Followers counts the users following authorID.
func Followers(db *gorm.DB, authorID uint) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var n int64
	if err := db.Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count followers: %w", err)
	}

	return n, nil
}

// Authors returns the users userID follows, ordered by username.
func Authors(db *gorm.DB, userID uint) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var users []models.User
	if err := db.Where("id IN (?)", db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", userID)).
		Order("username").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list followed authors: %w", err)
	}

	return users, nil
}

// AdminList pages every follow link.
func AdminList(db *gorm.DB, perPage int, page string) (*paginator.Page[models.Follow], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	p, err := paginator.Paginate[models.Follow](db.Model(&models.Follow{}), perPage, page, func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("User").Preload("Author").Order("id desc")
	})
	if err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}

	return p, nil
}

// Delete removes the follow link id.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	res := db.Delete(&models.Follow{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete follow: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrFollowNotFound
	}

	return nil
}
