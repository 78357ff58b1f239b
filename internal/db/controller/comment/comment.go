// Package comment provides queries and mutations for recipe comments.
package comment

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/paginator"
)

var (
	// ErrCommentNotFound is returned when no comment matches.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get returns comment id of recipe recipeID with its author loaded.
func Get(db *gorm.DB, recipeID, id uint) (*models.Comment, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var c models.Comment
	if err := db.Preload("Author").Where("recipe_id = ?", recipeID).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}

		return nil, fmt.Errorf("load comment: %w", err)
	}

	return &c, nil
}

// ListForRecipe returns the comments of a recipe, newest first.
func ListForRecipe(db *gorm.DB, recipeID uint) ([]models.Comment, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var comments []models.Comment
	if err := db.Preload("Author").Where("recipe_id = ?", recipeID).
		Order("created desc, id desc").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return comments, nil
}

// Create inserts c.
func Create(db *gorm.DB, c *models.Comment) error {
	if db == nil {
		return ErrDBNil
	}

	if err := db.Omit("Author", "Recipe").Create(c).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

// UpdateText replaces the text of comment id.
func UpdateText(db *gorm.DB, id uint, text string) error {
	if db == nil {
		return ErrDBNil
	}

	if err := db.Model(&models.Comment{ID: id}).Update("text", text).Error; err != nil {
		return fmt.Errorf("update comment: %w", err)
	}

	return nil
}

// Delete removes comment id.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	res := db.Delete(&models.Comment{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete comment: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// AdminList pages every comment created at or after since (nil for all), newest first.
func AdminList(db *gorm.DB, since *time.Time, perPage int, page string) (*paginator.Page[models.Comment], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Model(&models.Comment{})
	if since != nil {
		query = query.Where("created >= ?", *since)
	}

	p, err := paginator.Paginate[models.Comment](query, perPage, page, func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("Author").Preload("Recipe").Order("created desc, id desc")
	})
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return p, nil
}
