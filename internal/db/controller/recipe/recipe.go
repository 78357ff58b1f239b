// Package recipe provides queries and mutations for recipes.
package recipe

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/paginator"
)

var (
	// ErrRecipeNotFound is returned when no recipe matches.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Newest orders recipes newest first and loads author and group.
func Newest(tx *gorm.DB) *gorm.DB {
	return tx.Order("pub_date desc, id desc").Preload("Author").Preload("Group")
}

// Get returns the recipe with id, author and group loaded.
func Get(db *gorm.DB, id uint) (*models.Recipe, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var r models.Recipe
	if err := db.Preload("Author").Preload("Group").First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}

		return nil, fmt.Errorf("load recipe: %w", err)
	}

	return &r, nil
}

func list(db *gorm.DB, perPage int, page string, where ...any) (*paginator.Page[models.Recipe], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Model(&models.Recipe{})
	if len(where) > 0 {
		query = query.Where(where[0], where[1:]...)
	}

	p, err := paginator.Paginate[models.Recipe](query, perPage, page, Newest)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	return p, nil
}

// List pages all recipes.
func List(db *gorm.DB, perPage int, page string) (*paginator.Page[models.Recipe], error) {
	return list(db, perPage, page)
}

// ListByGroup pages the recipes of a group.
func ListByGroup(db *gorm.DB, groupID uint, perPage int, page string) (*paginator.Page[models.Recipe], error) {
	return list(db, perPage, page, "group_id = ?", groupID)
}

// ListByAuthor pages the recipes of an author.
func ListByAuthor(db *gorm.DB, authorID uint, perPage int, page string) (*paginator.Page[models.Recipe], error) {
	return list(db, perPage, page, "author_id = ?", authorID)
}

// ListFollowed pages the recipes of every author userID follows.
func ListFollowed(db *gorm.DB, userID uint, perPage int, page string) (*paginator.Page[models.Recipe], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	authors := db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", userID)

	return list(db, perPage, page, "author_id IN (?)", authors)
}

// Create inserts r. PubDate is set by the database layer.
func Create(db *gorm.DB, r *models.Recipe) error {
	if db == nil {
		return ErrDBNil
	}

	if err := db.Omit("Author", "Group", "Comments").Create(r).Error; err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}

	return nil
}

// CreateBatch inserts recipes in batches of size.
func CreateBatch(db *gorm.DB, recipes []models.Recipe, size int) error {
	if db == nil {
		return ErrDBNil
	}

	if len(recipes) == 0 {
		return nil
	}

	if err := db.Omit("Author", "Group", "Comments").CreateInBatches(recipes, size).Error; err != nil {
		return fmt.Errorf("bulk create recipes: %w", err)
	}

	return nil
}

// Update saves the editable fields of r. Author and PubDate never change.
func Update(db *gorm.DB, r *models.Recipe) error {
	if db == nil {
		return ErrDBNil
	}

	res := db.Model(&models.Recipe{ID: r.ID}).
		Select("title", "description", "ingredients", "technology", "image", "group_id").
		Updates(map[string]any{
			"title":       r.Title,
			"description": r.Description,
			"ingredients": r.Ingredients,
			"technology":  r.Technology,
			"image":       r.Image,
			"group_id":    r.GroupID,
		})
	if res.Error != nil {
		return fmt.Errorf("update recipe: %w", res.Error)
	}

	return nil
}

// SetGroup moves a recipe to groupID, nil removes it from its group.
func SetGroup(db *gorm.DB, id uint, groupID *uint) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := Get(db, id); err != nil {
		return err
	}

	if err := db.Model(&models.Recipe{ID: id}).Update("group_id", groupID).Error; err != nil {
		return fmt.Errorf("set recipe group: %w", err)
	}

	return nil
}

// Delete removes a recipe and its comments. The image key is returned so the
// caller can remove the stored file.
func Delete(db *gorm.DB, id uint) (string, error) {
	if db == nil {
		return "", ErrDBNil
	}

	var image string

	err := db.Transaction(func(tx *gorm.DB) error {
		var r models.Recipe
		if err := tx.Select("id", "image").First(&r, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}

			return fmt.Errorf("load recipe: %w", err)
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}

		if err := tx.Delete(&models.Recipe{}, id).Error; err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}

		image = r.Image

		return nil
	})

	return image, err //nolint:wrapcheck
}

// AdminFilter narrows the admin recipe list.
type AdminFilter struct {
	// Query matches a part of the title, case insensitive.
	Query string
	// Since keeps recipes published at or after it.
	Since *time.Time
}

// AdminList pages recipes for the admin list.
func AdminList(db *gorm.DB, f AdminFilter, perPage int, page string) (*paginator.Page[models.Recipe], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Model(&models.Recipe{})

	if q := strings.TrimSpace(f.Query); q != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	if f.Since != nil {
		query = query.Where("pub_date >= ?", *f.Since)
	}

	p, err := paginator.Paginate[models.Recipe](query, perPage, page, Newest)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	return p, nil
}
