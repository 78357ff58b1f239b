// Package group provides queries and mutations for recipe groups.
package group

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/paginator"
)

var (
	// ErrGroupNotFound is returned when no group matches.
	ErrGroupNotFound = errors.New("group not found")
	// ErrSlugTaken is returned when another group already uses the slug.
	ErrSlugTaken = errors.New("group slug already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

func first(db *gorm.DB, query any, args ...any) (*models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var g models.Group
	if err := db.Where(query, args...).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}

		return nil, fmt.Errorf("load group: %w", err)
	}

	return &g, nil
}

// GetBySlug returns the group with slug.
func GetBySlug(db *gorm.DB, slug string) (*models.Group, error) {
	return first(db, "slug = ?", slug)
}

// GetByID returns the group with id.
func GetByID(db *gorm.DB, id uint) (*models.Group, error) {
	return first(db, "id = ?", id)
}

// All returns every group ordered by title.
func All(db *gorm.DB) ([]models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var groups []models.Group
	if err := db.Order("title, id").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	return groups, nil
}

// Exists reports whether a group with id exists.
func Exists(db *gorm.DB, id uint) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var n int64
	if err := db.Model(&models.Group{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count group: %w", err)
	}

	return n > 0, nil
}

// SlugTaken reports whether a group other than exceptID uses slug.
func SlugTaken(db *gorm.DB, slug string, exceptID uint) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var n int64
	if err := db.Model(&models.Group{}).Where("slug = ? AND id <> ?", slug, exceptID).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count slug: %w", err)
	}

	return n > 0, nil
}

// Create inserts g. An empty slug is derived from the title.
func Create(db *gorm.DB, g *models.Group) error {
	if db == nil {
		return ErrDBNil
	}

	if g.Slug == "" {
		g.Slug = Slugify(g.Title)
	}

	taken, err := SlugTaken(db, g.Slug, 0)
	if err != nil {
		return err
	}

	if taken {
		return ErrSlugTaken
	}

	if err := db.Create(g).Error; err != nil {
		return fmt.Errorf("create group: %w", err)
	}

	return nil
}

// Update saves title, slug and description of g.
func Update(db *gorm.DB, g *models.Group) error {
	if db == nil {
		return ErrDBNil
	}

	if g.Slug == "" {
		g.Slug = Slugify(g.Title)
	}

	taken, err := SlugTaken(db, g.Slug, g.ID)
	if err != nil {
		return err
	}

	if taken {
		return ErrSlugTaken
	}

	if _, err := GetByID(db, g.ID); err != nil {
		return err
	}

	res := db.Model(&models.Group{ID: g.ID}).
		Select("title", "slug", "description").
		Updates(&models.Group{Title: g.Title, Slug: g.Slug, Description: g.Description})
	if res.Error != nil {
		return fmt.Errorf("update group: %w", res.Error)
	}

	return nil
}

// Delete removes the group and unlinks its recipes.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Recipe{}).Where("group_id = ?", id).
			Update("group_id", nil).Error; err != nil {
			return fmt.Errorf("unlink recipes: %w", err)
		}

		res := tx.Delete(&models.Group{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete group: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			return ErrGroupNotFound
		}

		return nil
	})
}

// GetOrCreate returns the group matching title and slug, creating it when absent.
func GetOrCreate(db *gorm.DB, title, slug string) (*models.Group, bool, error) {
	if db == nil {
		return nil, false, ErrDBNil
	}

	g := models.Group{Title: title, Slug: slug}

	res := db.Where(&models.Group{Title: title, Slug: slug}).Attrs(models.Group{Description: title}).FirstOrCreate(&g)
	if res.Error != nil {
		return nil, false, fmt.Errorf("get or create group %q: %w", slug, res.Error)
	}

	return &g, res.RowsAffected > 0, nil
}

// AdminRow is a group with the number of recipes in it.
type AdminRow struct {
	models.Group
	Recipes int64
}

// AdminList pages groups whose title or slug contains q.
func AdminList(db *gorm.DB, q string, perPage int, page string) (*paginator.Page[AdminRow], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Model(&models.Group{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(slug) LIKE ?", like, like)
	}

	return paginator.Paginate[AdminRow](query, perPage, page, func(tx *gorm.DB) *gorm.DB {
		return tx.Select("recipe_groups.*, (SELECT COUNT(*) FROM recipes WHERE recipes.group_id = recipe_groups.id) AS recipes").
			Order("title, id")
	})
}
