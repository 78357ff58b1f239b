// Package user provides queries and mutations for local accounts.
package user

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/paginator"
)

var (
	// ErrUserNotFound is returned when no user matches.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when the username is already in use.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrUsernameEmpty is returned when creating a user without username.
	ErrUsernameEmpty = errors.New("username can not be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

func first(db *gorm.DB, query any, args ...any) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	if err := db.Where(query, args...).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("load user: %w", err)
	}

	return &u, nil
}

// GetByUsername returns the user with username.
func GetByUsername(db *gorm.DB, username string) (*models.User, error) {
	return first(db, "username = ?", username)
}

// GetByID returns the user with id.
func GetByID(db *gorm.DB, id uint) (*models.User, error) {
	return first(db, "id = ?", id)
}

// UsernameTaken reports whether username is in use. The check ignores case.
func UsernameTaken(db *gorm.DB, username string) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var n int64
	if err := db.Model(&models.User{}).Where("LOWER(username) = ?", strings.ToLower(username)).
		Count(&n).Error; err != nil {
		return false, fmt.Errorf("count username: %w", err)
	}

	return n > 0, nil
}

// Create hashes password and inserts u.
func Create(db *gorm.DB, u *models.User, password string) error {
	if db == nil {
		return ErrDBNil
	}

	if u.Username == "" {
		return ErrUsernameEmpty
	}

	taken, err := UsernameTaken(db, u.Username)
	if err != nil {
		return err
	}

	if taken {
		return ErrUsernameTaken
	}

	if err := u.SetPassword(password); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := db.Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// Delete removes a user with everything that belongs to them: their recipes
// (and the comments on those), their comments and their follow links.
// It returns the image keys of the deleted recipes.
func Delete(db *gorm.DB, id uint) ([]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var images []string

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetByID(tx, id); err != nil {
			return err
		}

		recipes := tx.Model(&models.Recipe{}).Select("id").Where("author_id = ?", id)

		if err := tx.Model(&models.Recipe{}).Where("author_id = ? AND image <> ''", id).
			Pluck("image", &images).Error; err != nil {
			return fmt.Errorf("collect images: %w", err)
		}

		steps := []struct {
			what  string
			model any
			query string
			args  []any
		}{
			{"comments on recipes", &models.Comment{}, "recipe_id IN (?)", []any{recipes}},
			{"comments", &models.Comment{}, "author_id = ?", []any{id}},
			{"recipes", &models.Recipe{}, "author_id = ?", []any{id}},
			{"follows", &models.Follow{}, "user_id = ? OR author_id = ?", []any{id, id}},
			{"user", &models.User{}, "id = ?", []any{id}},
		}

		for _, s := range steps {
			if err := tx.Where(s.query, s.args...).Delete(s.model).Error; err != nil {
				return fmt.Errorf("delete %s: %w", s.what, err)
			}
		}

		return nil
	})

	return images, err //nolint:wrapcheck
}

func setFlag(db *gorm.DB, id uint, column string, value bool) error {
	if db == nil {
		return ErrDBNil
	}

	res := db.Model(&models.User{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("update %s: %w", column, res.Error)
	}

	if res.RowsAffected == 0 {
		if _, err := GetByID(db, id); err != nil {
			return err
		}
	}

	return nil
}

// SetActive enables or disables the account id. Disabled accounts can not log in.
func SetActive(db *gorm.DB, id uint, active bool) error {
	return setFlag(db, id, "active", active)
}

// SetStaff grants or revokes access to the admin pages.
func SetStaff(db *gorm.DB, id uint, staff bool) error {
	return setFlag(db, id, "is_staff", staff)
}

// AdminList pages users whose username, email or name contains q.
func AdminList(db *gorm.DB, q string, perPage int, page string) (*paginator.Page[models.User], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Model(&models.User{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			like, like, like, like,
		)
	}

	p, err := paginator.Paginate[models.User](query, perPage, page, func(tx *gorm.DB) *gorm.DB {
		return tx.Order("username")
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return p, nil
}
