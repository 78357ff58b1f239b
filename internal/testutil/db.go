// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yacook/yacook/internal/db"
	"github.com/yacook/yacook/internal/db/models"
)

var seq atomic.Int64

// DB returns a migrated sqlite database that lives as long as the test.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return gdb
}

// Password is the plaintext password of every user created by CreateUser.
const Password = "correct-horse-battery"

// CreateUser inserts an active user.
func CreateUser(t *testing.T, gdb *gorm.DB, username string) *models.User {
	t.Helper()

	u := &models.User{Username: username, Email: username + "@example.com", Active: true}
	require.NoError(t, u.SetPassword(Password))
	require.NoError(t, gdb.Create(u).Error)

	return u
}

// CreateStaff inserts an active staff user.
func CreateStaff(t *testing.T, gdb *gorm.DB, username string) *models.User {
	t.Helper()

	u := CreateUser(t, gdb, username)
	require.NoError(t, gdb.Model(u).Update("is_staff", true).Error)
	u.IsStaff = true

	return u
}

// CreateGroup inserts a group with the given slug.
func CreateGroup(t *testing.T, gdb *gorm.DB, slug string) *models.Group {
	t.Helper()

	g := &models.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, gdb.Create(g).Error)

	return g
}

// CreateRecipe inserts a recipe by author. Each call gets a strictly later pub_date.
func CreateRecipe(t *testing.T, gdb *gorm.DB, author *models.User, group *models.Group, title string) *models.Recipe {
	t.Helper()

	r := &models.Recipe{
		Title:       title,
		Description: "description of " + title,
		Ingredients: "salt: 1 pinch",
		Technology:  "mix",
		AuthorID:    author.ID,
		PubDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(seq.Add(1)) * time.Minute),
	}

	if group != nil {
		r.GroupID = &group.ID
	}

	require.NoError(t, gdb.Create(r).Error)

	return r
}

// CreateComment inserts a comment by author on recipe.
func CreateComment(t *testing.T, gdb *gorm.DB, recipe *models.Recipe, author *models.User, text string) *models.Comment {
	t.Helper()

	c := &models.Comment{
		RecipeID: recipe.ID,
		AuthorID: author.ID,
		Text:     text,
		Created:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(seq.Add(1)) * time.Minute),
	}
	require.NoError(t, gdb.Create(c).Error)

	return c
}

// CreateRecipes inserts n recipes titled "<prefix> 1".."<prefix> n".
func CreateRecipes(t *testing.T, gdb *gorm.DB, author *models.User, group *models.Group, prefix string, n int) []*models.Recipe {
	t.Helper()

	out := make([]*models.Recipe, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, CreateRecipe(t, gdb, author, group, fmt.Sprintf("%s %d", prefix, i)))
	}

	return out
}
