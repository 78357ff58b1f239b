package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/cache"
	"github.com/yacook/yacook/internal/config"
	"github.com/yacook/yacook/internal/media"
	"github.com/yacook/yacook/internal/paginator"
)

// ErrNilEnv is returned by Init when a required dependency is missing.
var ErrNilEnv = errors.New(ErrNilEnvFatalLogMsg)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, env *Env) error
}

// Env bundles the dependencies shared by every handler.
type Env struct {
	Cfg   *config.Config
	DB    *gorm.DB
	Cache cache.Cache
	Media media.Store
}

// Check returns ErrNilEnv when app or a required dependency is nil.
func (e *Env) Check(app *fiber.App) error {
	if app == nil || e == nil || e.Cfg == nil || e.DB == nil {
		return ErrNilEnv
	}

	return nil
}

// DBFor returns the database bound to the request context.
func (e *Env) DBFor(c *fiber.Ctx) *gorm.DB {
	return e.DB.WithContext(c.UserContext())
}

// PageSize is the number of recipes per page.
func (e *Env) PageSize() int {
	if e.Cfg.Recipes.PageSize > 0 {
		return e.Cfg.Recipes.PageSize
	}

	return paginator.DefaultPerPage
}

// DeleteMedia removes a stored upload. Failures are logged, the row is already gone.
func (e *Env) DeleteMedia(c *fiber.Ctx, key string) {
	if key == "" || e.Media == nil {
		return
	}

	if err := e.Media.Delete(c.UserContext(), key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete media")
	}
}
