package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/yacook/yacook/internal/db/controller/group"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/navigation"
	"github.com/yacook/yacook/internal/web/urls"
)

// Page is embedded in every view model and carries what the base layout needs.
type Page struct {
	SiteTitle  string
	Navigation *navigation.Context
	User       *models.User
	CSRFToken  string
	// Groups feeds the sidebar.
	Groups []group.Ref
	// Path is the current request path, used for the login "next" link.
	Path string
}

// NewPage builds the common part of a view model.
func (e *Env) NewPage(c *fiber.Ctx, nav *navigation.Context) Page {
	p := Page{
		SiteTitle:  e.Cfg.Title,
		Navigation: nav,
		User:       auth.CurrentUser(c),
		Path:       c.OriginalURL(),
	}

	if token, ok := c.Locals(LocalsCSRF).(string); ok {
		p.CSRFToken = token
	}

	refs, err := group.Refs(c.UserContext(), e.DB, e.Cache, e.Cfg.Cache.TTL)
	if err != nil {
		log.Error().Err(err).Msg("failed to load group sidebar")
	}

	p.Groups = refs

	return p
}

// Nav starts a navigation context with the home breadcrumb.
func Nav(title, section, page string) *navigation.Context {
	return navigation.NewContext(title, section, page).
		AddBreadcrumb(BreadcrumbHomeLbl, urls.Index, false)
}

// ParseID reads a positive integer route parameter. Anything else is a 404.
func ParseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 0)
	if err != nil || id == 0 {
		return 0, fiber.ErrNotFound
	}

	return uint(id), nil
}

// NotFound maps the given sentinel errors to a 404 and returns other errors unchanged.
func NotFound(err error, sentinels ...error) error {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return fiber.ErrNotFound
		}
	}

	return err
}
