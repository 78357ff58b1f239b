// Package group renders the recipes of one group.
package group

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yacook/yacook/internal/db/controller/group"
	"github.com/yacook/yacook/internal/db/controller/recipe"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/paginator"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// Template lists the recipes of a group.
	Template = "recipes/group_list"

	// NavPage is the navigation page key.
	NavPage = "group"
)

// View is the view model of the group page.
type View struct {
	handler.Page
	Group   *models.Group
	Recipes *paginator.Page[models.Recipe]
}

// Service renders the group page.
type Service struct {
	handler.Service
	env *handler.Env
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, env *handler.Env) error {
	if err := env.Check(app); err != nil {
		return err
	}

	s.env = env

	app.Get(urls.Group, s.Get)

	return nil
}

// Get lists the recipes of the group named by the slug parameter.
func (s *Service) Get(c *fiber.Ctx) error {
	db := s.env.DBFor(c)

	g, err := group.GetBySlug(db, c.Params(urls.ParamSlug))
	if err != nil {
		return handler.NotFound(err, group.ErrGroupNotFound)
	}

	page, err := recipe.ListByGroup(db, g.ID, s.env.PageSize(), c.Query(handler.QueryPage))
	if err != nil {
		return err //nolint:wrapcheck
	}

	nav := handler.Nav(g.Title, handler.NavRecipes, NavPage).
		AddBreadcrumb(g.Title, urls.GroupURL(g.Slug), true)

	return c.Render(Template, View{
		Page:    s.env.NewPage(c, nav),
		Group:   g,
		Recipes: page,
	}, handler.BaseLayout)
}
