// Package follow renders the feed of the authors the current user follows.
package follow

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yacook/yacook/internal/db/controller/follow"
	"github.com/yacook/yacook/internal/db/controller/recipe"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/paginator"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// Template is the feed page.
	Template = "recipes/follow"

	// Title is the page title.
	Title = "Подписки"
)

// View is the view model of the feed.
type View struct {
	handler.Page
	// Following lists the followed authors.
	Following []models.User
	Recipes   *paginator.Page[models.Recipe]
}

// Service renders the feed.
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

	app.Get(urls.Follow, auth.RequireLogin, s.Get)

	return nil
}

// Get lists the recipes of followed authors.
func (s *Service) Get(c *fiber.Ctx) error {
	db := s.env.DBFor(c)
	u := auth.CurrentUser(c)

	authors, err := follow.Authors(db, u.ID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	page, err := recipe.ListFollowed(db, u.ID, s.env.PageSize(), c.Query(handler.QueryPage))
	if err != nil {
		return err //nolint:wrapcheck
	}

	nav := handler.Nav(Title, handler.NavFollow, handler.NavFollow).
		AddBreadcrumb(Title, urls.Follow+"/", true)

	return c.Render(Template, View{
		Page:      s.env.NewPage(c, nav),
		Following: authors,
		Recipes:   page,
	}, handler.BaseLayout)
}
