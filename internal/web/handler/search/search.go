// Package search renders recipes whose title or ingredients match a pattern.
package search

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/yacook/yacook/internal/db/controller/recipe"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/paginator"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// Template is the result page.
	Template = "recipes/search"

	// QuerySearch is the query parameter holding the pattern.
	QuerySearch = "s"

	// Title is the page title.
	Title = "Поиск"
)

// View is the view model of the result page.
type View struct {
	handler.Page
	Query   string
	Recipes *paginator.Page[models.Recipe]
}

// Service renders search results.
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

	app.Get(urls.Search, s.Get)

	return nil
}

// Get lists recipes matching the s parameter, case insensitive. Page links keep the pattern.
func (s *Service) Get(c *fiber.Ctx) error {
	q := c.Query(QuerySearch)

	page, err := recipe.Search(s.env.DBFor(c), q, s.env.PageSize(), c.Query(handler.QueryPage))
	if err != nil {
		return err //nolint:wrapcheck
	}

	page.WithQuery(url.Values{QuerySearch: {q}})

	nav := handler.Nav(Title, handler.NavSearch, handler.NavSearch).
		AddBreadcrumb(Title, "", true)

	return c.Render(Template, View{
		Page:    s.env.NewPage(c, nav),
		Query:   q,
		Recipes: page,
	}, handler.BaseLayout)
}
