// Package dashboard provides the admin index: row counts and the latest recipes.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yacook/yacook/internal/db/controller/recipe"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/handler/admin"
	"github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// Path is the path to the dashboard page.
	Path = urls.Admin

	// TemplateName is the name of the dashboard template.
	TemplateName = "admin/index"

	// LatestSize is the number of latest recipes shown.
	LatestSize = 5

	title = "Администрирование"
)

// Section is one admin changelist with its row count.
type Section struct {
	Title string
	URL   string
	Count int64
	model any
}

// View is the view model of the dashboard.
type View struct {
	handler.Page
	Sections []Section
	Latest   []models.Recipe
}

// Service serves the dashboard.
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

	app.Get(Path, auth.RequireStaff, s.Get)

	return nil
}

func sections() []Section {
	return []Section{
		{Title: "Рецепты", URL: urls.AdminRecipe, model: &models.Recipe{}},
		{Title: "Группы", URL: urls.AdminGroup, model: &models.Group{}},
		{Title: "Комментарии", URL: urls.AdminComment, model: &models.Comment{}},
		{Title: "Подписки", URL: urls.AdminFollow, model: &models.Follow{}},
		{Title: "Пользователи", URL: urls.AdminUser, model: &models.User{}},
	}
}

// Get renders the dashboard.
func (s *Service) Get(c *fiber.Ctx) error {
	db := s.env.DBFor(c)
	out := sections()

	var g errgroup.Group

	for i := range out {
		g.Go(func() error {
			return db.Model(out[i].model).Count(&out[i].Count).Error
		})
	}

	latest, err := recipe.List(db, LatestSize, "")
	if err != nil {
		return err //nolint:wrapcheck
	}

	if err := g.Wait(); err != nil {
		return err //nolint:wrapcheck
	}

	nav := handler.Nav(title, handler.NavAdmin, "index").
		AddBreadcrumb(admin.BreadcrumbAdminLbl, Path, true)

	return c.Render(TemplateName, View{
		Page:     s.env.NewPage(c, nav),
		Sections: out,
		Latest:   latest.Items,
	}, handler.BaseLayout)
}
