// Package follow is the staff changelist of follow links.
package follow

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yacook/yacook/internal/db/controller/follow"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/paginator"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/handler/admin"
	"github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// Path is the follow changelist.
	Path = urls.AdminFollow
	// TemplateList renders the changelist.
	TemplateList = "admin/follow/list"
	// RouteDelete deletes a follow link.
	RouteDelete = Path + "/:id/delete"

	// NavEntityFollow is the admin navigation key.
	NavEntityFollow = "follow"
	// TitleFollows is the page title.
	TitleFollows = "Подписки"
)

// ListView is the view model of the follow changelist.
type ListView struct {
	handler.Page
	Follows *paginator.Page[models.Follow]
	Next    string
}

// Service serves the follow changelist.
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

	app.Get(Path, auth.RequireStaff, s.List)
	app.Post(RouteDelete, auth.RequireStaff, s.Delete)

	return nil
}

// List pages follow links.
func (s *Service) List(c *fiber.Ctx) error {
	follows, err := follow.AdminList(s.env.DBFor(c), admin.PageSize, c.Query(handler.QueryPage))
	if err != nil {
		return err //nolint:wrapcheck
	}

	nav := admin.Nav(TitleFollows, NavEntityFollow).
		AddBreadcrumb(TitleFollows, Path, true)

	return c.Render(TemplateList, ListView{
		Page:    s.env.NewPage(c, nav),
		Follows: follows,
		Next:    c.OriginalURL(),
	}, handler.BaseLayout)
}

// Delete removes a follow link.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParseID(c, urls.ParamID)
	if err != nil {
		return err
	}

	if err := follow.Delete(s.env.DBFor(c), id); err != nil {
		return handler.NotFound(err, follow.ErrFollowNotFound)
	}

	return admin.Back(c, Path)
}
