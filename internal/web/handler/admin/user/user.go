// Package user provides handlers for managing accounts in admin area.
package user

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/db/controller/user"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/paginator"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/handler/admin"
	"github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// Path is the base path for user management.
	Path = urls.AdminUser

	// TemplateList is the template for listing users.
	TemplateList = "admin/user/list"

	// RouteStaff toggles the staff flag.
	RouteStaff = Path + "/:id/staff"
	// RouteActive toggles the active flag.
	RouteActive = Path + "/:id/active"
	// RouteDelete deletes an account.
	RouteDelete = Path + "/:id/delete"

	// NavEntityUser is the admin navigation key.
	NavEntityUser = "user"
	// TitleUsers is the page title.
	TitleUsers = "Пользователи"

	// FormValue carries the new flag value, "on" or "off".
	FormValue = "value"
	valueOn   = "on"
)

// ListView is the view model of the account list.
type ListView struct {
	handler.Page
	Users  *paginator.Page[models.User]
	Search string
	Next   string
}

// Service serves account management.
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

	// Routes
	app.Get(Path, auth.RequireStaff, s.List)
	app.Post(RouteStaff, auth.RequireStaff, s.SetStaff)
	app.Post(RouteActive, auth.RequireStaff, s.SetActive)
	app.Post(RouteDelete, auth.RequireStaff, s.Delete)

	return nil
}

// List shows accounts with pagination and search.
func (s *Service) List(c *fiber.Ctx) error {
	search := c.Query(admin.QuerySearch)

	users, err := user.AdminList(s.env.DBFor(c), search, admin.PageSize, c.Query(handler.QueryPage))
	if err != nil {
		return err //nolint:wrapcheck
	}

	users.WithQuery(url.Values{admin.QuerySearch: {search}})

	nav := admin.Nav(TitleUsers, NavEntityUser).
		AddBreadcrumb(TitleUsers, Path, true)

	return c.Render(TemplateList, ListView{
		Page:   s.env.NewPage(c, nav),
		Users:  users,
		Search: search,
		Next:   c.OriginalURL(),
	}, handler.BaseLayout)
}

// SetStaff grants or revokes staff access.
func (s *Service) SetStaff(c *fiber.Ctx) error {
	return s.toggle(c, "staff", user.SetStaff)
}

// SetActive enables or disables an account.
func (s *Service) SetActive(c *fiber.Ctx) error {
	return s.toggle(c, "active", user.SetActive)
}

// Delete removes an account with its recipes, comments and follow links.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok, err := s.target(c)
	if err != nil || !ok {
		return err
	}

	images, err := user.Delete(s.env.DBFor(c), id)
	if err != nil {
		return handler.NotFound(err, user.ErrUserNotFound)
	}

	for _, key := range images {
		s.env.DeleteMedia(c, key)
	}

	log.Info().Uint("user_id", id).Str("staff", auth.CurrentUser(c).Username).Msg("user deleted")

	return admin.Back(c, Path)
}

func (s *Service) toggle(c *fiber.Ctx, flag string, set func(db *gorm.DB, id uint, v bool) error) error {
	id, ok, err := s.target(c)
	if err != nil || !ok {
		return err
	}

	value := c.FormValue(FormValue) == valueOn

	if err := set(s.env.DBFor(c), id, value); err != nil {
		return handler.NotFound(err, user.ErrUserNotFound)
	}

	log.Info().Uint("user_id", id).Str("flag", flag).Bool("value", value).
		Str("staff", auth.CurrentUser(c).Username).Msg("user updated")

	return admin.Back(c, Path)
}

// target parses the account id. Staff can not lock themselves out: a request
// aimed at the current user is answered with a redirect and ok false.
func (s *Service) target(c *fiber.Ctx) (uint, bool, error) {
	id, err := handler.ParseID(c, urls.ParamID)
	if err != nil {
		return 0, false, err
	}

	if id == auth.CurrentUser(c).ID {
		return id, false, admin.Back(c, Path)
	}

	return id, true, nil
}
