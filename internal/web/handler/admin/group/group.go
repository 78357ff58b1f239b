// Package group provides handlers for managing recipe groups (CRUD) in admin area.
package group

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/yacook/yacook/internal/db/controller/group"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/forms"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/handler/admin"
	"github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// Path is the base path for group management.
	Path = urls.AdminGroup

	// TemplateList is the template for listing groups.
	TemplateList = "admin/group/list"
	// TemplateForm is the template for creating/updating a group.
	TemplateForm = "admin/group/form"

	// NavEntityGroup is the navigation entity key used for groups in the admin area.
	NavEntityGroup = "group"

	// TitleGroups is the page title for the groups list.
	TitleGroups = "Группы"
	// TitleNewGroup is the page title for creating a new group.
	TitleNewGroup = "Добавить группу"
	// TitleEditGroup is the page title for editing an existing group.
	TitleEditGroup = "Изменить группу"

	// RouteNew is the route for rendering the new group form.
	RouteNew = Path + "/new"
	// RouteEdit is the route for rendering the edit group form.
	RouteEdit = Path + "/:id/edit"
	// RouteUpdate is the route for submitting an update to an existing group.
	RouteUpdate = Path + "/:id"
	// RouteDelete is the route for deleting a group.
	RouteDelete = Path + "/:id/delete"
)

// Service provides CRUD operations for groups.
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
	app.Get(RouteNew, auth.RequireStaff, s.New)
	app.Post(Path, auth.RequireStaff, s.Create)
	app.Get(RouteEdit, auth.RequireStaff, s.Edit)
	app.Post(RouteUpdate, auth.RequireStaff, s.Update)
	app.Post(RouteDelete, auth.RequireStaff, s.Delete)

	return nil
}

// List shows groups with pagination and search.
func (s *Service) List(c *fiber.Ctx) error {
	search := c.Query(admin.QuerySearch)

	groups, err := group.AdminList(s.env.DBFor(c), search, admin.PageSize, c.Query(handler.QueryPage))
	if err != nil {
		return err //nolint:wrapcheck
	}

	groups.WithQuery(url.Values{admin.QuerySearch: {search}})

	nav := admin.Nav(TitleGroups, NavEntityGroup).
		AddBreadcrumb(TitleGroups, Path, true)

	return c.Render(TemplateList, ListView{
		Page:   s.env.NewPage(c, nav),
		Groups: groups,
		Search: search,
	}, handler.BaseLayout)
}

// New renders empty form.
func (s *Service) New(c *fiber.Ctx) error {
	return s.renderForm(c, fiber.StatusOK, &forms.Group{}, nil, 0)
}

// Create handles form submission for creating a group.
func (s *Service) Create(c *fiber.Ctx) error {
	form := forms.BindGroup(c)

	if errs := form.Validate(); !errs.Valid() {
		return s.renderForm(c, fiber.StatusBadRequest, form, errs, 0)
	}

	g := &models.Group{Title: form.Title, Slug: form.Slug, Description: form.Description}

	if err := group.Create(s.env.DBFor(c), g); err != nil {
		return s.saveFailed(c, err, form, 0)
	}

	group.InvalidateRefs(c.UserContext(), s.env.Cache)
	log.Info().Str("slug", g.Slug).Msg("group created")

	return c.Redirect(Path)
}

// Edit renders edit form for a group.
func (s *Service) Edit(c *fiber.Ctx) error {
	id, err := handler.ParseID(c, urls.ParamID)
	if err != nil {
		return err
	}

	g, err := group.GetByID(s.env.DBFor(c), id)
	if err != nil {
		return handler.NotFound(err, group.ErrGroupNotFound)
	}

	form := &forms.Group{Title: g.Title, Slug: g.Slug, Description: g.Description}

	return s.renderForm(c, fiber.StatusOK, form, nil, g.ID)
}

// Update handles form submission for updating a group.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParseID(c, urls.ParamID)
	if err != nil {
		return err
	}

	form := forms.BindGroup(c)

	if errs := form.Validate(); !errs.Valid() {
		return s.renderForm(c, fiber.StatusBadRequest, form, errs, id)
	}

	g := &models.Group{ID: id, Title: form.Title, Slug: form.Slug, Description: form.Description}

	if err := group.Update(s.env.DBFor(c), g); err != nil {
		return s.saveFailed(c, err, form, id)
	}

	group.InvalidateRefs(c.UserContext(), s.env.Cache)

	return c.Redirect(Path)
}

// Delete deletes a group. Its recipes stay without group.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParseID(c, urls.ParamID)
	if err != nil {
		return err
	}

	if err := group.Delete(s.env.DBFor(c), id); err != nil {
		return handler.NotFound(err, group.ErrGroupNotFound)
	}

	group.InvalidateRefs(c.UserContext(), s.env.Cache)
	log.Info().Uint("group_id", id).Msg("group deleted")

	return admin.Back(c, Path)
}

func (s *Service) saveFailed(c *fiber.Ctx, err error, form *forms.Group, id uint) error {
	switch {
	case errors.Is(err, group.ErrSlugTaken):
		errs := forms.Errors{}
		forms.SlugTaken(errs)

		return s.renderForm(c, fiber.StatusBadRequest, form, errs, id)
	case errors.Is(err, group.ErrGroupNotFound):
		return fiber.ErrNotFound
	default:
		return err
	}
}

func (s *Service) renderForm(c *fiber.Ctx, status int, form *forms.Group, errs forms.Errors, id uint) error {
	if errs == nil {
		errs = forms.Errors{}
	}

	title, action := TitleNewGroup, Path
	if id > 0 {
		title, action = TitleEditGroup, urls.AdminURL(Path, id, "")
	}

	nav := admin.Nav(title, NavEntityGroup).
		AddBreadcrumb(TitleGroups, Path, false).
		AddBreadcrumb(title, "", true)

	return c.Status(status).Render(TemplateForm, FormView{
		Page:     s.env.NewPage(c, nav),
		Form:     form,
		Errors:   errs,
		ID:       id,
		IsCreate: id == 0,
		Action:   action,
	}, handler.BaseLayout)
}
