// Package recipe is the staff changelist of recipes.
package recipe

import (
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/yacook/yacook/internal/db/controller/group"
	"github.com/yacook/yacook/internal/db/controller/recipe"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/forms"
	"github.com/yacook/yacook/internal/paginator"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/handler/admin"
	"github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// Path is the recipe changelist.
	Path = urls.AdminRecipe
	// TemplateList renders the changelist.
	TemplateList = "admin/recipe/list"

	// RouteGroup moves a recipe to another group.
	RouteGroup = Path + "/:id/group"
	// RouteDelete deletes a recipe.
	RouteDelete = Path + "/:id/delete"

	// NavEntityRecipe is the admin navigation key.
	NavEntityRecipe = "recipe"
	// TitleRecipes is the page title.
	TitleRecipes = "Рецепты"
)

// ListView is the view model of the recipe changelist.
type ListView struct {
	handler.Page
	Recipes *paginator.Page[models.Recipe]
	// AllGroups feeds the inline group select of every row.
	AllGroups []models.Group
	Search    string
	Since     string
	Dates     []admin.DateChoice
	// Next is the current list url, posted back by the row forms.
	Next string
}

// Service serves the recipe changelist.
type Service struct {
	handler.Service
	env *handler.Env
	now func() time.Time
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, env *handler.Env) error {
	if err := env.Check(app); err != nil {
		return err
	}

	s.env = env
	if s.now == nil {
		s.now = time.Now
	}

	app.Get(Path, auth.RequireStaff, s.List)
	app.Post(RouteGroup, auth.RequireStaff, s.SetGroup)
	app.Post(RouteDelete, auth.RequireStaff, s.Delete)

	return nil
}

// List pages recipes filtered by title and publication date.
func (s *Service) List(c *fiber.Ctx) error {
	db := s.env.DBFor(c)
	search, since := c.Query(admin.QuerySearch), c.Query(admin.QuerySince)

	recipes, err := recipe.AdminList(db, recipe.AdminFilter{
		Query: search,
		Since: admin.Since(since, s.now()),
	}, admin.PageSize, c.Query(handler.QueryPage))
	if err != nil {
		return err //nolint:wrapcheck
	}

	recipes.WithQuery(url.Values{admin.QuerySearch: {search}, admin.QuerySince: {since}})

	groups, err := group.All(db)
	if err != nil {
		return err //nolint:wrapcheck
	}

	nav := admin.Nav(TitleRecipes, NavEntityRecipe).
		AddBreadcrumb(TitleRecipes, Path, true)

	return c.Render(TemplateList, ListView{
		Page:      s.env.NewPage(c, nav),
		Recipes:   recipes,
		AllGroups: groups,
		Search:    search,
		Since:     since,
		Dates:     admin.DateChoices(since),
		Next:      c.OriginalURL(),
	}, handler.BaseLayout)
}

// SetGroup applies the inline group select. An empty value removes the group.
func (s *Service) SetGroup(c *fiber.Ctx) error {
	id, err := handler.ParseID(c, urls.ParamID)
	if err != nil {
		return err
	}

	db := s.env.DBFor(c)

	var groupID *uint

	if raw := c.FormValue(forms.FieldGroup); raw != "" {
		gid, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fiber.ErrBadRequest
		}

		exists, err := group.Exists(db, uint(gid))
		if err != nil {
			return err //nolint:wrapcheck
		}

		if !exists {
			return fiber.ErrBadRequest
		}

		v := uint(gid)
		groupID = &v
	}

	if err := recipe.SetGroup(db, id, groupID); err != nil {
		return handler.NotFound(err, recipe.ErrRecipeNotFound)
	}

	return admin.Back(c, Path)
}

// Delete removes a recipe with its comments and image.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParseID(c, urls.ParamID)
	if err != nil {
		return err
	}

	image, err := recipe.Delete(s.env.DBFor(c), id)
	if err != nil {
		return handler.NotFound(err, recipe.ErrRecipeNotFound)
	}

	s.env.DeleteMedia(c, image)
	log.Info().Uint("recipe_id", id).Str("staff", auth.CurrentUser(c).Username).Msg("recipe deleted by staff")

	return admin.Back(c, Path)
}
