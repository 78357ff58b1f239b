// Package recipe provides the recipe list, detail and the author's create, edit and delete pages.
package recipe

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/yacook/yacook/internal/db/controller/comment"
	"github.com/yacook/yacook/internal/db/controller/group"
	"github.com/yacook/yacook/internal/db/controller/recipe"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/forms"
	"github.com/yacook/yacook/internal/media"
	"github.com/yacook/yacook/internal/paginator"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// TemplateIndex lists all recipes.
	TemplateIndex = "recipes/index"
	// TemplateDetail shows one recipe with its comments.
	TemplateDetail = "recipes/recipe_detail"
	// TemplateForm is the create/edit form.
	TemplateForm = "recipes/create_recipe"

	// NavPageIndex is the navigation page key of the index.
	NavPageIndex = "index"
	// NavPageDetail is the navigation page key of the detail page.
	NavPageDetail = "detail"
	// NavPageEdit is the navigation page key of the edit page.
	NavPageEdit = "edit"

	// TitleIndex is the page title of the index.
	TitleIndex = "Последние обновления на сайте"
	// TitleCreate is the page title of the create form.
	TitleCreate = "Новый рецепт"
	// TitleEdit is the page title of the edit form.
	TitleEdit = "Редактировать рецепт"
)

// ErrMediaNil is returned by Init when no media store is configured.
var ErrMediaNil = errors.New("media store is nil")

// ListView is the view model of the index.
type ListView struct {
	handler.Page
	Recipes *paginator.Page[models.Recipe]
}

// DetailView is the view model of the detail page.
type DetailView struct {
	handler.Page
	Recipe   *models.Recipe
	Comments []models.Comment
	Form     *forms.Comment
	IsAuthor bool
}

// FormView is the view model of the create/edit form.
type FormView struct {
	handler.Page
	Form   *forms.Recipe
	Errors forms.Errors
	Groups []models.Group
	IsEdit bool
	// Recipe is the edited recipe, nil on create.
	Recipe *models.Recipe
}

// Service renders recipe pages.
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

	if env.Media == nil {
		return ErrMediaNil
	}

	s.env = env

	app.Get(urls.Index, s.Index)
	app.Get(urls.Recipe, s.Detail)

	app.Route(urls.Create, func(router fiber.Router) {
		router.Get(handler.RootPath, auth.RequireLogin, s.New)
		router.Post(handler.RootPath, auth.RequireLogin, s.Create)
	})

	app.Get(urls.RecipeEdit, auth.RequireLogin, s.Edit)
	app.Post(urls.RecipeEdit, auth.RequireLogin, s.Update)
	app.Get(urls.RecipeDelete, auth.RequireLogin, s.Delete)
	app.Post(urls.RecipeDelete, auth.RequireLogin, s.Delete)

	return nil
}

// Index lists every recipe, newest first.
func (s *Service) Index(c *fiber.Ctx) error {
	page, err := recipe.List(s.env.DBFor(c), s.env.PageSize(), c.Query(handler.QueryPage))
	if err != nil {
		return err //nolint:wrapcheck
	}

	nav := handler.Nav(TitleIndex, handler.NavRecipes, NavPageIndex)

	return c.Render(TemplateIndex, ListView{
		Page:    s.env.NewPage(c, nav),
		Recipes: page,
	}, handler.BaseLayout)
}

func (s *Service) load(c *fiber.Ctx) (*models.Recipe, error) {
	id, err := handler.ParseID(c, urls.ParamID)
	if err != nil {
		return nil, err
	}

	r, err := recipe.Get(s.env.DBFor(c), id)

	return r, handler.NotFound(err, recipe.ErrRecipeNotFound)
}

// Detail shows a recipe, its comments and the comment form.
func (s *Service) Detail(c *fiber.Ctx) error {
	r, err := s.load(c)
	if err != nil {
		return err
	}

	comments, err := comment.ListForRecipe(s.env.DBFor(c), r.ID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	nav := handler.Nav(r.Title, handler.NavRecipes, NavPageDetail).
		AddBreadcrumb(r.Author.FullName(), urls.ProfileURL(r.Author.Username), false).
		AddBreadcrumb(r.Title, urls.RecipeURL(r.ID), true)

	u := auth.CurrentUser(c)

	return c.Render(TemplateDetail, DetailView{
		Page:     s.env.NewPage(c, nav),
		Recipe:   r,
		Comments: comments,
		Form:     &forms.Comment{},
		IsAuthor: u != nil && u.ID == r.AuthorID,
	}, handler.BaseLayout)
}

// New renders the empty create form.
func (s *Service) New(c *fiber.Ctx) error {
	return s.renderForm(c, fiber.StatusOK, &forms.Recipe{}, nil, nil)
}

// Create validates the form and publishes a recipe of the current user.
func (s *Service) Create(c *fiber.Ctx) error {
	u := auth.CurrentUser(c)

	form := forms.BindRecipe(c)

	errs, err := s.validate(c, form)
	if err != nil {
		return err
	}

	if !errs.Valid() {
		return s.renderForm(c, fiber.StatusBadRequest, form, errs, nil)
	}

	r := &models.Recipe{
		Title:       form.Title,
		Description: form.Description,
		Ingredients: form.Ingredients,
		Technology:  form.Technology,
		GroupID:     form.GroupID,
		AuthorID:    u.ID,
	}

	if form.Image != nil {
		if r.Image, err = s.saveImage(c, form.Image); err != nil {
			return err
		}
	}

	if err := recipe.Create(s.env.DBFor(c), r); err != nil {
		s.env.DeleteMedia(c, r.Image)

		return err //nolint:wrapcheck
	}

	log.Info().Uint("recipe_id", r.ID).Str("author", u.Username).Msg("recipe created")

	return c.Redirect(urls.ProfileURL(u.Username))
}

// Edit renders the edit form of the author's recipe.
func (s *Service) Edit(c *fiber.Ctx) error {
	r, err := s.load(c)
	if err != nil {
		return err
	}

	if auth.CurrentUser(c).ID != r.AuthorID {
		return c.Redirect(urls.RecipeURL(r.ID))
	}

	form := &forms.Recipe{
		Title:       r.Title,
		Description: r.Description,
		Ingredients: r.Ingredients,
		Technology:  r.Technology,
	}

	if r.GroupID != nil {
		form.Group = strconv.FormatUint(uint64(*r.GroupID), 10)
	}

	return s.renderForm(c, fiber.StatusOK, form, nil, r)
}

// Update saves the edit form of the author's recipe.
func (s *Service) Update(c *fiber.Ctx) error {
	r, err := s.load(c)
	if err != nil {
		return err
	}

	if auth.CurrentUser(c).ID != r.AuthorID {
		return c.Redirect(urls.RecipeURL(r.ID))
	}

	form := forms.BindRecipe(c)

	errs, err := s.validate(c, form)
	if err != nil {
		return err
	}

	if !errs.Valid() {
		return s.renderForm(c, fiber.StatusBadRequest, form, errs, r)
	}

	oldImage := r.Image

	r.Title = form.Title
	r.Description = form.Description
	r.Ingredients = form.Ingredients
	r.Technology = form.Technology
	r.GroupID = form.GroupID

	switch {
	case form.Image != nil:
		if r.Image, err = s.saveImage(c, form.Image); err != nil {
			return err
		}
	case form.ImageClear:
		r.Image = ""
	}

	if err := recipe.Update(s.env.DBFor(c), r); err != nil {
		if r.Image != oldImage {
			s.env.DeleteMedia(c, r.Image)
		}

		return err //nolint:wrapcheck
	}

	if r.Image != oldImage {
		s.env.DeleteMedia(c, oldImage)
	}

	return c.Redirect(urls.RecipeURL(r.ID))
}

// Delete removes the author's recipe on POST. Every other request goes back to the recipe.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParseID(c, urls.ParamID)
	if err != nil {
		return err
	}

	db := s.env.DBFor(c)

	r, err := recipe.Get(db, id)
	if err != nil {
		return handler.NotFound(err, recipe.ErrRecipeNotFound)
	}

	u := auth.CurrentUser(c)

	if c.Method() != fiber.MethodPost || u.ID != r.AuthorID {
		return c.Redirect(urls.RecipeURL(r.ID))
	}

	image, err := recipe.Delete(db, r.ID)
	if err != nil {
		return handler.NotFound(err, recipe.ErrRecipeNotFound)
	}

	s.env.DeleteMedia(c, image)

	log.Info().Uint("recipe_id", r.ID).Str("author", u.Username).Msg("recipe deleted")

	return c.Redirect(urls.ProfileURL(u.Username))
}

func (s *Service) validate(c *fiber.Ctx, form *forms.Recipe) (forms.Errors, error) {
	db := s.env.DBFor(c)

	return form.Validate(func(id uint) (bool, error) {
		return group.Exists(db, id)
	}, s.env.Cfg.Media.MaxUploadSize)
}

func (s *Service) renderForm(c *fiber.Ctx, status int, form *forms.Recipe, errs forms.Errors, r *models.Recipe) error {
	groups, err := group.All(s.env.DBFor(c))
	if err != nil {
		return err //nolint:wrapcheck
	}

	title := TitleCreate
	nav := handler.Nav(title, handler.NavCreate, handler.NavCreate)

	if r != nil {
		title = TitleEdit
		nav = handler.Nav(title, handler.NavRecipes, NavPageEdit).
			AddBreadcrumb(r.Title, urls.RecipeURL(r.ID), false)
	}

	nav.AddBreadcrumb(title, "", true)

	if errs == nil {
		errs = forms.Errors{}
	}

	return c.Status(status).Render(TemplateForm, FormView{
		Page:   s.env.NewPage(c, nav),
		Form:   form,
		Errors: errs,
		Groups: groups,
		IsEdit: r != nil,
		Recipe: r,
	}, handler.BaseLayout)
}

func (s *Service) saveImage(c *fiber.Ctx, img *forms.Image) (string, error) {
	f, err := img.Header.Open()
	if err != nil {
		return "", err //nolint:wrapcheck
	}
	defer f.Close()

	key := media.ObjectKey(img.Ext)

	if err := s.env.Media.Save(c.UserContext(), key, f, img.Header.Size, img.ContentType); err != nil {
		return "", err //nolint:wrapcheck
	}

	return key, nil
}
