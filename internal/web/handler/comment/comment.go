// Package comment handles adding, editing and deleting recipe comments.
package comment

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/yacook/yacook/internal/db/controller/comment"
	"github.com/yacook/yacook/internal/db/controller/recipe"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/forms"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/urls"
)

// Service handles the comment actions. Every action ends with a redirect to the recipe.
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

	app.Post(urls.CommentAdd, auth.RequireLogin, s.Add)
	app.Get(urls.CommentEdit, auth.RequireLogin, s.Edit)
	app.Post(urls.CommentEdit, auth.RequireLogin, s.Edit)
	app.Get(urls.CommentDelete, auth.RequireLogin, s.Delete)
	app.Post(urls.CommentDelete, auth.RequireLogin, s.Delete)

	return nil
}

// Add comments the recipe when the form is valid.
func (s *Service) Add(c *fiber.Ctx) error {
	id, err := handler.ParseID(c, urls.ParamID)
	if err != nil {
		return err
	}

	db := s.env.DBFor(c)

	r, err := recipe.Get(db, id)
	if err != nil {
		return handler.NotFound(err, recipe.ErrRecipeNotFound)
	}

	form := forms.BindComment(c)
	if form.Validate().Valid() {
		if err := comment.Create(db, &models.Comment{
			RecipeID: r.ID,
			AuthorID: auth.CurrentUser(c).ID,
			Text:     form.Text,
		}); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return c.Redirect(urls.RecipeURL(r.ID))
}

func (s *Service) load(c *fiber.Ctx) (*models.Comment, error) {
	recipeID, err := handler.ParseID(c, urls.ParamID)
	if err != nil {
		return nil, err
	}

	commentID, err := handler.ParseID(c, urls.ParamCommentID)
	if err != nil {
		return nil, err
	}

	cm, err := comment.Get(s.env.DBFor(c), recipeID, commentID)

	return cm, handler.NotFound(err, comment.ErrCommentNotFound)
}

// Edit replaces the text of the current user's comment on a valid POST.
func (s *Service) Edit(c *fiber.Ctx) error {
	cm, err := s.load(c)
	if err != nil {
		return err
	}

	u := auth.CurrentUser(c)

	if c.Method() == fiber.MethodPost && u.ID == cm.AuthorID {
		form := forms.BindComment(c)
		if form.Validate().Valid() {
			if err := comment.UpdateText(s.env.DBFor(c), cm.ID, form.Text); err != nil {
				return err //nolint:wrapcheck
			}
		}
	} else if u.ID != cm.AuthorID {
		log.Warn().Str("user", u.Username).Uint("comment_id", cm.ID).Msg("edit of a foreign comment ignored")
	}

	return c.Redirect(urls.RecipeURL(cm.RecipeID))
}

// Delete removes the current user's comment on POST.
func (s *Service) Delete(c *fiber.Ctx) error {
	cm, err := s.load(c)
	if err != nil {
		return err
	}

	if c.Method() == fiber.MethodPost && auth.CurrentUser(c).ID == cm.AuthorID {
		if err := comment.Delete(s.env.DBFor(c), cm.ID); err != nil {
			return handler.NotFound(err, comment.ErrCommentNotFound)
		}
	}

	return c.Redirect(urls.RecipeURL(cm.RecipeID))
}
