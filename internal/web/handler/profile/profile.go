// Package profile renders an author's page and handles following the author.
package profile

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/yacook/yacook/internal/db/controller/follow"
	"github.com/yacook/yacook/internal/db/controller/recipe"
	"github.com/yacook/yacook/internal/db/controller/user"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/paginator"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// Template is the author's page.
	Template = "recipes/profile"

	// NavPage is the navigation page key.
	NavPage = "profile"
)

// View is the view model of the author's page.
type View struct {
	handler.Page
	Author *models.User
	// Following is true when the current user follows Author.
	Following bool
	Followers int64
	// IsSelf is true on the current user's own page.
	IsSelf  bool
	Recipes *paginator.Page[models.Recipe]
}

// Service renders the profile page and the follow actions.
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

	app.Get(urls.Profile, s.Get)
	app.Post(urls.ProfileFollow, auth.RequireLogin, s.Follow)
	app.Post(urls.ProfileUnfollow, auth.RequireLogin, s.Unfollow)

	return nil
}

func (s *Service) author(c *fiber.Ctx) (*models.User, error) {
	u, err := user.GetByUsername(s.env.DBFor(c), c.Params(urls.ParamUsername))

	return u, handler.NotFound(err, user.ErrUserNotFound)
}

// Get shows the recipes of an author.
func (s *Service) Get(c *fiber.Ctx) error {
	author, err := s.author(c)
	if err != nil {
		return err
	}

	db := s.env.DBFor(c)
	view := View{Author: author}

	if u := auth.CurrentUser(c); u != nil {
		view.IsSelf = u.ID == author.ID

		if view.Following, err = follow.IsFollowing(db, u.ID, author.ID); err != nil {
			return err //nolint:wrapcheck
		}
	}

	if view.Followers, err = follow.Followers(db, author.ID); err != nil {
		return err //nolint:wrapcheck
	}

	if view.Recipes, err = recipe.ListByAuthor(db, author.ID, s.env.PageSize(), c.Query(handler.QueryPage)); err != nil {
		return err //nolint:wrapcheck
	}

	nav := handler.Nav(author.FullName(), handler.NavRecipes, NavPage).
		AddBreadcrumb(author.FullName(), urls.ProfileURL(author.Username), true)
	view.Page = s.env.NewPage(c, nav)

	return c.Render(Template, view, handler.BaseLayout)
}

// Follow subscribes the current user to the author. Following oneself is ignored.
func (s *Service) Follow(c *fiber.Ctx) error {
	author, err := s.author(c)
	if err != nil {
		return err
	}

	u := auth.CurrentUser(c)

	err = follow.Follow(s.env.DBFor(c), u.ID, author.ID)
	if err != nil && !errors.Is(err, follow.ErrSelfFollow) {
		return err //nolint:wrapcheck
	}

	if err == nil {
		log.Debug().Str("user", u.Username).Str("author", author.Username).Msg("follow")
	}

	return c.Redirect(urls.ProfileURL(author.Username))
}

// Unfollow removes every subscription to the author.
func (s *Service) Unfollow(c *fiber.Ctx) error {
	author, err := s.author(c)
	if err != nil {
		return err
	}

	if err := follow.Unfollow(s.env.DBFor(c), author.ID); err != nil {
		return err //nolint:wrapcheck
	}

	return c.Redirect(urls.ProfileURL(author.Username))
}
