// Package signup registers new local accounts.
package signup

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/yacook/yacook/internal/auth"
	"github.com/yacook/yacook/internal/db/controller/user"
	"github.com/yacook/yacook/internal/forms"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// Template is the registration page.
	Template = "users/signup"

	// Title is the page title.
	Title = "Зарегистрироваться"
)

// View is the view model of the registration page.
type View struct {
	handler.Page
	Form   *forms.Signup
	Errors forms.Errors
}

// Service registers accounts.
type Service struct {
	handler.Service
	env      *handler.Env
	provider *auth.LocalProvider
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, env *handler.Env) error {
	if err := env.Check(app); err != nil {
		return err
	}

	s.env = env
	s.provider = auth.NewLocalProvider(env.DB)

	app.Get(urls.Signup, s.Get)
	app.Post(urls.Signup, s.Post)

	return nil
}

// Get renders the empty form.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, &forms.Signup{}, nil)
}

// Post creates the account and sends the user to the index.
func (s *Service) Post(c *fiber.Ctx) error {
	form := forms.BindSignup(c)
	db := s.env.DBFor(c)

	errs, err := form.Validate(func(username string) (bool, error) {
		return user.UsernameTaken(db, username)
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !errs.Valid() {
		return s.render(c, fiber.StatusBadRequest, form, errs)
	}

	u, err := s.provider.CreateUser(c.UserContext(), form.Username, form.Email, form.Password1, false)
	if errors.Is(err, user.ErrUsernameTaken) {
		errs = forms.Errors{}
		errs.Add(forms.FieldUsername, forms.MsgUsernameTaken)

		return s.render(c, fiber.StatusBadRequest, form, errs)
	}

	if err != nil {
		return err //nolint:wrapcheck
	}

	if form.FirstName != "" || form.LastName != "" {
		if err := db.Model(u).Updates(map[string]any{
			"first_name": form.FirstName,
			"last_name":  form.LastName,
		}).Error; err != nil {
			return err //nolint:wrapcheck
		}
	}

	log.Info().Str("username", u.Username).Msg("user signed up")

	return c.Redirect(urls.Index)
}

func (s *Service) render(c *fiber.Ctx, status int, form *forms.Signup, errs forms.Errors) error {
	if errs == nil {
		errs = forms.Errors{}
	}

	form.Password1, form.Password2 = "", ""

	nav := handler.Nav(Title, handler.NavAuth, "signup").
		AddBreadcrumb(Title, "", true)

	return c.Status(status).Render(Template, View{
		Page:   s.env.NewPage(c, nav),
		Form:   form,
		Errors: errs,
	}, handler.BaseLayout)
}
