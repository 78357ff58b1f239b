package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/yacook/yacook/internal/auth"
	"github.com/yacook/yacook/internal/forms"
	"github.com/yacook/yacook/internal/web/handler"
	authmw "github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/session"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// Path is the path to the login page.
	Path = urls.Login

	// Template is the login page.
	Template = "users/login"

	// Title is the page title.
	Title = "Войти"
)

// View is the view model of the login page.
type View struct {
	handler.Page
	Form   *forms.Login
	Errors forms.Errors
	// Error is the message not bound to a field.
	Error string
}

// Service is the login handler service.
type Service struct {
	handler.Service
	env      *handler.Env
	provider *auth.LocalProvider
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, env *handler.Env) error {
	if err := env.Check(app); err != nil {
		return err
	}

	s.env = env
	s.provider = auth.NewLocalProvider(env.DB)

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	next := c.Query(forms.FieldNext)

	if authmw.CurrentUser(c) != nil {
		return c.Redirect(urls.SafeNext(next))
	}

	return s.render(c, fiber.StatusOK, &forms.Login{Next: next}, nil, "")
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := forms.BindLogin(c)

	if errs := form.Validate(); !errs.Valid() {
		return s.render(c, fiber.StatusBadRequest, form, errs, "")
	}

	user, err := s.provider.Authenticate(c.UserContext(), form.Username, form.Password)

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		log.Info().Str("username", form.Username).Str("ip", c.IP()).Msg("login failed")

		return s.render(c, fiber.StatusBadRequest, form, nil, MsgInvalidCredentials)
	case errors.Is(err, auth.ErrUserAccountDisabled):
		return s.render(c, fiber.StatusBadRequest, form, nil, MsgAccountDisabled)
	case err != nil:
		log.Error().Err(err).Msg("failed to authenticate user")

		return s.render(c, fiber.StatusInternalServerError, form, nil, MsgInternalServerError)
	}

	// drop a previous session so its id can not be reused
	if old := c.Cookies(session.CookieName); old != "" {
		if err := session.Delete(old); err != nil {
			log.Warn().Err(err).Msg("failed to delete previous session")
		}
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")

		return s.render(c, fiber.StatusInternalServerError, form, nil, MsgInternalServerError)
	}

	expiry := s.env.Cfg.Webserver.Session.ExpiryTime

	userSession := &session.Data{
		UserID: user.ID,
	}

	if err = userSession.Write(sessionID, expiry); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return s.render(c, fiber.StatusInternalServerError, form, nil, MsgInternalServerError)
	}

	session.SetCookie(c, sessionID, expiry, s.env.Cfg.Webserver.CookieSecure && !s.env.Cfg.DevMode)

	log.Info().Str("username", user.Username).Msg("user logged in")

	return c.Redirect(urls.SafeNext(form.Next))
}

func (s *Service) render(c *fiber.Ctx, status int, form *forms.Login, errs forms.Errors, msg string) error {
	if errs == nil {
		errs = forms.Errors{}
	}

	nav := handler.Nav(Title, handler.NavAuth, "login").
		AddBreadcrumb(Title, "", true)

	// never echo the password back
	form.Password = ""

	return c.Status(status).Render(Template, View{
		Page:   s.env.NewPage(c, nav),
		Form:   form,
		Errors: errs,
		Error:  msg,
	}, handler.BaseLayout)
}
