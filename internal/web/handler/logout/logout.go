// Package logout ends the user session.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/session"
	"github.com/yacook/yacook/internal/web/urls"
)

// Service is the logout handler service.
type Service struct {
	handler.Service
	env *handler.Env
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, env *handler.Env) error {
	if err := env.Check(app); err != nil {
		return err
	}

	s.env = env

	app.Get(urls.Logout, s.Logout)
	app.Post(urls.Logout, s.Logout)

	return nil
}

// Logout handles user logout by clearing the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	if err := session.Delete(c.Cookies(session.CookieName)); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}

	session.ClearCookie(c, s.env.Cfg.Webserver.CookieSecure && !s.env.Cfg.DevMode)

	return c.Redirect(urls.Index)
}
