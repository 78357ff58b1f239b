package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/db/controller/user"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/web/session"
	"github.com/yacook/yacook/internal/web/urls"
)

// LocalsUser is the fiber.Locals key of the logged in *models.User.
const LocalsUser = "CurrentUser"

// LoadUser is a Fiber middleware that resolves the session cookie to the current user.
func LoadUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), urls.Static) {
			return c.Next()
		}

		// get session cookie
		sessionID := c.Cookies(session.CookieName)
		if sessionID == "" {
			return c.Next()
		}

		// check session validity
		sessData := new(session.Data)
		if err := sessData.Read(sessionID); err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				log.Error().Err(err).Msg("failed to read session")
			}

			return c.Next()
		}

		if sessData.UserID == 0 {
			return c.Next()
		}

		u, err := user.GetByID(db.WithContext(c.UserContext()), sessData.UserID)
		if err != nil {
			if !errors.Is(err, user.ErrUserNotFound) {
				log.Error().Err(err).Uint("user_id", sessData.UserID).Msg("failed to load session user")
			}

			return c.Next()
		}

		if u.Active {
			c.Locals(LocalsUser, u)
		}

		return c.Next()
	}
}

// CurrentUser returns the logged in user or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(LocalsUser).(*models.User)

	return u
}

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin(c *fiber.Ctx) error {
	if CurrentUser(c) == nil {
		return c.Redirect(urls.LoginURL(c.OriginalURL()))
	}

	return c.Next()
}

// RequireStaff lets only staff users through.
func RequireStaff(c *fiber.Ctx) error {
	u := CurrentUser(c)
	if u == nil {
		return c.Redirect(urls.LoginURL(c.OriginalURL()))
	}

	if !u.IsStaff {
		log.Warn().Str("username", u.Username).Str("path", c.Path()).Msg("user lacks staff permission")

		return fiber.ErrForbidden
	}

	return c.Next()
}
