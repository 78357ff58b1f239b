package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"
)

// ErrorPage is the view model of the error pages.
type ErrorPage struct {
	Page
	Code int
}

// ErrorHandler returns the fiber error handler rendering the error pages.
func (e *Env) ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		tmpl := TemplateServer

		switch code {
		case fiber.StatusNotFound:
			tmpl = TemplateNotFound
		case fiber.StatusForbidden:
			tmpl = TemplateForbidden
		default:
			if code >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("request failed")
			} else {
				return c.Status(code).SendString(err.Error())
			}
		}

		return e.renderError(c, code, tmpl)
	}
}

// CSRFError renders the csrf failure page.
func (e *Env) CSRFError(c *fiber.Ctx, err error) error {
	log.Warn().Err(err).Str("path", c.Path()).Msg("csrf check failed")

	return e.renderError(c, fiber.StatusForbidden, TemplateCSRF)
}

func (e *Env) renderError(c *fiber.Ctx, code int, tmpl string) error {
	nav := Nav(utils.StatusMessage(code), "", "")

	data := ErrorPage{Page: e.NewPage(c, nav), Code: code}

	if err := c.Status(code).Render(tmpl, data, BaseLayout); err != nil {
		log.Error().Err(err).Str("template", tmpl).Msg("failed to render error page")

		return c.Status(code).SendString(fiber.ErrInternalServerError.Message)
	}

	return nil
}
