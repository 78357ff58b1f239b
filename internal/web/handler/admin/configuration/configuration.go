// Package configuration shows staff the settings the server runs with.
package configuration

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yacook/yacook/internal/config"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/handler/admin"
	"github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// Path is the base path for the configuration page.
	Path = urls.AdminConfig

	// TemplateName is the name of the configuration template.
	TemplateName = "admin/configuration"

	// QueryFormat selects the dump format.
	QueryFormat = "format"
	// FormatTOML is the default dump format.
	FormatTOML = "toml"
	// FormatJSON dumps the configuration as json.
	FormatJSON = "json"

	// NavEntityConfig is the admin navigation key.
	NavEntityConfig = "configuration"
	// TitleConfig is the page title.
	TitleConfig = "Конфигурация"
)

// View is the view model of the configuration page.
type View struct {
	handler.Page
	Format string
	Dump   string
}

// Service is the configuration handler service.
type Service struct {
	handler.Service
	env *handler.Env
}

// Handler is the configuration handler.
var Handler = Service{}

// Init initializes the configuration handler.
func (s *Service) Init(app *fiber.App, env *handler.Env) error {
	if err := env.Check(app); err != nil {
		return err
	}

	s.env = env

	app.Get(Path, auth.RequireStaff, s.Get)

	return nil
}

// Get renders the running configuration with secrets masked.
func (s *Service) Get(c *fiber.Ctx) error {
	masked := config.Masked(*s.env.Cfg)

	var (
		format = FormatTOML
		dump   string
		err    error
	)

	if c.Query(QueryFormat) == FormatJSON {
		format = FormatJSON
		dump, err = config.DumpConfigJSON(&masked)
	} else {
		dump, err = config.DumpConfig(&masked)
	}

	if err != nil {
		return err //nolint:wrapcheck
	}

	nav := admin.Nav(TitleConfig, NavEntityConfig).
		AddBreadcrumb(TitleConfig, Path, true)

	return c.Render(TemplateName, View{
		Page:   s.env.NewPage(c, nav),
		Format: format,
		Dump:   dump,
	}, handler.BaseLayout)
}
