// Package web assembles the fiber application: templates, middleware and every handler.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/yacook/yacook/internal/config"
	fiberlog "github.com/yacook/yacook/internal/logger/adapter/fiber"
	"github.com/yacook/yacook/internal/web/handler"
	admincomment "github.com/yacook/yacook/internal/web/handler/admin/comment"
	adminconfig "github.com/yacook/yacook/internal/web/handler/admin/configuration"
	adminfollow "github.com/yacook/yacook/internal/web/handler/admin/follow"
	admingroup "github.com/yacook/yacook/internal/web/handler/admin/group"
	adminrecipe "github.com/yacook/yacook/internal/web/handler/admin/recipe"
	adminuser "github.com/yacook/yacook/internal/web/handler/admin/user"
	"github.com/yacook/yacook/internal/web/handler/comment"
	"github.com/yacook/yacook/internal/web/handler/dashboard"
	"github.com/yacook/yacook/internal/web/handler/follow"
	"github.com/yacook/yacook/internal/web/handler/group"
	"github.com/yacook/yacook/internal/web/handler/login"
	"github.com/yacook/yacook/internal/web/handler/logout"
	"github.com/yacook/yacook/internal/web/handler/profile"
	"github.com/yacook/yacook/internal/web/handler/recipe"
	"github.com/yacook/yacook/internal/web/handler/search"
	"github.com/yacook/yacook/internal/web/handler/signup"
	"github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// CSRFCookieName is the cookie holding the csrf token.
	CSRFCookieName = "csrftoken"

	readBufferSize = 8192
	// bodyOverhead is the room left for the text fields of an upload form.
	bodyOverhead = 1 << 20
)

// ErrNilEnv is returned by New when the environment is incomplete.
var ErrNilEnv = errors.New("web: environment is incomplete")

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a termination signal and stops the server gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// Handlers are the services registered by New, in route order.
func Handlers() []handler.Service {
	return []handler.Service{
		&recipe.Handler,
		&group.Handler,
		&profile.Handler,
		&follow.Handler,
		&search.Handler,
		&comment.Handler,
		&login.Handler,
		&logout.Handler,
		&signup.Handler,
		&dashboard.Handler,
		&admingroup.Handler,
		&adminrecipe.Handler,
		&admincomment.Handler,
		&adminfollow.Handler,
		&adminuser.Handler,
		&adminconfig.Handler,
	}
}

func newEngine(env *handler.Env) *html.Engine {
	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in dev mode, use local filesystem for templates
	if env.Cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	templateEngine.AddFuncMap(templateFuncs(env.Media))

	return templateEngine
}

// New creates the web service. storage backs the csrf tokens; nil keeps them in memory.
func New(env *handler.Env, storage fiber.Storage) (*Service, error) {
	if env == nil || env.Cfg == nil || env.DB == nil || env.Media == nil || env.Cache == nil {
		return nil, ErrNilEnv
	}

	cfg := env.Cfg
	secure := cfg.Webserver.CookieSecure && !cfg.DevMode

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: readBufferSize,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			BodyLimit:      cfg.Media.MaxUploadSize + bodyOverhead,
			Views:          newEngine(env),
			ErrorHandler:   env.ErrorHandler(),
		},
	)

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlog.New(fiberlog.Config{
		Config:        cfg.Log,
		CheckAliveURI: urls.CheckAlive,
		User: func(c *fiber.Ctx) string {
			if u := auth.CurrentUser(c); u != nil {
				return u.Username
			}

			return ""
		},
	}))

	if cfg.Webserver.Compress {
		app.Use(compress.New())
	}

	app.Get(urls.CheckAlive, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})
	app.Get(urls.Metrics, adaptor.HTTPHandler(promhttp.Handler()))

	// serve embedded static files
	app.Use(urls.Static,
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	if cfg.Media.Backend == config.MediaLocal && strings.HasPrefix(cfg.Media.URLPrefix, "/") {
		app.Use(strings.TrimRight(cfg.Media.URLPrefix, "/"),
			filesystem.New(filesystem.Config{Root: http.Dir(cfg.Media.Root)}),
		)
	}

	if rl := cfg.Webserver.RateLimit; rl.Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        rl.Max,
			Expiration: rl.Expiration,
			Storage:    storage,
		}))
	}

	if cfg.Webserver.CookieEncryptionKey != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{
			Key:    cfg.Webserver.CookieEncryptionKey,
			Except: []string{CSRFCookieName},
		}))
	}

	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:" + handler.FormCSRF,
		CookieName:     CSRFCookieName,
		CookieSameSite: "Lax",
		CookieSecure:   secure,
		CookieHTTPOnly: true,
		Expiration:     cfg.Webserver.Session.ExpiryTime,
		ContextKey:     handler.LocalsCSRF,
		Storage:        storage,
		ErrorHandler:   env.CSRFError,
	}))

	app.Use(auth.LoadUser(env.DB))

	for _, h := range Handlers() {
		if err := h.Init(app, env); err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	return service, nil
}
