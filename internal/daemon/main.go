// Package daemon wires storage, cache, media and the web service into the running server.
package daemon

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"

	"github.com/yacook/yacook/internal/cache"
	"github.com/yacook/yacook/internal/config"
	"github.com/yacook/yacook/internal/db"
	"github.com/yacook/yacook/internal/db/dsn"
	"github.com/yacook/yacook/internal/media"
	"github.com/yacook/yacook/internal/web"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/session"
)

// sessionTable holds sessions and csrf tokens on mysql and postgres.
const sessionTable = "sessions"

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start serves http until a termination signal arrives.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// App exposes the fiber app, mainly for tests.
func (d *Daemon) App() *fiber.App {
	return d.webService.App
}

// Storage returns the shared key value storage of the configured engine.
// sqlite keeps sessions in memory and returns nil.
func Storage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.Engine {
	case config.DBEngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.MySQL(&cfg.DB),
			Table:         sessionTable,
		})
	case config.DBEnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(&cfg.DB),
			Table:         sessionTable,
		})
	default:
		return nil
	}
}

// New opens and migrates the database, builds cache and media store and the web service.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, handler.ErrNilEnv
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err := db.Migrate(gdb); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err := seed(ctx, &cfg.Seed, gdb); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	storage := Storage(cfg)
	session.Init(storage)

	c, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	store, err := media.New(ctx, cfg.Media)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if m, ok := store.(*media.Minio); ok {
		if err := m.EnsureBucket(ctx); err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	svc, err := web.New(&handler.Env{Cfg: cfg, DB: gdb, Cache: c, Media: store}, storage)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	log.Info().
		Str("db", cfg.DB.Engine).
		Str("media", cfg.Media.Backend).
		Str("cache", cfg.Cache.Backend).
		Msg("daemon initialized")

	return &Daemon{cfg: cfg, webService: svc}, nil
}

// openCache builds the configured cache. An unreachable redis is replaced by cache.Nop.
func openCache(ctx context.Context, cfg config.Cache) (cache.Cache, error) {
	c, err := cache.New(cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	r, ok := c.(*cache.Redis)
	if !ok {
		return c, nil
	}

	if err := r.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unreachable, pages are served from the database")

		if err := r.Close(); err != nil {
			log.Debug().Err(err).Msg("failed to close redis client")
		}

		return cache.Nop{}, nil
	}

	return r, nil
}
