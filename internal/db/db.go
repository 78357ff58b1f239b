// Package db opens the configured database and migrates the schema.
package db

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yacook/yacook/internal/config"
	"github.com/yacook/yacook/internal/db/dsn"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/logger/adapter/stdlogger"
)

const slowQuery = 200 * time.Millisecond

// Dialector returns the gorm dialector for the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.Engine {
	case config.DBEngineMySQL:
		return mysql.Open(dsn.MySQL(&cfg.DB)), nil
	case config.DBEnginePostgres:
		return postgres.Open(dsn.Postgres(&cfg.DB)), nil
	case config.DBEngineSQLite, "":
		return sqlite.Open(dsn.SQLite(&cfg.DB)), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDBEngine, cfg.DB.Engine)
	}
}

// Open connects to the configured database. gorm logs through zerolog.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	// warnings and slow queries are logged at warn, full statement logging at debug.
	level, printLevel := gormlogger.Warn, zerolog.WarnLevel
	if cfg.DB.LogSQL {
		level, printLevel = gormlogger.Info, zerolog.DebugLevel
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(stdlogger.New().WithPrintLevel(printLevel), gormlogger.Config{
			SlowThreshold:             slowQuery,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema of every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}
