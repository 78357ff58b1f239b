// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/yacook/yacook/internal/config"
)

// MySQL builds a go-sql-driver/mysql dsn.
func MySQL(db *config.DB) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		db.Extras,
	)
}

// Postgres builds a key=value pgx dsn.
func Postgres(db *config.DB) string {
	return strings.TrimSpace(fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s %s",
		db.Host,
		db.Port,
		db.User,
		db.Password,
		db.Name,
		db.Extras,
	))
}

// SQLite builds a glebarez/sqlite dsn with foreign keys switched on.
func SQLite(db *config.DB) string {
	sep := "?"
	if strings.Contains(db.Path, "?") {
		sep = "&"
	}

	return db.Path + sep + "_pragma=foreign_keys(1)"
}

// Create builds the dsn for the configured engine.
func Create(cfg *config.Config) string {
	switch cfg.DB.Engine {
	case config.DBEngineMySQL:
		return MySQL(&cfg.DB)
	case config.DBEnginePostgres:
		return Postgres(&cfg.DB)
	default:
		return SQLite(&cfg.DB)
	}
}
