package config

// Supported database engines.
const (
	DBEngineSQLite   = "sqlite"
	DBEngineMySQL    = "mysql"
	DBEnginePostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   string // sqlite, mysql or postgres
	Path     string // sqlite database file, ":memory:" for a throwaway database
	Extras   string // appended to the mysql/postgres dsn
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	LogSQL   bool // log every statement at debug level
}
