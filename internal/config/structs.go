package config

import (
	"time"

	"github.com/yacook/yacook/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// RateLimit settings for the limiter middleware. Max 0 disables it.
type RateLimit struct {
	Max        int
	Expiration time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Recipes   Recipes
	Media     Media
	Cache     Cache
	Import    Import
	Seed      Seed
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic        bool      // enable static file browsing (for development purposes only)
	DisableRecover      bool      // disable recover middleware
	Compress            bool      // gzip/brotli responses
	Domain              string    // domain name for the webserver
	Port                int       // listening port for the webserver
	ShutDownTime        int       // wait time for shutdown
	URL                 string    // base url for the webserver
	CookieEncryptionKey string    // encryption key for cookies
	CookieSecure        bool      // mark session and csrf cookies secure
	Session             Session   // session settings
	RateLimit           RateLimit // request rate limit per ip
}

// Recipes holds listing settings.
type Recipes struct {
	PageSize int // recipes per page, default 6
}

// Supported media backends.
const (
	MediaLocal = "local"
	MediaS3    = "s3"
	MediaMinio = "minio"
)

// Media configures where recipe images are stored.
type Media struct {
	Backend       string // local, s3 or minio
	Root          string // local directory
	URLPrefix     string // public url prefix of stored files, default /media/
	Bucket        string
	Endpoint      string // s3 compatible endpoint, empty for aws
	Region        string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	PublicURL     string // public base url of the bucket
	MaxUploadSize int    // bytes
}

// Supported cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Cache configures the cache used for rarely changing lookups.
type Cache struct {
	Backend  string // none, memory or redis
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Size     int // memory backend entries
}

// Import configures the csv recipe import.
type Import struct {
	Path     string
	AuthorID uint
}

// Seed describes the staff account created on first start while no user exists.
// An empty username disables seeding.
type Seed struct {
	Username string
	Email    string
	Password string
}
