// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// EnvJSON names the environment variable whose json document overrides the toml config.
const EnvJSON = "YACOOK_CONFIG_JSON"

const (
	defaultShutDownTime  = 5
	defaultPageSize      = 6
	defaultMaxUpload     = 5 << 20
	defaultMediaRoot     = "media"
	defaultMediaURL      = "/media/"
	defaultCacheTTL      = 10 * time.Minute
	defaultCacheSize     = 128
	defaultSessionExpiry = 24 * time.Hour
	defaultImportPath    = "upload/all_recipes.csv"
	defaultSQLitePath    = "yacook.db"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var c Config

	if path == "" {
		path = "./etc/"
	}

	if _, err := toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if env := os.Getenv(EnvJSON); env != "" {
		if err := json.Unmarshal([]byte(env), &c); err != nil {
			return Config{}, errors.Wrap(err, "failed to decode "+EnvJSON)
		}
	}

	if err := validate(&c); err != nil {
		return Config{}, err
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	if err := toml.NewEncoder(&buffer).Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings yacook can not run without and fills defaults.
func validate(c *Config) error {
	const invalid = "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalid)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalid)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	switch c.DB.Engine {
	case "":
		c.DB.Engine = DBEngineSQLite
	case DBEngineSQLite, DBEngineMySQL, DBEnginePostgres:
	default:
		return errors.Wrap(ErrUnknownDBEngine, invalid)
	}

	if c.DB.Engine == DBEngineSQLite && c.DB.Path == "" {
		c.DB.Path = defaultSQLitePath
	}

	switch {
	case c.Recipes.PageSize < 0:
		return errors.Wrap(ErrNegativePageSize, invalid)
	case c.Recipes.PageSize == 0:
		c.Recipes.PageSize = defaultPageSize
	}

	if err := validateMedia(&c.Media); err != nil {
		return errors.Wrap(err, invalid)
	}

	if err := validateCache(&c.Cache); err != nil {
		return errors.Wrap(err, invalid)
	}

	if c.Import.Path == "" {
		c.Import.Path = defaultImportPath
	}

	if c.Import.AuthorID == 0 {
		c.Import.AuthorID = 1
	}

	return nil
}

func validateMedia(m *Media) error {
	switch m.Backend {
	case "":
		m.Backend = MediaLocal
	case MediaLocal:
	case MediaS3, MediaMinio:
		if m.Bucket == "" {
			return ErrMediaBucketEmpty
		}
	default:
		return ErrUnknownMediaBackend
	}

	if m.Root == "" {
		m.Root = defaultMediaRoot
	}

	if m.URLPrefix == "" {
		m.URLPrefix = defaultMediaURL
	}

	if m.MaxUploadSize == 0 {
		m.MaxUploadSize = defaultMaxUpload
	}

	return nil
}

func validateCache(c *Cache) error {
	switch c.Backend {
	case "":
		c.Backend = CacheNone
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return ErrUnknownCacheBackend
	}

	if c.TTL == 0 {
		c.TTL = defaultCacheTTL
	}

	if c.Size == 0 {
		c.Size = defaultCacheSize
	}

	return nil
}

// Mask is the placeholder shown instead of a secret.
const Mask = "********"

func mask(s *string) {
	if *s != "" {
		*s = Mask
	}
}

// Masked returns a copy of c with passwords and keys replaced by Mask.
func Masked(c Config) Config {
	mask(&c.DB.Password)
	mask(&c.Webserver.CookieEncryptionKey)
	mask(&c.Media.AccessKey)
	mask(&c.Media.SecretKey)
	mask(&c.Cache.Password)
	mask(&c.Seed.Password)

	return c
}
