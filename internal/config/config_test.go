package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func etcPath(t *testing.T) string {
	t.Helper()

	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err)

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(etcPath(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.Equal(t, 8080, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.Equal(t, 24*time.Hour, cfg.Webserver.Session.ExpiryTime)
	assert.Equal(t, DBEngineSQLite, cfg.DB.Engine)
	assert.Equal(t, 6, cfg.Recipes.PageSize)
	assert.Equal(t, MediaLocal, cfg.Media.Backend)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "upload/all_recipes.csv", cfg.Import.Path)
	assert.Equal(t, "yacook", cfg.Log.AppName)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir() + "/")
	assert.Error(t, err)
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(EnvJSON, `{"Title":"Test Override","Webserver":{"Port":9090},"Recipes":{"PageSize":10}}`)

	cfg, err := ReadConfig(etcPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	assert.Equal(t, 10, cfg.Recipes.PageSize)
	// untouched values survive the merge
	assert.Equal(t, "http://localhost:8080", cfg.Webserver.URL)
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv(EnvJSON, `{"Title":`)

	_, err := ReadConfig(etcPath(t))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	web := Webserver{Port: 8080, URL: "http://localhost:8080"}

	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{name: "valid config", config: Config{Webserver: web}},
		{name: "missing port", config: Config{Webserver: Webserver{URL: "http://localhost"}}, wantErr: ErrWebServerPortCanNotBeZero},
		{name: "missing URL", config: Config{Webserver: Webserver{Port: 8080}}, wantErr: ErrEmptyURL},
		{name: "unknown db engine", config: Config{Webserver: web, DB: DB{Engine: "oracle"}}, wantErr: ErrUnknownDBEngine},
		{name: "negative page size", config: Config{Webserver: web, Recipes: Recipes{PageSize: -1}}, wantErr: ErrNegativePageSize},
		{name: "unknown media backend", config: Config{Webserver: web, Media: Media{Backend: "ftp"}}, wantErr: ErrUnknownMediaBackend},
		{name: "s3 without bucket", config: Config{Webserver: web, Media: Media{Backend: MediaS3}}, wantErr: ErrMediaBucketEmpty},
		{name: "minio with bucket", config: Config{Webserver: web, Media: Media{Backend: MediaMinio, Bucket: "yacook"}}},
		{name: "unknown cache backend", config: Config{Webserver: web, Cache: Cache{Backend: "memcached"}}, wantErr: ErrUnknownCacheBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	c := Config{Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"}}
	require.NoError(t, validate(&c))

	assert.Equal(t, 5, c.Webserver.ShutDownTime)
	assert.Equal(t, 24*time.Hour, c.Webserver.Session.ExpiryTime)
	assert.Equal(t, DBEngineSQLite, c.DB.Engine)
	assert.Equal(t, "yacook.db", c.DB.Path)
	assert.Equal(t, 6, c.Recipes.PageSize)
	assert.Equal(t, MediaLocal, c.Media.Backend)
	assert.Equal(t, "/media/", c.Media.URLPrefix)
	assert.Equal(t, 5<<20, c.Media.MaxUploadSize)
	assert.Equal(t, CacheNone, c.Cache.Backend)
	assert.Equal(t, uint(1), c.Import.AuthorID)
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:     "Test",
		DevMode:   true,
		Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
	}

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)
	assert.Contains(t, tomlStr, `Title = "Test"`)

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)
	assert.Contains(t, jsonStr, `"Title": "Test"`)
}

func TestMasked(t *testing.T) {
	cfg := Config{Title: "Foodgram"}
	cfg.DB.Password = "db-secret"
	cfg.Media.SecretKey = "s3-secret"
	cfg.Seed.Password = "seed-secret"

	masked := Masked(cfg)
	assert.Equal(t, Mask, masked.DB.Password)
	assert.Equal(t, Mask, masked.Media.SecretKey)
	assert.Equal(t, Mask, masked.Seed.Password)
	assert.Empty(t, masked.Cache.Password)
	assert.Equal(t, "Foodgram", masked.Title)
	// the original is untouched
	assert.Equal(t, "db-secret", cfg.DB.Password)

	out, err := DumpConfig(&masked)
	require.NoError(t, err)
	assert.NotContains(t, out, "db-secret")
	assert.Contains(t, out, Mask)
}
