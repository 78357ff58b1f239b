package daemon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacook/yacook/internal/cache"
	"github.com/yacook/yacook/internal/config"
	"github.com/yacook/yacook/internal/db/controller/user"
	"github.com/yacook/yacook/internal/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()

	return &config.Config{
		Title: "Foodgram",
		DB:    config.DB{Engine: config.DBEngineSQLite, Path: filepath.Join(dir, "yacook.db")},
		Webserver: config.Webserver{
			Port:    8080,
			URL:     "http://localhost:8080",
			Session: config.Session{ExpiryTime: time.Hour},
		},
		Recipes: config.Recipes{PageSize: 6},
		Media: config.Media{
			Backend:       config.MediaLocal,
			Root:          filepath.Join(dir, "media"),
			URLPrefix:     "/media/",
			MaxUploadSize: 1 << 20,
		},
		Cache: config.Cache{Backend: config.CacheMemory, Size: 16, TTL: time.Minute},
		Seed:  config.Seed{Username: "admin", Password: testutil.Password},
	}
}

func TestNew(t *testing.T) {
	cfg := testConfig(t)

	d, err := New(context.Background(), cfg)
	require.NoError(t, err)

	resp, err := d.App().Test(httptest.NewRequest(http.MethodGet, "/checkalive", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp, err = d.App().Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(context.Background(), nil)
	require.Error(t, err)

	cfg := testConfig(t)
	cfg.Cache.Backend = "memcached"

	_, err = New(context.Background(), cfg)
	require.Error(t, err)
}

func TestSeed(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	require.NoError(t, seed(ctx, &config.Seed{}, db))

	require.NoError(t, seed(ctx, &config.Seed{Username: "admin", Password: testutil.Password}, db))

	admin, err := user.GetByUsername(db, "admin")
	require.NoError(t, err)
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.VerifyPassword(testutil.Password))

	require.NoError(t, seed(ctx, &config.Seed{Username: "other", Password: "x"}, db), "users exist already")

	_, err = user.GetByUsername(db, "other")
	require.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestStorage(t *testing.T) {
	assert.Nil(t, Storage(&config.Config{DB: config.DB{Engine: config.DBEngineSQLite}}))
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	c, err := openCache(ctx, config.Cache{Backend: config.CacheMemory, Size: 4, TTL: time.Minute})
	require.NoError(t, err)
	assert.IsType(t, &cache.Memory{}, c)

	srv := miniredis.RunT(t)

	c, err = openCache(ctx, config.Cache{Backend: config.CacheRedis, Addr: srv.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	assert.IsType(t, &cache.Redis{}, c)

	// nothing listens once the server is closed
	addr := srv.Addr()
	srv.Close()

	c, err = openCache(ctx, config.Cache{Backend: config.CacheRedis, Addr: addr, TTL: time.Minute})
	require.NoError(t, err)
	assert.Equal(t, cache.Nop{}, c)

	_, err = openCache(ctx, config.Cache{Backend: "memcached"})
	require.Error(t, err)
}
