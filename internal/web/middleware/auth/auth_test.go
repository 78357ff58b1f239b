package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/testutil"
	"github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/session"
)

func newApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Use(auth.LoadUser(db))

	app.Get("/whoami", func(c *fiber.Ctx) error {
		if u := auth.CurrentUser(c); u != nil {
			return c.SendString(u.Username)
		}

		return c.SendString("anonymous")
	})
	app.Get("/private", auth.RequireLogin, func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/admin", auth.RequireStaff, func(c *fiber.Ctx) error { return c.SendString("ok") })

	return app
}

func login(t *testing.T, u *models.User) string {
	t.Helper()

	id, err := session.GenerateSessionID()
	require.NoError(t, err)
	require.NoError(t, (&session.Data{UserID: u.ID}).Write(id, time.Minute))

	return id
}

func get(t *testing.T, app *fiber.App, target, sessionID string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionID})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	t.Cleanup(func() { _ = resp.Body.Close() })

	buf := make([]byte, 64)
	n, _ := resp.Body.Read(buf)

	return resp, string(buf[:n])
}

func TestLoadUser(t *testing.T) {
	session.Init(nil)

	db := testutil.DB(t)
	app := newApp(db)
	alice := testutil.CreateUser(t, db, "alice")

	_, body := get(t, app, "/whoami", "")
	assert.Equal(t, "anonymous", body)

	_, body = get(t, app, "/whoami", "unknown-session")
	assert.Equal(t, "anonymous", body)

	sid := login(t, alice)

	_, body = get(t, app, "/whoami", sid)
	assert.Equal(t, "alice", body)

	require.NoError(t, db.Model(alice).Update("active", false).Error)

	_, body = get(t, app, "/whoami", sid)
	assert.Equal(t, "anonymous", body, "disabled users are logged out")
}

func TestRequireLogin(t *testing.T) {
	session.Init(nil)

	db := testutil.DB(t)
	app := newApp(db)

	resp, _ := get(t, app, "/private?x=1", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login/?next=%2Fprivate%3Fx%3D1", resp.Header.Get(fiber.HeaderLocation))

	sid := login(t, testutil.CreateUser(t, db, "bob"))

	resp, body := get(t, app, "/private", sid)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestRequireStaff(t *testing.T) {
	session.Init(nil)

	db := testutil.DB(t)
	app := newApp(db)

	resp, _ := get(t, app, "/admin", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp, _ = get(t, app, "/admin", login(t, testutil.CreateUser(t, db, "bob")))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = get(t, app, "/admin", login(t, testutil.CreateStaff(t, db, "root")))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
