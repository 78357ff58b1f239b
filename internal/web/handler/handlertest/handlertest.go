// Package handlertest runs handlers against an in-process fiber app with a
// recording template engine, a sqlite database and in-memory sessions.
package handlertest

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/cache"
	"github.com/yacook/yacook/internal/config"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/media"
	"github.com/yacook/yacook/internal/testutil"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/session"
)

// PageSize is the recipes per page of the test configuration.
const PageSize = 6

// Rendered is one c.Render call.
type Rendered struct {
	Name    string
	Data    any
	Layouts []string
}

// Views is a fiber.Views engine that records what handlers render
// and writes the template name as the body.
type Views struct {
	mu       sync.Mutex
	rendered []Rendered
}

// Load implements fiber.Views.
func (v *Views) Load() error { return nil }

// Render implements fiber.Views.
func (v *Views) Render(w io.Writer, name string, data any, layouts ...string) error {
	v.mu.Lock()
	v.rendered = append(v.rendered, Rendered{Name: name, Data: data, Layouts: layouts})
	v.mu.Unlock()

	_, err := io.WriteString(w, name)

	return err
}

// Last returns the most recent render.
func (v *Views) Last() Rendered {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.rendered) == 0 {
		return Rendered{}
	}

	return v.rendered[len(v.rendered)-1]
}

// Count returns the number of renders so far.
func (v *Views) Count() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.rendered)
}

// Harness wires one handler service into a test app.
type Harness struct {
	t     *testing.T
	App   *fiber.App
	Views *Views
	Env   *handler.Env
	DB    *gorm.DB
	Media *media.Local
}

// New builds a harness. The caller registers its handler on h.App with h.Env.
func New(t *testing.T) *Harness {
	t.Helper()

	session.Init(nil)

	db := testutil.DB(t)

	mem, err := cache.NewMemory(16)
	require.NoError(t, err)

	store := media.NewLocal(t.TempDir(), "/media/")

	env := &handler.Env{
		Cfg: &config.Config{
			Title: "Foodgram",
			Webserver: config.Webserver{
				URL:     "http://localhost",
				Session: config.Session{ExpiryTime: time.Hour},
			},
			Recipes: config.Recipes{PageSize: PageSize},
			Media:   config.Media{Backend: config.MediaLocal, MaxUploadSize: 1 << 20},
			Cache:   config.Cache{Backend: config.CacheMemory, TTL: time.Minute, Size: 16},
		},
		DB:    db,
		Cache: mem,
		Media: store,
	}

	views := &Views{}

	app := fiber.New(fiber.Config{
		Views:        views,
		ErrorHandler: env.ErrorHandler(),
	})
	app.Use(auth.LoadUser(db))

	return &Harness{t: t, App: app, Views: views, Env: env, DB: db, Media: store}
}

// Login opens a session for u and returns its id.
func (h *Harness) Login(u *models.User) string {
	h.t.Helper()

	sid, err := session.GenerateSessionID()
	require.NoError(h.t, err)
	require.NoError(h.t, (&session.Data{UserID: u.ID}).Write(sid, time.Hour))

	return sid
}

// Do sends req with the session cookie sid (if any).
func (h *Harness) Do(req *http.Request, sid string) *http.Response {
	h.t.Helper()

	if sid != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	}

	resp, err := h.App.Test(req, -1)
	require.NoError(h.t, err)

	h.t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

// Get sends a GET request.
func (h *Harness) Get(target, sid string) *http.Response {
	h.t.Helper()

	return h.Do(httptest.NewRequest(http.MethodGet, target, nil), sid)
}

// PostForm sends an urlencoded POST request.
func (h *Harness) PostForm(target, sid string, form url.Values) *http.Response {
	h.t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	return h.Do(req, sid)
}

// File is an upload of a multipart request.
type File struct {
	Field   string
	Name    string
	Content []byte
}

// PostMultipart sends a multipart POST request.
func (h *Harness) PostMultipart(target, sid string, form url.Values, files ...File) *http.Response {
	h.t.Helper()

	var body bytes.Buffer

	w := multipart.NewWriter(&body)

	for k, vs := range form {
		for _, v := range vs {
			require.NoError(h.t, w.WriteField(k, v))
		}
	}

	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		require.NoError(h.t, err)

		_, err = part.Write(f.Content)
		require.NoError(h.t, err)
	}

	require.NoError(h.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())

	return h.Do(req, sid)
}

// Data returns the view model of the last render as T.
func Data[T any](t *testing.T, h *Harness) T {
	t.Helper()

	last := h.Views.Last()

	data, ok := last.Data.(T)
	require.Truef(t, ok, "last render %q has data %T", last.Name, last.Data)

	return data
}

// Location returns the redirect target of resp.
func Location(resp *http.Response) string {
	return resp.Header.Get(fiber.HeaderLocation)
}

// PNG is a minimal valid png image.
var PNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}
