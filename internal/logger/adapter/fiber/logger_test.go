package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacook/yacook/internal/logger"
	adapter "github.com/yacook/yacook/internal/logger/adapter/fiber"
)

// accessLine is the json written per request.
type accessLine struct {
	IP     net.IP `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
	User   string `json:"user"`
	Error  string `json:"error"`
}

func consoleConfig() logger.Log {
	return logger.Log{
		EnableAccessLogToConsole: true,
		Console:                  logger.Console{Enabled: true},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		config     adapter.Config
		targetPath string
		want       *accessLine
	}{
		{
			name:       "no writers no output",
			targetPath: "/",
		},
		{
			name:       "get / to console json",
			targetPath: "/",
			config:     adapter.Config{Config: consoleConfig()},
			want:       &accessLine{IP: net.ParseIP("0.0.0.0"), Status: 200, URI: "/", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "query string is kept",
			targetPath: "/?page=2&s=borsch",
			config:     adapter.Config{Config: consoleConfig()},
			want: &accessLine{
				IP: net.ParseIP("0.0.0.0"), Status: 200, URI: "/?page=2&s=borsch", Method: fiber.MethodGet, Host: "example.com",
			},
		},
		{
			name:       "unknown route is logged as 404",
			targetPath: "/recipes/404/missing",
			config:     adapter.Config{Config: consoleConfig()},
			want: &accessLine{
				IP: net.ParseIP("0.0.0.0"), Status: 404, URI: "/recipes/404/missing", Method: fiber.MethodGet, Host: "example.com",
			},
		},
		{
			name:       "user name is added",
			targetPath: "/",
			config: adapter.Config{
				Config: consoleConfig(),
				User:   func(*fiber.Ctx) string { return "leo" },
			},
			want: &accessLine{
				IP: net.ParseIP("0.0.0.0"), Status: 200, URI: "/", Method: fiber.MethodGet, Host: "example.com", User: "leo",
			},
		},
		{
			name:       "checkalive is skipped",
			targetPath: "/checkalive",
			config: adapter.Config{
				Config: func() logger.Log {
					c := consoleConfig()
					c.DisableCheckAlive = true

					return c
				}(),
				CheckAliveURI: "/checkalive",
			},
		},
		{
			name:       "next skips the middleware",
			targetPath: "/",
			config: adapter.Config{
				Config: consoleConfig(),
				Next:   func(*fiber.Ctx) bool { return true },
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := serve(t, tt.targetPath, tt.config)

			if tt.want == nil {
				assert.Empty(t, output)

				return
			}

			require.NotEmpty(t, output)

			var got accessLine
			require.NoError(t, json.Unmarshal([]byte(output), &got))

			assert.Equal(t, tt.want.Host, got.Host)
			assert.Equal(t, tt.want.Method, got.Method)
			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, tt.want.IP, got.IP)
			assert.Equal(t, tt.want.URI, got.URI)
			assert.Equal(t, tt.want.User, got.User)
		})
	}
}

func TestNewFileWriter(t *testing.T) {
	dir := t.TempDir()

	app := fiber.New()
	app.Use(adapter.New(adapter.Config{Config: logger.Log{
		File: logger.LogFile{Enabled: true, Path: dir, AccessLog: "access.log", AccessMaxSize: 1},
	}}))
	app.Get("/", func(ctx *fiber.Ctx) error { return ctx.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Performance"))

	b, err := os.ReadFile(dir + "/access.log")
	require.NoError(t, err)
	assert.Contains(t, string(b), `"URI":"/"`)
}

func serve(t *testing.T, targetPath string, cfg adapter.Config) string {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(adapter.New(cfg))

	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("hello test")
	})
	app.Get("/checkalive", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil), 100000)
	require.NoError(t, err)

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr

	return <-outC
}
