package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chaimtop/studygo/core"
)

// Backend is a fake student API for tests: an echo server speaking the
// backend's {success, data, message} envelope and enforcing bearer auth on
// personalized routes.
type Backend struct {
	Echo   *echo.Echo
	Server *httptest.Server

	// Token is the bearer credential the backend accepts. Personalized routes
	// (/students/...) answer 401 to anything else.
	Token string
}

func NewBackend(t *testing.T) *Backend {
	t.Helper()
	e := echo.New()
	b := &Backend{Echo: e, Token: "test-token"}

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if strings.HasPrefix(c.Request().URL.Path, "/students/") {
				auth := c.Request().Header.Get(echo.HeaderAuthorization)
				if auth != "Bearer "+b.Token {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"success": false, "message": "登录已过期，请重新登录",
					})
				}
			}
			return next(c)
		}
	})

	b.Server = httptest.NewServer(e)
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) URL() string { return b.Server.URL }

// Config returns a client config pointing at the fake backend.
func (b *Backend) Config() *core.Config {
	conf := core.NewConfig()
	conf.API.BaseURL = b.URL()
	return conf
}

// OK writes a successful envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}

// Fail writes a business failure envelope (transport-level success).
func Fail(c echo.Context, message, code string) error {
	body := echo.Map{"success": false, "message": message}
	if code != "" {
		body["error_code"] = code
	}
	return c.JSON(http.StatusOK, body)
}

// NopLogger discards everything; tests that assert on behavior, not logs.
type NopLogger struct{}

var _ core.Logger = NopLogger{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}
