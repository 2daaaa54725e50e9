package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/accountowner/internal/config"
	"github.com/deppfellow/accountowner/internal/errs"
	"github.com/deppfellow/accountowner/internal/metrics"
	"github.com/deppfellow/accountowner/internal/server"
	"github.com/deppfellow/accountowner/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Server: config.ServerConfig{CORSAllowedOrigins: []string{"*"}, RateLimit: 1},
		},
		Logger:  &logger,
		Metrics: metrics.New(prometheus.NewRegistry()),
	}
}

func serve(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGlobalErrorHandler(t *testing.T) {
	s := newTestServer()
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler

	e.GET("/storage", func(c echo.Context) error {
		return sqlerr.NewStorageError("commit", errors.New("connection reset by peer"))
	})
	e.GET("/not-found", func(c echo.Context) error {
		return errs.NewNotFoundError("owner not found", true, nil)
	})
	e.GET("/unknown", func(c echo.Context) error {
		return errors.New("something odd")
	})

	t.Run("storage errors are hidden behind a 500", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/storage")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "Internal Server Error", body.Message)
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})

	t.Run("http errors keep their status and message", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/not-found")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "owner not found", body.Message)
		assert.True(t, body.Override)
	})

	t.Run("unclassified errors are a 500", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/unknown")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "something odd")
	})

	t.Run("unknown routes are a 404", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/nowhere")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Route not found", decodeError(t, rec).Message)
	})
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generated when absent", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/")

		id := rec.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("propagated when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})
}

func TestEnhanceContext_PutsLoggerOnRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	s := newTestServer()
	s.Logger = &logger

	e := echo.New()
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext())
	e.GET("/owners", func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("from the request context")
		GetLogger(c).Info().Msg("from the echo context")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/owners", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	e.ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, `"request_id":"abc-123"`)
		assert.Contains(t, line, `"path":"/owners"`)
	}
}

func TestRateLimiter(t *testing.T) {
	s := newTestServer()
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(NewRateLimitMiddleware(s).Limiter())
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet, "/").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(e, http.MethodGet, "/").Code)
}

func TestResponseStatus(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, http.StatusBadRequest, responseStatus(c, errs.NewReferentialError("owner missing", "OWNER_NOT_FOUND")))
	assert.Equal(t, http.StatusNotFound, responseStatus(c, echo.ErrNotFound))
	assert.Equal(t, http.StatusMethodNotAllowed, responseStatus(c, echo.ErrMethodNotAllowed))
	assert.Equal(t, http.StatusInternalServerError, responseStatus(c, sqlerr.NewStorageError("find", errors.New("x"))))
}
