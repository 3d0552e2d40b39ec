package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/nurpe/removals-office/internal/model"
)

type stubParser struct {
	principal model.Principal
	err       error
}

func (s stubParser) Parse(string) (model.Principal, error) {
	return s.principal, s.err
}

func newEngine(parser TokenParser, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestLogger(log), Auth(parser))
	engine.GET("/me", func(c *gin.Context) {
		principal, ok := MustPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, string(principal.Role))
	})
	return engine
}

func TestAuthStoresPrincipal(t *testing.T) {
	parser := stubParser{principal: model.Principal{UserID: uuid.New(), Role: model.RoleStaff}}
	engine := newEngine(parser, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "staff", rec.Body.String())
}

func TestAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	engine := newEngine(stubParser{err: errors.New("bad")}, zerolog.Nop())

	for _, header := range []string{"", "Basic abc", "Bearer ", "Bearer token"} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Contains(t, rec.Body.String(), `"success":false`)
	}
}

func TestRequestLoggerWritesStatus(t *testing.T) {
	var buf bytes.Buffer
	engine := newEngine(stubParser{err: errors.New("bad")}, zerolog.New(&buf))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Contains(t, buf.String(), `"status":401`)
	assert.Contains(t, buf.String(), `"path":"/me"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
