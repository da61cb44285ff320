package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kmabtech/web/internal/pkg/apiclient"
	jwtpkg "github.com/kmabtech/web/internal/pkg/jwt"
	"github.com/kmabtech/web/internal/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func guardedRouter(onRequest func(c *gin.Context)) *gin.Engine {
	r := gin.New()
	g := r.Group("/admin", AdminGuard("/admin/login"))
	g.GET("/dashboard", func(c *gin.Context) {
		onRequest(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestAdminGuardRedirectsWithoutSession(t *testing.T) {
	called := false
	r := guardedRouter(func(c *gin.Context) { called = true })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
	assert.False(t, called)
}

func TestAdminGuardPropagatesBackendToken(t *testing.T) {
	signed, err := jwtpkg.Sign("backend-token", "admin@kmab.com", time.Hour)
	require.NoError(t, err)

	var fromCtx string
	r := guardedRouter(func(c *gin.Context) {
		fromCtx = apiclient.TokenFromContext(c.Request.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: signed})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "backend-token", fromCtx)
}

func TestAdminGuardRejectsForgedCookie(t *testing.T) {
	r := guardedRouter(func(c *gin.Context) {})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "forged"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
}
