package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func issueAndCapture(t *testing.T, backendToken, email string) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, Issue(c, backendToken, email, time.Hour))

	for _, ck := range w.Result().Cookies() {
		if ck.Name == CookieName {
			return ck
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestIssueAndReadBack(t *testing.T) {
	cookie := issueAndCapture(t, "backend-token", "admin@kmab.com")
	assert.True(t, cookie.HttpOnly)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin", nil)
	c.Request.AddCookie(cookie)

	assert.Equal(t, "backend-token", Token(c))
	assert.Equal(t, "admin@kmab.com", Email(c))
}

func TestTokenEmptyWithoutCookie(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin", nil)

	assert.Empty(t, Token(c))
	assert.Empty(t, Email(c))
}

func TestTokenEmptyForForgedCookie(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin", nil)
	c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})

	assert.Empty(t, Token(c))
}

func TestClearExpiresCookie(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	Clear(c)

	var found bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == CookieName {
			found = true
			assert.Less(t, ck.MaxAge, 0)
		}
	}
	assert.True(t, found)
}
