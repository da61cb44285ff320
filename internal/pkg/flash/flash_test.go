package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func TestSetThenPopAcrossRequests(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/contact", nil)
	Set(c, KindSuccess, "Mesajınız alındı.")

	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "kmab_flash" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/contact", nil)
	c2.Request.AddCookie(cookie)

	msg := Pop(c2)
	require.NotNil(t, msg)
	assert.Equal(t, KindSuccess, msg.Kind)
	assert.Equal(t, "Mesajınız alındı.", msg.Text)

	// Pop clears the cookie.
	cleared := false
	for _, ck := range w2.Result().Cookies() {
		if ck.Name == "kmab_flash" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestPopWithoutCookie(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, Pop(c))
}
