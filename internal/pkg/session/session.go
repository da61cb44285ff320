// Package session manages the admin session cookie. The cookie value is a
// signed JWT wrapping the backend-issued bearer token; nothing is stored
// server-side, matching the "token under a fixed key" contract.
package session

import (
	"time"

	"github.com/gin-gonic/gin"
	jwtpkg "github.com/kmabtech/web/internal/pkg/jwt"
)

const (
	// CookieName is the fixed key the token lives under.
	CookieName = "kmab_admin_session"
	DefaultTTL = 24 * time.Hour
)

// Issue signs a session token for the given backend token and sets the
// cookie on the response.
func Issue(c *gin.Context, backendToken, email string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	token, err := jwtpkg.Sign(backendToken, email, ttl)
	if err != nil {
		return err
	}
	c.SetCookie(CookieName, token, int(ttl/time.Second), "/", "", false, true)
	return nil
}

// Token returns the backend bearer token from the session cookie, or ""
// when there is no valid session.
func Token(c *gin.Context) string {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return ""
	}
	claims, err := jwtpkg.Parse(raw)
	if err != nil {
		return ""
	}
	return claims.BackendToken
}

// Email returns the logged-in admin email, or "".
func Email(c *gin.Context) string {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return ""
	}
	claims, err := jwtpkg.Parse(raw)
	if err != nil {
		return ""
	}
	return claims.Email
}

// Clear removes the session cookie (logout).
func Clear(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}
