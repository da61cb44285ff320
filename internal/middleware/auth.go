package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kmabtech/web/internal/pkg/apiclient"
	"github.com/kmabtech/web/internal/pkg/session"
)

// AdminGuard redirects to the login page when no valid session cookie is
// present. Cookie possession is not trusted as proof of validity: the token
// is only confirmed by the backend once an admin call is made, and a 401
// there clears the session (see handlers' error paths).
func AdminGuard(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := session.Token(c)
		if token == "" {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		// Downstream facade calls pick the token up from the request
		// context; public requests never carry one.
		c.Request = c.Request.WithContext(apiclient.WithToken(c.Request.Context(), token))
		c.Next()
	}
}
