package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	pkgredis "github.com/kmabtech/web/internal/pkg/redis"
	"go.uber.org/zap"
)

// FormLimit returns a sliding-window rate limit for form submissions (contact
// form, login). With no Redis the limit is disabled; a single instance behind
// a tiny marketing site does not warrant an in-process fallback.
func FormLimit(rc *pkgredis.Client, logger *zap.Logger, max int, window time.Duration) gin.HandlerFunc {
	if window < time.Second {
		window = time.Second
	}
	return func(c *gin.Context) {
		if rc == nil {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("kmab:form_limit:%s:%s:%d", c.FullPath(), ip, time.Now().Unix()/int64(window.Seconds()))

		count, err := rc.Incr(ctx, key)
		if err != nil {
			// Redis trouble never blocks a visitor.
			c.Next()
			return
		}
		if count == 1 {
			_ = rc.Expire(ctx, key, window+time.Second)
		}

		if count > int64(max) {
			logger.Warn("form submission throttled",
				zap.String("ip", ip), zap.String("path", c.Request.URL.Path))
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.String(http.StatusTooManyRequests, "Çok fazla istek gönderdiniz. Lütfen biraz bekleyin.")
			c.Abort()
			return
		}
		c.Next()
	}
}
