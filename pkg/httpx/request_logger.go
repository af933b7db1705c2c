package httpx

import (
	"time"

	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// не логируем /metrics, /ping
		switch c.FullPath() {
		case "/metrics", "/ping":
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		sp, _ := ctxmeta.SpanIDFromContext(ctx)

		msg := "request span=%s method=%s path=%s status=%d ip=%s duration=%s size=%d"
		args := []any{sp, c.Request.Method, path, c.Writer.Status(), c.ClientIP(), time.Since(start), c.Writer.Size()}
		if c.Writer.Status() >= 500 {
			log.Errorf(ctx, msg, args...)
			return
		}
		log.Infof(ctx, msg, args...)
	}
}
