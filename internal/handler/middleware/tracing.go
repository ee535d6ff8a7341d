package middleware

import (
	"context"
	"fmt"
	"net/http"

	"facility-booking/internal/pkg/tracing"

	"github.com/gin-gonic/gin"
)

// Tracing opens one X-Ray segment per request. It is a no-op when the
// tracer is disabled.
func Tracing(tracer *tracing.Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !tracer.Enabled() {
			c.Next()
			return
		}

		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}
		_ = tracer.Segment(c.Request.Context(), c.Request.Method+" "+name, func(ctx context.Context) error {
			c.Request = c.Request.WithContext(ctx)
			tracing.Annotate(ctx, "method", c.Request.Method)
			c.Next()

			status := c.Writer.Status()
			tracing.Annotate(ctx, "status", status)
			if status >= http.StatusInternalServerError {
				return fmt.Errorf("request failed with status %d", status)
			}
			return nil
		})
	}
}
