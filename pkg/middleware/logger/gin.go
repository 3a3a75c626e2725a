package logger

import (
	"time"

	"github.com/gin-gonic/gin"
)

// LogWithWriter logs one line per request after the handler chain ran.
func LogWithWriter() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		ctx := c.Request.Context()
		switch {
		case status >= 500:
			Errorf(ctx, "%s %s %d %s %s", c.Request.Method, path, status, latency, c.Errors.String())
		case status >= 400:
			Warnf(ctx, "%s %s %d %s", c.Request.Method, path, status, latency)
		default:
			Infof(ctx, "%s %s %d %s", c.Request.Method, path, status, latency)
		}
	}
}
