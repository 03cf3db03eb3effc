package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPRecorder starts timing a request and returns the func that records it
type HTTPRecorder interface {
	HTTPStarted() func(method, route string, status int, duration time.Duration)
}

// Metrics records request count and latency labelled by route template
func Metrics(recorder HTTPRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		done := recorder.HTTPStarted()
		c.Next()
		done(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
