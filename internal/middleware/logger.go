package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

var skipPaths = map[string]bool{
	"/health": true,
}

// Logger logs one line per request: method, path, status, latency, and
// the client IP (the same address the rate limiter keys on).
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		log.Printf("%s%3d%s %-6s %s %s%v%s ip=%s",
			statusColor(status), status, colorReset,
			c.Request.Method, c.Request.URL.Path,
			colorCyan, time.Since(start), colorReset,
			c.ClientIP())
	}
}

func statusColor(status int) string {
	switch {
	case status >= 200 && status < 300:
		return colorGreen
	case status >= 400 && status < 500:
		return colorYellow
	case status >= 500:
		return colorRed
	default:
		return colorWhite
	}
}
