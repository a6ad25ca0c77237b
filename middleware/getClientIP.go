package middleware

import (
	"net"
	"strings"

	"autoserve/config"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the caller's IP for rate limiting. Proxy headers are
// honored only when TRUST_PROXY_HEADERS is set; a directly exposed deployment
// must not let clients spoof their way past the per-IP limit.
func getClientIP(c *gin.Context) string {
	if config.AppConfig.TrustProxyHeaders {
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			// First hop in the chain is the originating client.
			if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
				return first
			}
		}
		if xri := c.GetHeader("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	// RemoteAddr is usually "ip:port"; strip the port if present.
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
