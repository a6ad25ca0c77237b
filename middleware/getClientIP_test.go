package middleware

import (
	"net/http/httptest"
	"testing"

	"autoserve/config"

	"github.com/gin-gonic/gin"
)

func requestContext(remoteAddr string, headers map[string]string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestGetClientIPBehindTrustedProxy(t *testing.T) {
	config.AppConfig.TrustProxyHeaders = true

	c := requestContext("10.0.0.1:4321", map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.1",
	})
	if got := getClientIP(c); got != "203.0.113.7" {
		t.Errorf("getClientIP() = %s, want 203.0.113.7", got)
	}

	c = requestContext("10.0.0.1:4321", map[string]string{"X-Real-IP": "203.0.113.8"})
	if got := getClientIP(c); got != "203.0.113.8" {
		t.Errorf("getClientIP() = %s, want 203.0.113.8", got)
	}
}

func TestGetClientIPIgnoresHeadersWhenUntrusted(t *testing.T) {
	config.AppConfig.TrustProxyHeaders = false
	defer func() { config.AppConfig.TrustProxyHeaders = true }()

	c := requestContext("198.51.100.4:9999", map[string]string{
		"X-Forwarded-For": "203.0.113.7",
	})
	if got := getClientIP(c); got != "198.51.100.4" {
		t.Errorf("getClientIP() = %s, want 198.51.100.4", got)
	}
}

func TestGetClientIPStripsPort(t *testing.T) {
	config.AppConfig.TrustProxyHeaders = true

	c := requestContext("198.51.100.4:9999", nil)
	if got := getClientIP(c); got != "198.51.100.4" {
		t.Errorf("getClientIP() = %s, want 198.51.100.4", got)
	}
}
