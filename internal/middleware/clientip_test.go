package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:54321"
	assert.Equal(t, "10.0.0.1", ClientIP(r))

	r.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.2")
	assert.Equal(t, "198.51.100.7", ClientIP(r))
}

func TestClientIPBadRemoteAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "not-an-addr"
	assert.Equal(t, "not-an-addr", ClientIP(r))
}
