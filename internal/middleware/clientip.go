package middleware

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the caller's address for rate limiting and the audit
// trail. The first hop in X-Forwarded-For wins, then X-Real-IP, then the
// socket address.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
