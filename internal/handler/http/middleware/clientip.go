package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// ClientIP stashes the caller's address on the request context under the
// "client_ip" key the audit recorder reads. X-Forwarded-For wins over the
// socket address so entries behind a proxy carry the real client.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientAddr(r)
		ctx := context.WithValue(r.Context(), "client_ip", ip)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
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
