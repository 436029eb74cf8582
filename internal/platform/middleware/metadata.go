package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"crossverify/pkg/requestcontext"
)

// ClientMetadata captures the client IP and a parsed browser/OS description
// and stashes them in the context. The audit trail records them alongside
// every verdict.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawUA := r.UserAgent()
		ctx := requestcontext.WithClientMetadata(r.Context(), clientIP(r), rawUA, deviceName(rawUA))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIP prefers X-Forwarded-For (first hop) over the socket address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx > 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func deviceName(rawUA string) string {
	if rawUA == "" {
		return ""
	}
	ua := useragent.New(rawUA)
	name, version := ua.Browser()
	if name == "" {
		return ua.OS()
	}
	if ua.OS() == "" {
		return fmt.Sprintf("%s %s", name, version)
	}
	return fmt.Sprintf("%s %s on %s", name, version, ua.OS())
}
