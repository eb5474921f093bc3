package middleware

import (
	"net"
	"net/http"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/adminlog"
)

// RequestMeta records the client address and user agent for admin logs.
// Run it after chiMiddleware.RealIP.
func RequestMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}

		ctx := adminlog.WithRequestMeta(r.Context(), adminlog.RequestMeta{
			IPAddress: ip,
			UserAgent: r.UserAgent(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
