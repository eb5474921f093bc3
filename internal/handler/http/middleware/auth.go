package middleware

import (
	"errors"
	"net/http"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/handler/http/response"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// TokenFromCookie returns a jwtauth token finder reading the named cookie.
func TokenFromCookie(name string) func(r *http.Request) string {
	return func(r *http.Request) string {
		cookie, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return cookie.Value
	}
}

// RawToken returns the session token presented by the request, cookie first.
func RawToken(r *http.Request, cookieName string) string {
	if token := TokenFromCookie(cookieName)(r); token != "" {
		return token
	}
	return jwtauth.TokenFromHeader(r)
}

// SessionRequired runs after jwtauth.Verify. It rejects missing, invalid or
// revoked tokens and stores the session snapshot in the request context.
func SessionRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			switch {
			case errors.Is(err, jwtauth.ErrNoTokenFound):
				response.HandleError(w, auth.ErrUnauthenticated)
				return
			case errors.Is(err, jwtauth.ErrExpired):
				response.HandleError(w, auth.ErrTokenExpired)
				return
			case err != nil:
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrUnauthenticated)
				return
			}

			if jwtService.IsTokenRevoked(RawToken(r, jwtService.CookieName())) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			session, err := jwtService.SessionFromClaims(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		}
		return http.HandlerFunc(hfn)
	}
}
