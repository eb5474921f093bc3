package middleware

import (
	"net/http"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/handler/http/response"
)

const BotTokenHeader = "X-Bot-Token"

// BotTokenRequired guards the bot API with the shared X-Bot-Token secret.
func BotTokenRequired(authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := authService.VerifyBotToken(r.Header.Get(BotTokenHeader)); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
