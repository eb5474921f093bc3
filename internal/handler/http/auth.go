package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/handler/http/middleware"
	"github.com/beyond-ems/ems-attendance-go/internal/handler/http/response"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/jwt"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/oauth"
	"github.com/gorilla/csrf"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStatePath   = "/api/v1/auth/discord/callback"
)

type AuthHandler interface {
	LoginWithDiscord(w http.ResponseWriter, r *http.Request)
	OAuthCallbackDiscord(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	CSRFToken(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService     jwt.Service
	authService    auth.AuthService
	discordService oauth.DiscordService
	frontendURL    string
	secureCookies  bool
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService, discordService oauth.DiscordService, frontendURL string, secureCookies bool) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:     jwtService,
		authService:    authService,
		discordService: discordService,
		frontendURL:    frontendURL,
		secureCookies:  secureCookies,
	}
}

// LoginWithDiscord implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithDiscord(w http.ResponseWriter, r *http.Request) {
	state, err := a.discordService.GenerateState()
	if err != nil {
		slog.Error("LoginWithDiscord state error", "error", err)
		response.HandleError(w, err)
		return
	}

	cookie := &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     oauthStatePath,
		Expires:  time.Now().Add(5 * time.Minute),
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
	http.Redirect(w, r, a.discordService.RedirectURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallbackDiscord implements AuthHandler.
func (a *AuthHandlerImpl) OAuthCallbackDiscord(w http.ResponseWriter, r *http.Request) {
	// Helper function to redirect to frontend with error
	redirectWithError := func(errorMsg string) {
		redirectURL := fmt.Sprintf("%s/login?error=%s", a.frontendURL, url.QueryEscape(errorMsg))
		http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
	}

	// The state cookie is single use
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     oauthStatePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	errorValue := r.URL.Query().Get("error")
	if errorValue == "access_denied" {
		slog.Error("Discord access denied by user", "error", auth.ErrDiscordAccessDeny)
		redirectWithError("access_denied")
		return
	}
	if errorValue != "" {
		slog.Error("Error in OAuth callback", "error", errorValue)
		redirectWithError(errorValue)
		return
	}

	stateReq, err := r.Cookie(oauthStateCookie)
	if err != nil || stateReq.Value == "" {
		slog.Error("State cookie is empty", "error", auth.ErrStateCookieEmpty)
		redirectWithError("state_cookie_empty")
		return
	}

	stateParam := r.URL.Query().Get("state")
	if stateParam == "" {
		slog.Error("State parameter is empty", "error", auth.ErrStateParamEmpty)
		redirectWithError("state_param_empty")
		return
	}

	if stateParam != stateReq.Value {
		slog.Error("State mismatch", "error", auth.ErrStateMismatch)
		redirectWithError("state_mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		slog.Error("Code value is empty", "error", auth.ErrCodeValueEmpty)
		redirectWithError("code_empty")
		return
	}

	token, err := a.discordService.VerifyToken(r.Context(), code)
	if err != nil {
		slog.Error("Failed to verify token", "error", err)
		redirectWithError("token_verification_failed")
		return
	}

	identity, err := a.discordService.VerifyUser(r.Context(), token)
	if err != nil {
		slog.Error("Failed to verify user", "error", err)
		redirectWithError("user_verification_failed")
		return
	}

	loginResponse, err := a.authService.LoginWithDiscord(r.Context(), identity)
	if err != nil {
		slog.Error("Failed to login with Discord", "error", err)
		redirectWithError("login_failed")
		return
	}

	http.SetCookie(w, a.jwtService.SessionCookie(loginResponse.Token, loginResponse.ExpiresAt))

	slog.Info("User logged in successfully via Discord OAuth", "user_id", loginResponse.User.ID)
	http.Redirect(w, r, a.frontendURL+"/dashboard", http.StatusTemporaryRedirect)
}

// Logout implements AuthHandler. The presented token stays revoked until it
// would have expired.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if raw := middleware.RawToken(r, a.jwtService.CookieName()); raw != "" {
		if token, err := a.jwtService.JWTAuth().Decode(raw); err == nil && token != nil {
			a.jwtService.RevokeToken(raw, token.Expiration().Unix())
		}
	}

	http.SetCookie(w, a.jwtService.ClearSessionCookie())
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// CSRFToken implements AuthHandler.
func (a *AuthHandlerImpl) CSRFToken(w http.ResponseWriter, r *http.Request) {
	token := csrf.Token(r)
	w.Header().Set("X-CSRF-Token", token)
	response.Success(w, map[string]string{"csrf_token": token})
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	me, err := a.authService.Me(r.Context())
	if err != nil {
		slog.Error("Me service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, me)
}
