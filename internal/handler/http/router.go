package http

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/handler/http/middleware"
	"github.com/beyond-ems/ems-attendance-go/internal/handler/http/response"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/gorilla/csrf"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	CSRFAuthKey    []byte
	Production     bool
}

type Handlers struct {
	Auth        AuthHandler
	Attendance  AttendanceHandler
	Dashboard   DashboardHandler
	Leave       LeaveHandler
	Performance PerformanceHandler
	Admin       AdminHandler
	Bot         BotHandler
	Stream      StreamHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, authService auth.AuthService, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", middleware.BotTokenHeader},
		ExposedHeaders:   []string{"Link", "X-CSRF-Token"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(middleware.RequestMeta)
	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	csrfProtect := newCSRF(cfg)

	r.Route("/api/v1", func(r chi.Router) {

		// Discord bot, authenticated by shared token
		r.Route("/discord", func(r chi.Router) {
			r.Use(middleware.BotTokenRequired(authService))
			r.Post("/", h.Bot.Action)
			r.Get("/", h.Bot.Query)
		})

		r.Route("/auth/discord", func(r chi.Router) {
			r.Get("/login", h.Auth.LoginWithDiscord)
			r.Get("/callback", h.Auth.OAuthCallbackDiscord)
		})

		// Cookie session routes
		r.Group(func(r chi.Router) {
			r.Use(csrfProtect)
			r.Use(jwtauth.Verify(JWTService.JWTAuth(),
				middleware.TokenFromCookie(JWTService.CookieName()),
				jwtauth.TokenFromHeader,
			))

			r.Get("/auth/csrf", h.Auth.CSRFToken)
			r.Post("/auth/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.SessionRequired(JWTService))

				r.Get("/auth/me", h.Auth.Me)

				r.Route("/attendance", func(r chi.Router) {
					r.Post("/", h.Attendance.Action)
					r.Get("/", h.Attendance.Overview)
					r.Get("/summary", h.Attendance.Summary)
				})

				r.Get("/leaderboard", h.Dashboard.Leaderboard)
				r.Get("/roster", h.Dashboard.Roster)
				r.Get("/roster/stream", h.Stream.Roster)
				r.Get("/dashboard", h.Dashboard.Overview)

				r.Route("/leave", func(r chi.Router) {
					r.Post("/", h.Leave.Create)
					r.Get("/", h.Leave.ListMine)
				})

				r.Get("/performance", h.Performance.ListMine)

				// Admin only
				r.Route("/admin", func(r chi.Router) {
					r.Use(middleware.AdminOnly)

					r.Get("/users", h.Admin.ListUsers)
					r.Put("/users/{id}", h.Admin.UpdateUser)
					r.Put("/attendance/{id}", h.Admin.EditAttendance)

					r.Route("/leave", func(r chi.Router) {
						r.Get("/", h.Leave.ListAll)
						r.Post("/{id}/approve", h.Leave.Approve)
						r.Post("/{id}/reject", h.Leave.Reject)
					})

					r.Get("/logs", h.Admin.ListLogs)
					r.Post("/performance/refresh", h.Performance.Refresh)
				})
			})
		})
	})
	return r
}

// newCSRF builds the double-submit protection for cookie routes. Outside
// production requests are marked plaintext so the TLS referer check is skipped.
func newCSRF(cfg RouterConfig) func(http.Handler) http.Handler {
	protect := csrf.Protect(cfg.CSRFAuthKey,
		csrf.Secure(cfg.Production),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.TrustedOrigins(trustedHosts(cfg.AllowedOrigins)),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("CSRF validation failed", "error", csrf.FailureReason(r), "path", r.URL.Path)
			response.Forbidden(w, "Invalid CSRF token")
		})),
	)

	if cfg.Production {
		return protect
	}

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

// trustedHosts turns CORS origins into the host[:port] form csrf expects.
func trustedHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, origin := range origins {
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			continue
		}
		hosts = append(hosts, u.Host)
	}
	return hosts
}
