package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/config"
	appHTTP "github.com/beyond-ems/ems-attendance-go/internal/handler/http"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/cron"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/database"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/jwt"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/oauth"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/sse"
	"github.com/beyond-ems/ems-attendance-go/internal/repository/postgresql"
	adminLogService "github.com/beyond-ems/ems-attendance-go/internal/service/adminlog"
	attendanceService "github.com/beyond-ems/ems-attendance-go/internal/service/attendance"
	serviceAuth "github.com/beyond-ems/ems-attendance-go/internal/service/auth"
	dashboardService "github.com/beyond-ems/ems-attendance-go/internal/service/dashboard"
	leaveService "github.com/beyond-ems/ems-attendance-go/internal/service/leave"
	performanceService "github.com/beyond-ems/ems-attendance-go/internal/service/performance"
	userService "github.com/beyond-ems/ems-attendance-go/internal/service/user"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ems-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	loc := cfg.Location()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	metricRepo := postgresql.NewPerformanceMetricRepository(db)
	adminLogRepo := postgresql.NewAdminLogRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService := jwt.NewJWTService(cfg.Session.Secret, cfg.Session.Expiration, cfg.Session.CookieName, cfg.IsProduction())
	DiscordService := oauth.NewDiscordService(cfg.Discord.ClientID, cfg.Discord.ClientSecret, cfg.Discord.RedirectURL, cfg.Discord.Scopes)

	hub := sse.NewHub()

	userSvc := userService.NewUserService(transactor, userRepo, adminLogRepo)
	authSvc := serviceAuth.NewAuthService(userSvc, JWTService, cfg.Discord.BotTokenHash)
	attendanceSvc := attendanceService.NewAttendanceService(transactor, attendanceRepo, userRepo, adminLogRepo, sse.NewDutyFeed(hub), loc)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)
	leaveSvc := leaveService.NewLeaveService(transactor, leaveRequestRepo, adminLogRepo)
	performanceSvc := performanceService.NewPerformanceService(transactor, metricRepo, adminLogRepo, loc)
	adminLogSvc := adminLogService.NewAdminLogService(adminLogRepo)

	handlers := appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(JWTService, authSvc, DiscordService, cfg.App.FrontendURL, cfg.IsProduction()),
		Attendance:  appHTTP.NewAttendanceHandler(attendanceSvc),
		Dashboard:   appHTTP.NewDashboardHandler(dashboardSvc),
		Leave:       appHTTP.NewLeaveHandler(leaveSvc),
		Performance: appHTTP.NewPerformanceHandler(performanceSvc, loc),
		Admin:       appHTTP.NewAdminHandler(userSvc, attendanceSvc, adminLogSvc),
		Bot:         appHTTP.NewBotHandler(userSvc, attendanceSvc, dashboardSvc),
		Stream:      appHTTP.NewStreamHandler(hub),
	}

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:         logger,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		CSRFAuthKey:    []byte(cfg.CSRF.AuthKey),
		Production:     cfg.IsProduction(),
	}, JWTService, authSvc, handlers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler(ctx)
	cron.NewPerformanceJobs(performanceSvc, cfg.Performance.RefreshInterval, loc).RegisterJobs(scheduler)
	scheduler.Start()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	srv.RegisterOnShutdown(hub.Close)

	go func() {
		slog.Info("Server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
	scheduler.Stop()
	slog.Info("Server exited")
}
