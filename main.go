package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/adventuresync/server/internal/config"
	"github.com/adventuresync/server/internal/handler"
	"github.com/adventuresync/server/internal/notify"
	"github.com/adventuresync/server/internal/paypal"
	"github.com/adventuresync/server/internal/repository/memstore"
	"github.com/adventuresync/server/internal/service"
	"github.com/adventuresync/server/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load configuration", "error", err)
		os.Exit(1)
	}
	if len(cfg.SessionSecret) < 32 {
		slog.Error("SESSION_SECRET must be at least 32 characters for HMAC-SHA256 security")
		os.Exit(1)
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 14 {
		slog.Error("BCRYPT_COST must be between 4 and 14", "value", cfg.BcryptCost)
		os.Exit(1)
	}

	store := memstore.New()
	if cfg.SeedDemoData {
		if err := store.Seed(context.Background(), cfg.BcryptCost); err != nil {
			slog.Error("seed demo data", "error", err)
			os.Exit(1)
		}
		slog.Info("demo data seeded")
	}

	blobs, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		slog.Error("open upload directory", "error", err)
		os.Exit(1)
	}

	hub := notify.NewHub()

	var gateway paypal.Gateway = paypal.Disabled{}
	if cfg.PayPalConfigured() {
		gateway = paypal.NewClient(cfg.PayPalBaseURL, cfg.PayPalClientID, cfg.PayPalClientSecret)
		slog.Info("payment gateway enabled")
	} else {
		slog.Warn("payment gateway disabled: processor credentials not configured")
	}

	authService := service.NewAuthService(store.Users(), cfg.SessionSecret, cfg.BcryptCost)
	userService := service.NewUserService(store.Users())
	eventService := service.NewEventService(store.Events(), store.UserEvents())
	fileService := service.NewFileService(store.Files(), store.Users(), blobs)
	paymentService := service.NewPaymentService(store.Payments(), store.Users(), hub)
	budgetService := service.NewBudgetService(store.Budgets())
	statsService := service.NewStatsService(
		store.Users(), store.Events(), store.UserEvents(),
		store.Files(), store.Payments(), store.Budgets(),
	)

	limiter := service.NewAttemptLimiter(0.5, 10)
	defer limiter.Stop()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService, statsService),
		Event:   handler.NewEventHandler(eventService),
		File:    handler.NewFileHandler(fileService),
		Payment: handler.NewPaymentHandler(paymentService),
		Budget:  handler.NewBudgetHandler(budgetService),
		Metrics: handler.NewMetricsHandler(statsService),
		Admin:   handler.NewAdminHandler(store, cfg.BcryptCost),
		PayPal:  handler.NewPayPalHandler(gateway),
		WS:      handler.NewWSHandler(authService, hub),
	}, authService, store.Users(), limiter)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(corsMiddleware.Handler(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
