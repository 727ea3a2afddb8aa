package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/budgettracker/expense-api/internal/auth"
	"github.com/budgettracker/expense-api/internal/config"
	"github.com/budgettracker/expense-api/internal/handlers"
	"github.com/budgettracker/expense-api/internal/logger"
	"github.com/budgettracker/expense-api/internal/middleware"
	"github.com/budgettracker/expense-api/internal/service"
	"github.com/budgettracker/expense-api/internal/storage"
)

func main() {
	log := logger.New("expense-api")
	log.SetStdLog()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	store, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer store.Close()
	log.Info("Connected to %s database", cfg.Database.Driver)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	api := handlers.NewAPI(
		store,
		service.NewUserService(jwtManager),
		service.NewExpenseService(),
		middleware.NewAuthenticator(jwtManager, log.With("component", "auth")),
		log,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      api.NewRouter(cfg.CORS.AllowedOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Listening on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed: %v", err)
	}
	log.Info("Server stopped")
}
