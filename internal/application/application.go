package application

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ahaldeman-8thlight/video-class-app/internal/config"
	"github.com/ahaldeman-8thlight/video-class-app/internal/database"
	"github.com/ahaldeman-8thlight/video-class-app/internal/handler"
	"github.com/ahaldeman-8thlight/video-class-app/internal/router"
	"github.com/ahaldeman-8thlight/video-class-app/internal/service"
	"github.com/ahaldeman-8thlight/video-class-app/internal/token"
)

// API is the HTTP API application.
type API struct {
	cfg    *config.Config
	srv    *http.Server
	db     *gorm.DB
	logger *zap.Logger
}

// NewAPI creates the API application: validates config, runs migrations, opens DB, builds router.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var logger *zap.Logger
	if cfg.AppEnv == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	issuer := token.NewIssuer(cfg.StreamAPISecret)
	join := &service.JoinConfig{BaseURL: cfg.JoinBaseURL}

	userSvc := service.NewUserService(db)
	classSvc := service.NewClassService(db, cfg, issuer, join)

	userHandler := handler.NewUserHandler(userSvc)
	classHandler := handler.NewClassHandler(classSvc)
	health := handler.NewHealthHandler()

	r := router.New(userHandler, classHandler, health, cfg.FrontendOrigin, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, srv: srv, db: db, logger: logger}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled; then shuts down gracefully.
func (a *API) Run(ctx context.Context) error {
	addr := a.srv.Addr
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	log.Printf("HTTP server listening on %s", addr)
	log.Printf("  Health:   %s/health", base)
	log.Printf("  Ready:    %s/ready", base)
	log.Printf("  Users:    %s/api/users/", base)
	log.Printf("  Classes:  %s/api/classes/", base)

	go func() {
		if err := a.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	_ = a.logger.Sync()
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
