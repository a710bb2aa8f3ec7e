package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/coffeelux/auth/internal/auth/http"
	"github.com/coffeelux/auth/internal/auth/mailer"
	"github.com/coffeelux/auth/internal/auth/service"
	"github.com/coffeelux/auth/internal/auth/state"
	"github.com/coffeelux/auth/internal/auth/state/drivers/memory"
	"github.com/coffeelux/auth/internal/auth/state/drivers/redis"
	"github.com/coffeelux/auth/internal/auth/store"
	"github.com/coffeelux/auth/internal/auth/store/drivers/sqlite"
	"github.com/coffeelux/auth/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	states state.Store

	authService         *service.AuthService
	recoveryService     *service.RecoveryService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "coffeelux-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initState(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.states.Close(); err != nil {
		app.logger.Error("error closing state store", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initState() error {
	if app.cfg.RedisAddr == "" {
		app.states = memory.NewStore()
		app.logger.Info("using in-process state store")
		return nil
	}

	rs := redis.NewStore(app.cfg.RedisAddr, app.cfg.RedisPassword, app.cfg.RedisDB)
	if err := rs.Ping(context.Background()); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", app.cfg.RedisAddr, err)
	}
	app.states = rs
	app.logger.Info("using redis state store", "addr", app.cfg.RedisAddr)
	return nil
}

func (app *Application) initServices() {
	var notifier mailer.Notifier
	smtpCfg := mailer.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.SMTPFrom,
		FromName: app.cfg.SMTPFromName,
	}
	if smtpCfg.Valid() {
		notifier = mailer.NewSMTPNotifier(smtpCfg, app.logger)
	} else {
		notifier = mailer.NewLogNotifier(app.logger)
		app.logger.Warn("no SMTP relay configured, recovery codes go to the log")
	}

	app.authService = &service.AuthService{
		Store: app.db,
		State: app.states,
	}
	app.recoveryService = &service.RecoveryService{
		Store:    app.db,
		State:    app.states,
		Notifier: notifier,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.states,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	app.router = httpapi.NewRouter(BuildVersion, app.db, app.states, app.logger)
	app.router.Policy = service.NewAccessPolicy()
	app.router.AuthService = app.authService
	app.router.RecoveryService = app.recoveryService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
