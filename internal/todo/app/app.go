package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/tickbox/tickbox/internal/todo/http"
	"github.com/tickbox/tickbox/internal/todo/service"
	"github.com/tickbox/tickbox/internal/todo/store"
	mongostore "github.com/tickbox/tickbox/internal/todo/store/drivers/mongo"
	"github.com/tickbox/tickbox/pkg/jwtx"
	"github.com/tickbox/tickbox/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the todo service together: config, logger, store,
// token codec, services and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	codec *jwtx.Codec

	userService *service.UserService
	todoService *service.TodoService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "todod",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// The signing secret is read-only from here on.
	codec, err := jwtx.NewCodec(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("JWT_SECRET must be set: %w", err)
	}
	app.codec = codec

	if err := app.initStore(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("todo service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully stops the HTTP server and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down todo service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGrace)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(ctx); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("todo service stopped")
	return nil
}

func (app *Application) initStore() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ConnectGrace)
	defer cancel()

	db, err := mongostore.NewStore(ctx, app.cfg.MongoURI, app.cfg.MongoDatabase)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	app.db = db

	if err := db.EnsureIndexes(ctx); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	app.logger.Info("store indexes ensured")
	return nil
}

func (app *Application) initServices() {
	app.userService = &service.UserService{
		Store: app.db,
		Codec: app.codec,
		Cost:  app.cfg.BcryptCost,
	}
	app.todoService = &service.TodoService{Store: app.db}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.cfg.TokenHeader,
		BuildVersion,
		app.db,
		app.logger,
	)
	router.UserService = app.userService
	router.TodoService = app.todoService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: router,
	}
}
