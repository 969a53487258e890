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
	"time"

	httpapi "github.com/aussiebroadwan/oauthd/internal/auth/http"
	"github.com/aussiebroadwan/oauthd/internal/auth/service"
	"github.com/aussiebroadwan/oauthd/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/oauthd/pkg/cryptox"
	"github.com/aussiebroadwan/oauthd/pkg/slogx"
)

// BuildVersion is overridden at build time via
// -ldflags "-X github.com/aussiebroadwan/oauthd/internal/auth/app.BuildVersion=..."
var BuildVersion = "dev"

// Application owns the server and everything it depends on.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    *sqlite.Store
	keys  *AuthKeys
	vault *cryptox.Vault

	sessionService *service.SessionService
	userService    *service.UserService
	projectService *service.ProjectService
	oauth2Service  *service.OAuth2Service

	server *http.Server
}

// New wires the application from cfg. Nothing is listening yet.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "oauthd",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}
	slog.SetDefault(app.logger)

	pepper, err := cryptox.LoadPepper(cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	app.vault = cryptox.NewVault(pepper)

	keys, err := InitAuthKeys(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signing keys: %w", err)
	}
	app.keys = keys

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (app *Application) Run() error {
	app.logger.Info("oauthd starting", "port", app.cfg.Port, "issuer", app.cfg.Issuer)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig.String())
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down oauthd")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("oauthd stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := app.cfg.DatabaseFile
	if dsn != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", dsn)
	}

	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	app.db = db

	if v, dirty, err := db.SchemaVersion(); err == nil {
		app.logger.Info("database migrations applied", "version", v, "dirty", dirty)
	}
	return nil
}

func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Store:      app.db,
		Vault:      app.vault,
		Signer:     app.keys.Signer,
		Verifier:   app.keys.Verifier,
		Issuer:     app.cfg.Issuer,
		SessionTTL: app.cfg.SessionTTL,
	}
	app.userService = &service.UserService{Store: app.db, Vault: app.vault}
	app.projectService = &service.ProjectService{Store: app.db, Vault: app.vault}
	app.oauth2Service = &service.OAuth2Service{
		Store:    app.db,
		Projects: app.projectService,
		Ledger:   &service.LedgerService{Store: app.db, TokenTTL: app.cfg.AccessTokenTTL},
		Sessions: app.sessionService,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys.KeySet,
		app.keys.Verifier,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.ExposeStack(),
	)
	router.SessionService = app.sessionService
	router.UserService = app.userService
	router.ProjectService = app.projectService
	router.OAuth2Service = app.oauth2Service
	router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
