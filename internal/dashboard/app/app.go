package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aussiebroadwan/holidash/internal/dashboard/directory"
	httpapi "github.com/aussiebroadwan/holidash/internal/dashboard/http"
	"github.com/aussiebroadwan/holidash/internal/dashboard/metrics"
	"github.com/aussiebroadwan/holidash/internal/dashboard/service"
	"github.com/aussiebroadwan/holidash/internal/dashboard/store"
	"github.com/aussiebroadwan/holidash/internal/dashboard/store/drivers/bolt"
	"github.com/aussiebroadwan/holidash/internal/dashboard/store/drivers/postgres"
	"github.com/aussiebroadwan/holidash/internal/dashboard/store/drivers/sqlite"
	"github.com/aussiebroadwan/holidash/pkg/cryptox"
	"github.com/aussiebroadwan/holidash/pkg/slogx"
	"github.com/aussiebroadwan/holidash/pkg/upstream"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the directory, services and HTTP server together.
type Application struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	// Core dependencies
	db        store.Store // nil with the memory driver
	hasher    cryptox.Hasher
	directory *directory.Directory

	// Services
	loginService     *service.LoginService
	dashboardService *service.DashboardService
	reloadService    *service.ReloadService

	// HTTP server
	server *http.Server
	router *httpapi.Router

	shutdownOnce sync.Once
	shutdownErr  error
}

// New creates an Application. It opens the store but does not load the
// directory; call Bootstrap (Run does it for you).
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "holidash",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  cfg.LogOutput,
		}),
		metrics: metrics.New(),
	}

	hasher, err := cryptox.NewHasher(cfg.CredentialScheme)
	if err != nil {
		return nil, err
	}
	app.hasher = hasher

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	app.initDirectory()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Bootstrap populates the user directory from the store or the remote API.
func (app *Application) Bootstrap(ctx context.Context) error {
	start := time.Now()
	source, err := app.directory.Bootstrap(ctx, app.cfg.UserCount)
	if err != nil {
		return fmt.Errorf("failed to load user directory: %w", err)
	}

	app.logger.Info("user directory ready",
		"source", source,
		"users", app.directory.Len(),
		"scheme", app.hasher.Name(),
		"took", time.Since(start),
	)
	return nil
}

// Run bootstraps the directory, serves HTTP and blocks until ctx is done,
// SIGINT/SIGTERM arrives or the server fails. SIGHUP reloads the directory.
func (app *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Bootstrap(ctx); err != nil {
		_ = app.Shutdown()
		return err
	}

	app.reloadService.Start()

	app.logger.Info("holidash starting", "port", app.cfg.Port, "version", BuildVersion, "store", app.cfg.StoreDriver)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case err := <-serverErrors:
			_ = app.Shutdown()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-hup:
			if !app.reloadService.Trigger() {
				app.logger.Info("directory reload already pending")
			}
		case <-ctx.Done():
			app.logger.Info("shutdown requested", "cause", context.Cause(ctx))
			if err := app.Shutdown(); err != nil {
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
			return nil
		}
	}
}

// Shutdown gracefully shuts down the application. It is safe to call more
// than once.
func (app *Application) Shutdown() error {
	app.shutdownOnce.Do(func() {
		app.shutdownErr = app.shutdown()
	})
	return app.shutdownErr
}

func (app *Application) shutdown() error {
	app.logger.Info("shutting down holidash...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.reloadService.Stop()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			return err
		}
	}

	app.logger.Info("holidash stopped")
	return nil
}

// Handler is the application's HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

func (app *Application) Logger() *slog.Logger { return app.logger }

func (app *Application) LoginService() *service.LoginService { return app.loginService }

func (app *Application) DashboardService() *service.DashboardService { return app.dashboardService }

// initDatabase opens the configured store and applies migrations.
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.StoreDriver {
	case DriverMemory:
		app.logger.Info("running without persistence")
		return nil
	case DriverSQLite:
		db, err = sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	case DriverBolt:
		db, err = bolt.NewStore(app.cfg.BoltFile)
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, app.cfg.PostgresDSN)
	default:
		return fmt.Errorf("unknown store driver %q", app.cfg.StoreDriver)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize %s store: %w", app.cfg.StoreDriver, err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	app.db = db

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.StoreDriver)
	return nil
}

func (app *Application) upstreamOptions(name string) []upstream.Option {
	hc := app.metrics.InstrumentClient(name, &http.Client{Timeout: app.cfg.UpstreamTimeout})
	return []upstream.Option{upstream.WithHTTPClient(hc)}
}

func (app *Application) initDirectory() {
	client := upstream.NewRandomUser(app.cfg.RandomUserURL, app.upstreamOptions("randomuser")...)

	opts := []directory.Option{
		directory.WithLoadTimeout(app.cfg.LoadTimeout),
		directory.WithLogger(app.logger),
		directory.WithMetrics(app.metrics),
	}
	if app.db != nil {
		opts = append(opts, directory.WithStore(app.db))
	}

	app.directory = directory.New(directory.NewRandomUserSource(client, app.cfg.UserSeed), app.hasher, opts...)
}

func (app *Application) initServices() {
	app.loginService = service.NewLoginService(app.directory, service.NewCredentialVerifier(app.hasher), app.metrics)

	app.dashboardService = service.NewDashboardService(
		upstream.NewNager(app.cfg.NagerURL, app.upstreamOptions("nager")...),
		upstream.NewHelloSalut(app.cfg.HelloSalutURL, app.upstreamOptions("hellosalut")...),
		app.cfg.HolidayYears,
	)

	app.reloadService = service.NewReloadService(app.directory, app.cfg.UserCount, app.cfg.ReloadInterval, app.logger)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.directory, app.metrics, app.logger)
	router.LoginService = app.loginService
	router.DashboardService = app.dashboardService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
