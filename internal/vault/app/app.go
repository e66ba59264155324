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

	httpapi "github.com/aussiebroadwan/vault/internal/vault/http"
	"github.com/aussiebroadwan/vault/internal/vault/kv"
	"github.com/aussiebroadwan/vault/internal/vault/service"
	"github.com/aussiebroadwan/vault/internal/vault/store"
	"github.com/aussiebroadwan/vault/internal/vault/store/drivers/sqlite"
	"github.com/aussiebroadwan/vault/pkg/cryptox"
	"github.com/aussiebroadwan/vault/pkg/httpx"
	"github.com/aussiebroadwan/vault/pkg/jwtx"
	"github.com/aussiebroadwan/vault/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the vault service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	kv     kv.Store
	sealer *cryptox.Sealer
	signer *jwtx.HS256Signer

	// Services
	timers              *service.TimerRegistry
	challengeService    *service.ChallengeService
	consentService      *service.ConsentService
	authService         *service.AuthService
	profileService      *service.ProfileService
	entryService        *service.EntryService
	notificationService *service.NotificationService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "vault",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initKV(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	sealer, signer, err := InitSecrets(app.cfg, app.logger)
	if err != nil {
		_ = app.kv.Close()
		_ = app.db.Close()
		return nil, err
	}
	app.sealer = sealer
	app.signer = signer

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, for tests that serve it without a listener.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("vault service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down vault service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Idle timers close their websocket subscriptions
	app.timers.StopAll()

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	if err := app.kv.Close(); err != nil {
		app.logger.Error("error closing kv store", "error", err)
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("vault service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := app.cfg.DatabaseFile
	if host != ":memory:" {
		host = fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	}
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

// initKV connects to redis when configured, otherwise keeps challenges and
// expiry markers in process memory.
func (app *Application) initKV(ctx context.Context) error {
	if app.cfg.RedisURL == "" {
		app.kv = kv.NewMemory()
		app.logger.Info("using in-memory kv store")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	r, err := kv.NewRedis(ctx, app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.kv = r
	app.logger.Info("using redis kv store")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	clock := service.SystemClock{}

	app.timers = service.NewTimerRegistry(service.TimerScheduler{}, clock)

	app.challengeService = &service.ChallengeService{
		Generator: service.ChallengeGenerator{Random: service.CryptoRandom{}},
		KV:        app.kv,
		TTL:       app.cfg.ChallengeTTL,
	}
	app.consentService = &service.ConsentService{
		Store:  app.db,
		Signer: app.signer,
		Clock:  clock,
	}
	notifier := &service.NotificationEmitter{Store: app.db, Clock: clock}

	app.authService = &service.AuthService{
		Store:      app.db,
		KV:         app.kv,
		Challenges: app.challengeService,
		Consents:   app.consentService,
		Devices: service.DeviceCollector{
			Location: service.ReportedLocation{},
			Timeout:  app.cfg.LocationTimeout,
		},
		Lockout:  service.DefaultLockout,
		Notifier: notifier,
		Capture:  &service.DeterrentCapture{Clock: clock, Timeout: app.cfg.CaptureTimeout},
		Timers:   app.timers,
		Clock:    clock,
	}
	app.timers.OnExpire = app.authService.HandleExpiry

	app.profileService = &service.ProfileService{
		Store:    app.db,
		Timers:   app.timers,
		Notifier: notifier,
		Delivery: service.LogDelivery{Logger: app.logger},
		Clock:    clock,
		Issuer:   app.cfg.Issuer,
	}
	app.entryService = &service.EntryService{Store: app.db, Sealer: app.sealer, Clock: clock}
	app.notificationService = &service.NotificationService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	if mem, ok := app.kv.(*kv.Memory); ok {
		app.housekeepingService.Sweepers = append(app.housekeepingService.Sweepers, mem.Sweep)
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.kv,
		httpx.CookieConfig{Secure: app.cfg.SecureCookies},
		app.cfg.AllowedOrigins,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.ChallengeService = app.challengeService
	router.ConsentService = app.consentService
	router.ProfileService = app.profileService
	router.EntryService = app.entryService
	router.NotificationService = app.notificationService
	router.Timers = app.timers
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
