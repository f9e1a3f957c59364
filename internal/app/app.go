package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"echo-widget/internal/api"
	"echo-widget/internal/brandconfig"
	"echo-widget/internal/config"
	"echo-widget/internal/database"
	"echo-widget/internal/dispatch"
	"echo-widget/internal/metrics"
	"echo-widget/internal/placeholder"
	"echo-widget/internal/render"
	"echo-widget/internal/repository"
	"echo-widget/internal/service"
	"echo-widget/internal/widget"
)

const (
	maintenanceInterval = time.Minute
	shutdownTimeout     = 15 * time.Second
)

// App holds the wired components of the service.
type App struct {
	Config   *config.Config
	DB       *sql.DB       // Set for the sqlite cache backend.
	Redis    *redis.Client // Set for the redis cache backend.
	Server   *http.Server
	Manager  *widget.Manager
	Resolver *brandconfig.Resolver
	Registry *prometheus.Registry
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.runMaintenance(ctx)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort, "cache_backend", cfg.CacheBackend)
		serverErr <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return 1
		}
	}

	return 0
}

// NewApp wires the service from cfg without starting it.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg, Registry: prometheus.NewRegistry()}
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(app.Registry)

	cache, err := app.openCache(cfg)
	if err != nil {
		return nil, err
	}

	defaults := cfg.WidgetDefaults()
	fetcher := brandconfig.NewFetcher(&http.Client{Timeout: cfg.FetchTimeout}, cfg.ConfigServiceURL)
	app.Resolver = brandconfig.NewResolver(fetcher, cache, defaults, cfg.ConfigCacheTTL, m)

	animator := placeholder.NewAnimator(placeholder.Timings{
		Type:              cfg.PlaceholderType,
		PauseAfterTyping:  cfg.PlaceholderPauseAfterTyping,
		Erase:             cfg.PlaceholderErase,
		PauseAfterErasing: cfg.PlaceholderPauseAfterErasing,
	})
	dispatcher := dispatch.NewDispatcher(&http.Client{}, cfg.DispatchTimeout)
	app.Manager = widget.NewManager(app.Resolver, dispatcher, widget.Options{Animator: animator, Observer: m})

	renderer, err := render.NewRenderer(cfg.RenderMarkdown)
	if err != nil {
		app.Close()
		return nil, err
	}

	widgetHandler := api.NewWidgetHandler(service.NewWidgetService(app.Manager, renderer))
	configHandler := api.NewConfigHandler(service.NewConfigService(app.Resolver))
	router := api.NewRouter(widgetHandler, configHandler, api.RouterOptions{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:        promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{}),
		RequestTimeout: cfg.DispatchTimeout + 10*time.Second,
	})

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}
	// Ends open placeholder streams so Shutdown does not wait on them.
	app.Server.RegisterOnShutdown(app.Manager.CloseAll)

	return app, nil
}

// Close releases the cache backend.
func (a *App) Close() {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
		a.DB = nil
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
		a.Redis = nil
	}
}

func (a *App) openCache(cfg *config.Config) (repository.ConfigCache, error) {
	switch cfg.CacheBackend {
	case config.CacheSQLite:
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		slog.Info("Successfully connected to SQLite database.")
		a.DB = db
		return repository.NewSQLiteRepository(db), nil
	case config.CacheRedis:
		a.Redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingRedis(a.Redis, cfg.RedisAddr)
		return repository.NewRedisRepository(a.Redis), nil
	default:
		slog.Info("Config cache disabled")
		return repository.NewNoopCache(), nil
	}
}

// runMaintenance reaps idle instances and purges stale cache entries until
// ctx is done.
func (a *App) runMaintenance(ctx context.Context) {
	ticker := time.NewTicker(maintenanceInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.maintain(ctx)
		}
	}
}

func (a *App) maintain(ctx context.Context) {
	if idle := a.Config.SessionIdleTimeout; idle > 0 {
		if n := a.Manager.Reap(idle); n > 0 {
			slog.Info("Reaped idle widget sessions", "count", n)
		}
	}
	n, err := a.Resolver.PurgeExpired(ctx)
	if err != nil {
		slog.Warn("Failed to purge expired config cache entries", "error", err)
		return
	}
	if n > 0 {
		slog.Debug("Purged expired config cache entries", "count", n)
	}
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// pingRedis checks the connection once. An unreachable server only degrades
// caching, so it is logged rather than fatal.
func pingRedis(rdb *redis.Client, addr string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis is not reachable, config caching will fail until it is", "addr", addr, "error", err)
		return
	}
	slog.Info("Successfully connected to Redis.", "addr", addr)
}
