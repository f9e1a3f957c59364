package api

import (
	"net/http"
	"time"

	// Registers the generated API definitions with swag.
	_ "echo-widget/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterOptions carries the cross-cutting pieces of the router.
type RouterOptions struct {
	// AllowedOrigins lists the host pages that may embed the widget.
	AllowedOrigins []string
	// Metrics serves the Prometheus scrape endpoint. Nil disables it.
	Metrics http.Handler
	// RequestTimeout bounds the non-streaming API routes.
	RequestTimeout time.Duration
}

// NewRouter creates a chi router with all of the application's routes.
func NewRouter(widgetHandler *WidgetHandler, configHandler *ConfigHandler, opts RouterOptions) *chi.Mux {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// The widget runs inside host pages served from other origins.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// JSON routes get a request timeout. It must exceed the webhook
		// dispatch timeout or replies would be cut off.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(opts.RequestTimeout))

			// --- Config ---
			r.Get("/config", configHandler.GetDefaultConfig)
			r.Get("/config/{recordID}", configHandler.GetConfig)
			r.Delete("/config/{recordID}", configHandler.InvalidateConfig)

			// --- Sessions ---
			r.Post("/sessions", widgetHandler.CreateSession)
			r.Get("/sessions/{sessionID}", widgetHandler.GetSession)
			r.Post("/sessions/{sessionID}/messages", widgetHandler.SendMessage)
			r.Delete("/sessions/{sessionID}", widgetHandler.CloseSession)
		})

		// Streaming routes hold the connection open and must not time out.
		r.Group(func(r chi.Router) {
			r.Get("/sessions/{sessionID}/placeholder", widgetHandler.StreamPlaceholder)
		})
	})

	r.Get("/widget/{sessionID}", widgetHandler.RenderWidget)

	return r
}
