package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	commandbus "graphbrowser/application/commands/bus"
	querybus "graphbrowser/application/queries/bus"
	"graphbrowser/infrastructure/config"
	"graphbrowser/interfaces/http/rest/handlers"
	"graphbrowser/interfaces/http/rest/middleware"
	"graphbrowser/interfaces/ws"
)

// ReadinessChecker reports whether downstream dependencies are reachable.
type ReadinessChecker func(ctx context.Context) error

// Router creates and configures the HTTP router
type Router struct {
	cfg        *config.Config
	commandBus *commandbus.CommandBus
	queryBus   *querybus.QueryBus
	hub        *ws.Hub
	ready      ReadinessChecker
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	commandBus *commandbus.CommandBus,
	queryBus *querybus.QueryBus,
	hub *ws.Hub,
	ready ReadinessChecker,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:        cfg,
		commandBus: commandBus,
		queryBus:   queryBus,
		hub:        hub,
		ready:      ready,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:8080"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// Prometheus metrics
	router.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.cfg))

		r.Route("/sessions", func(r chi.Router) {
			sessionHandler := handlers.NewSessionHandler(rt.commandBus, rt.queryBus, rt.hub, rt.logger)
			r.Post("/", sessionHandler.CreateSession)
			r.Get("/", sessionHandler.ListSessions)
			r.Get("/{sessionID}/graph", sessionHandler.GetGraphData)
			r.Get("/{sessionID}/stats", sessionHandler.GetStats)
			r.Post("/{sessionID}/events", sessionHandler.PostEvent)
			r.Post("/{sessionID}/nodes/{nodeID}/menu", sessionHandler.AttachMenu)
			r.Delete("/{sessionID}/nodes/{nodeID}/menu", sessionHandler.DetachMenu)
			r.Delete("/{sessionID}", sessionHandler.CloseSession)
			r.Get("/{sessionID}/ws", sessionHandler.Subscribe)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if rt.ready != nil {
		if err := rt.ready(req.Context()); err != nil {
			rt.logger.Warn("Readiness check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
