package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/dwlr-monitor/internal/domain"
	"github.com/couchcryptid/dwlr-monitor/internal/monitor"
	"github.com/couchcryptid/dwlr-monitor/internal/observability"
)

// ReadinessChecker reports whether a dependency is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// StationReader answers station queries against the latest snapshot.
type StationReader interface {
	Stations(f monitor.Filter) []domain.Station
	Station(id string) (domain.Station, error)
	Summary(f monitor.Filter) monitor.Summary
}

// ThemeService reads and updates the theme preference.
type ThemeService interface {
	Current() domain.ThemePreference
	Set(ctx context.Context, pref domain.ThemePreference) error
	Toggle(ctx context.Context, system domain.Scheme) domain.ThemePreference
	Scheme(system domain.Scheme) domain.Scheme
}

// SimulatorControl starts and stops the telemetry simulator.
type SimulatorControl interface {
	Start(ctx context.Context) bool
	Stop() bool
	Running() bool
	Current() domain.Snapshot
}

// Deps are the services the API is served from. Readiness may list several
// checkers; all must pass.
type Deps struct {
	Stations  StationReader
	Theme     ThemeService
	Simulator SimulatorControl
	Readiness []ReadinessChecker
	// SimulatorContext bounds simulator loops started over HTTP. It defaults
	// to context.Background.
	SimulatorContext context.Context
}

// Server exposes the station API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	router     *mux.Router
	deps       Deps
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with the API and health routes registered.
func NewServer(addr string, deps Deps, logger *slog.Logger, metrics *observability.Metrics) *Server {
	if deps.SimulatorContext == nil {
		deps.SimulatorContext = context.Background()
	}

	router := mux.NewRouter()
	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:  router,
		deps:    deps,
		logger:  logger,
		metrics: metrics,
	}

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(s.instrument)
	s.registerRoutes(api)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return s
}

func (s *Server) registerRoutes(api *mux.Router) {
	// stats must be registered before {id} so it is not captured as an id.
	api.HandleFunc("/stations/stats", s.handleStationStats).Methods(http.MethodGet)
	api.HandleFunc("/stations/{id}", s.handleStation).Methods(http.MethodGet)
	api.HandleFunc("/stations", s.handleStations).Methods(http.MethodGet)

	api.HandleFunc("/theme", s.handleGetTheme).Methods(http.MethodGet)
	api.HandleFunc("/theme", s.handleSetTheme).Methods(http.MethodPut)
	api.HandleFunc("/theme/toggle", s.handleToggleTheme).Methods(http.MethodPost)

	api.HandleFunc("/simulator", s.handleSimulatorStatus).Methods(http.MethodGet)
	api.HandleFunc("/simulator/start", s.handleSimulatorStart).Methods(http.MethodPost)
	api.HandleFunc("/simulator/stop", s.handleSimulatorStop).Methods(http.MethodPost)
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the router, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	var errs []error
	for _, c := range s.deps.Readiness {
		errs = append(errs, c.CheckReadiness(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// requestIDHeader is echoed back, or generated when the client sends none.
const requestIDHeader = "X-Request-ID"

// instrument tags each request with an id and records request counts and
// latency labelled by route template.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		s.metrics.APIRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		s.metrics.APIRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		s.logger.Debug("api request", "request_id", reqID, "method", r.Method, "route", route, "status", rec.status, "duration", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
