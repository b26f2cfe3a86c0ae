package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/o0olele/wayfinder-go/config"
	"github.com/o0olele/wayfinder-go/metrics"
	"github.com/o0olele/wayfinder-go/query"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Server exposes a loaded navigation over HTTP. The navigation can be replaced
// at runtime; in-flight requests keep the one they started with.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	nav    atomic.Pointer[query.Navigator]
	router *mux.Router
}

// New creates a server without a navigation. Call Load or SetNavigator before routing.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{cfg: cfg, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID, s.instrument)

	r.HandleFunc("/healthz", s.healthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	handle(api, "/stats", s.statsHandler, "GET")
	handle(api, "/route", s.routeHandler, "POST")
	handle(api, "/nearest", s.nearestHandler, "GET")
	handle(api, "/validate", s.validateHandler, "POST")
	handle(api, "/load", s.loadHandler, "POST")
	return r
}

// handle registers h for method and answers 405 for any other method on path.
// A subrouter reports a method mismatch as 404 once it holds routes with other
// methods, so the fallback is registered explicitly.
func handle(r *mux.Router, path string, h http.HandlerFunc, method string) {
	r.HandleFunc(path, h).Methods(method)
	r.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
}

// Handler returns the CORS-wrapped router.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader},
	})
	return c.Handler(s.router)
}

// Navigator returns the current navigator, or nil before the first load.
func (s *Server) Navigator() *query.Navigator {
	return s.nav.Load()
}

// SetNavigator swaps the served navigation.
func (s *Server) SetNavigator(n *query.Navigator) {
	s.nav.Store(n)
	metrics.SetGraphStats(n.Graph().Stats())
}

// NavigatorOptions returns the options every served navigator is created with.
func (s *Server) NavigatorOptions() []query.NavigatorOption {
	return append(s.cfg.NavigatorOptions(),
		query.WithLogger(s.logger.Named("query")),
		query.WithObserver(metrics.ObserveSearch))
}

// Load compiles a venue directory or reads a snapshot and starts serving it.
func (s *Server) Load(ctx context.Context, path string) error {
	start := time.Now()
	n, err := query.LoadAndQuery(ctx, path, s.cfg.BuildOptions(), s.NavigatorOptions()...)
	if err != nil {
		return err
	}
	s.SetNavigator(n)
	s.logger.Info("Navigation swapped in", zap.String("source", path), zap.Duration("took", time.Since(start)))
	return nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.cfg.Server.Addr,
		Handler:     s.Handler(),
		ReadTimeout: s.cfg.GetReadTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	<-errCh
	s.logger.Info("Server stopped")
	return nil
}
