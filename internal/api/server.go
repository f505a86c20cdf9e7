// Package api serves one aggregated bundle over a read-only JSON HTTP API.
//
// The server holds the Report produced at startup for its whole lifetime. It
// never scrapes on its own, so every response reflects the same run.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pfrederiksen/edison-soccer/internal/aggregator"
	"github.com/pfrederiksen/edison-soccer/internal/logger"
)

const apiPrefix = "/api/v1"

// Server represents the REST API server
type Server struct {
	report  *aggregator.Report
	metrics *logger.Metrics
	log     *logger.Logger
	router  *mux.Router
	server  *http.Server
}

// NewServer creates a new REST API server over the given report
func NewServer(addr string, report *aggregator.Report, metrics *logger.Metrics, log *logger.Logger) *Server {
	if metrics == nil {
		metrics = logger.NewMetrics()
	}
	if log == nil {
		log = logger.Default()
	}

	s := &Server{
		report:  report,
		metrics: metrics,
		log:     log,
		router:  mux.NewRouter(),
	}

	// Apply middleware
	s.router.Use(s.recoveryMiddleware)
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Full paths on the root router so a method mismatch answers 405
	s.router.HandleFunc(apiPrefix+"/bundle", s.handleBundle).Methods("GET")
	s.router.HandleFunc(apiPrefix+"/status", s.handleStatus).Methods("GET")
	s.router.HandleFunc(apiPrefix+"/summary", s.handleSummary).Methods("GET")
	s.router.HandleFunc(apiPrefix+"/metrics", s.handleMetrics).Methods("GET")
	s.router.HandleFunc(apiPrefix+"/players/{name}", s.handlePlayer).Methods("GET")
	s.router.HandleFunc(apiPrefix+"/team/top-scorers", s.handleTopScorers).Methods("GET")
	s.router.HandleFunc(apiPrefix+"/opponents/{name}", s.handleOpponent).Methods("GET")

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the routed handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the REST API server
func (s *Server) Start() error {
	s.log.Info("api listening", logger.Fields{"addr": s.server.Addr})
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
