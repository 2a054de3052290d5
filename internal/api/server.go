// Package api implements §6's HTTP ingress: POST /report-inspector,
// POST /mini-app/report, GET /mini-app, and an externally-callable
// GET /segment-colors wrapping the risk engine. Grounded directly on the
// teacher's internal/api/server.go: mux.NewRouter(), a cors/logging
// middleware pair, one handler per route, a shared writeErrorResponse
// helper, and a responseWriter wrapper to capture the status code for
// logging.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/freifahren/sichtungskern/internal/catalog"
	"github.com/freifahren/sichtungskern/internal/chat"
	"github.com/freifahren/sichtungskern/internal/ratelimit"
	"github.com/freifahren/sichtungskern/internal/risk"
)

// Server is the HTTP surface described in §6.
type Server struct {
	router *mux.Router
	server *http.Server
	log    zerolog.Logger

	catalog          catalog.Client
	notifier         chat.Notifier
	limiter          ratelimit.Limiter
	engine           *risk.Engine
	store            *risk.Store
	reportPassword   string
	restartPassword  string
	chatChannelID    string
	miniAppPublicURL string
}

// Config bundles Server's dependencies.
type Config struct {
	Addr             string
	Catalog          catalog.Client
	Notifier         chat.Notifier
	Limiter          ratelimit.Limiter
	Engine           *risk.Engine
	Store            *risk.Store
	ReportPassword   string
	RestartPassword  string
	ChatChannelID    string
	MiniAppPublicURL string
	Log              zerolog.Logger
}

// NewServer builds a Server and wires its routes.
func NewServer(cfg Config) *Server {
	s := &Server{
		router:           mux.NewRouter(),
		log:              cfg.Log,
		catalog:          cfg.Catalog,
		notifier:         cfg.Notifier,
		limiter:          cfg.Limiter,
		engine:           cfg.Engine,
		store:            cfg.Store,
		reportPassword:   cfg.ReportPassword,
		restartPassword:  cfg.RestartPassword,
		chatChannelID:    cfg.ChatChannelID,
		miniAppPublicURL: cfg.MiniAppPublicURL,
	}
	s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.corsMiddleware)
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/report-inspector", s.handleReportInspector).Methods("POST")
	s.router.HandleFunc("/mini-app/report", s.handleMiniAppReport).Methods("POST")
	s.router.HandleFunc("/mini-app", s.handleMiniAppForm).Methods("GET")
	s.router.HandleFunc("/segment-colors", s.handleSegmentColors).Methods("GET")
	s.router.HandleFunc("/restart", s.handleRestart).Methods("POST")
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"status": "error", "message": message})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Password")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusCapturingWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.statusCode).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

type statusCapturingWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusCapturingWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
