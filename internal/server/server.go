// Package server provides the HTTP REST API over the answer engine:
// querying, resume profile management, status, and monitoring.
package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/nareshchaudhary/career-agent/internal/config"
	"github.com/nareshchaudhary/career-agent/internal/engine"
	"github.com/nareshchaudhary/career-agent/internal/server/ratelimit"
)

// Server represents the HTTP server.
type Server struct {
	cfg        *config.Config
	eng        *engine.Engine
	sessions   *SessionManager
	monitor    *Monitor
	httpServer *http.Server

	queryLimiter  *ratelimit.Limiter
	uploadLimiter *ratelimit.Limiter
}

// New creates a new server instance over a constructed engine.
func New(cfg *config.Config, eng *engine.Engine) *Server {
	s := &Server{
		cfg:      cfg,
		eng:      eng,
		sessions: NewSessionManager(eng, time.Duration(cfg.SessionTTLSec)*time.Second, cfg.MaxSessions),
		monitor: NewMonitor(
			cfg.MonitoringMaxQueries,
			cfg.MonitoringMaxUploads,
			cfg.MonitoringMaxBuilds,
			time.Duration(cfg.MonitoringRetentionSec)*time.Second,
		),
		queryLimiter:  ratelimit.NewLimiter(cfg.RateLimitQueryPerWindow, time.Duration(cfg.RateLimitWindowSec)*time.Second),
		uploadLimiter: ratelimit.NewLimiter(cfg.RateLimitUploadPerWin, time.Duration(cfg.RateLimitWindowSec)*time.Second),
	}

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // generation calls can be slow
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler builds the route table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("POST /resume/upload", s.handleResumeUpload)
	mux.HandleFunc("GET /resume/status", s.handleResumeStatus)
	mux.HandleFunc("POST /resume/clear", s.handleResumeClear)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /monitoring/summary", s.handleMonitoringSummary)
	mux.HandleFunc("GET /monitoring/queries", s.handleMonitoringQueries)

	return s.withLogging(s.withCORS(s.withSecurityHeaders(mux)))
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	s.queryLimiter.Stop()
	s.uploadLimiter.Stop()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers per the configured origin list.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed := s.corsOrigin(origin); allowed != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Session-Id, X-Monitor-Key")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) corsOrigin(origin string) string {
	if len(s.cfg.CORSOrigins) == 0 {
		return "*"
	}
	if origin == "null" && s.cfg.AllowNullOrigin {
		return "null"
	}
	for _, allowed := range s.cfg.CORSOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// withSecurityHeaders sets conservative browser-facing headers.
func (s *Server) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// withLogging tags every request with an ID and logs method, path, and
// duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("request request_id=%s method=%s path=%s duration_ms=%d ip=%s",
			requestID, r.Method, r.URL.Path, time.Since(start).Milliseconds(), s.clientIP(r))
	})
}

// clientIP resolves the caller address, honoring X-Forwarded-For only when
// the deployment says the proxy chain is trusted.
func (s *Server) clientIP(r *http.Request) string {
	if s.cfg.TrustForwardedFor {
		if xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xff != "" {
			return strings.TrimSpace(strings.Split(xff, ",")[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
