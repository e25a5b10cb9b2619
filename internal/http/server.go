package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"costmanager/internal/audit"
	"costmanager/internal/core"
	"costmanager/internal/log"
	"costmanager/internal/reports"
	"costmanager/internal/services"
)

// LogReader supplies the stored audit records for the admin service.
type LogReader interface {
	ListAccessLogs(ctx context.Context) ([]core.AccessLog, error)
}

// Server hosts one of the REST services. The same type backs the costs,
// users and admin processes; each constructor wires only the routes and
// dependencies its service needs.
type Server struct {
	http.Server

	logger   *log.Logger
	recorder audit.Recorder

	costs  *services.CostService
	engine *reports.Engine
	users  *services.UserService
	team   []string
	logs   LogReader

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

func newServer(addr string, recorder audit.Recorder, logger *log.Logger) (*Server, *http.ServeMux) {
	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:           addr,
			Handler:        mux,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16, // 64KB
		},
		logger:      logger,
		recorder:    recorder,
		rateLimiter: newRateLimiter(),
	}
	mux.HandleFunc("/healthz", handleHealth)
	return s, mux
}

// NewCostsServer serves the cost ingestion and report endpoints.
func NewCostsServer(addr string, costs *services.CostService, engine *reports.Engine, recorder audit.Recorder, logger *log.Logger) *Server {
	s, mux := newServer(addr, recorder, logger)
	s.costs = costs
	s.engine = engine
	mux.HandleFunc("/api/add", s.withMiddleware(s.handleAddCost))
	mux.HandleFunc("/api/report", s.withMiddleware(s.handleReport))
	return s
}

// NewUsersServer serves the user CRUD endpoints.
func NewUsersServer(addr string, users *services.UserService, recorder audit.Recorder, logger *log.Logger) *Server {
	s, mux := newServer(addr, recorder, logger)
	s.users = users
	mux.HandleFunc("/api/add", s.withMiddleware(s.handleAddUser))
	mux.HandleFunc("/api/users", s.withMiddleware(s.handleListUsers))
	mux.HandleFunc("/api/users/", s.withMiddleware(s.handleUserByID))
	return s
}

// NewAdminServer serves the about and logs endpoints.
func NewAdminServer(addr string, team []string, logs LogReader, recorder audit.Recorder, logger *log.Logger) *Server {
	s, mux := newServer(addr, recorder, logger)
	s.team = team
	s.logs = logs
	mux.HandleFunc("/api/about", s.withMiddleware(s.handleAbout))
	mux.HandleFunc("/api/logs", s.withMiddleware(s.handleLogs))
	return s
}

// Shutdown stops the HTTP server and background cleanup exactly once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withMiddleware adds request tracing, security headers, rate limiting
// and the post-response audit hook to a handler.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := "req_" + uuid.NewString()
		ctx := context.WithValue(r.Context(), audit.RequestIDKey, requestID)
		ctx = log.WithContext(ctx, s.logger.With(log.FieldRequestID, requestID))
		r = r.WithContext(ctx)

		s.logger.InfoContext(ctx, "Request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP)

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, apiError{
				ID:      http.StatusTooManyRequests,
				Message: "Rate limit exceeded. Please try again later.",
			})
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		s.logger.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, duration.Milliseconds())

		s.auditAfterResponse(requestID, r, rw.statusCode)
	}
}

// auditAfterResponse records the completed request from its own
// goroutine. The response has already been written, so nothing here can
// affect the client; recorder failures are only logged.
func (s *Server) auditAfterResponse(requestID string, r *http.Request, status int) {
	if s.recorder == nil {
		return
	}

	entry := core.AccessLog{
		Method:    r.Method,
		URL:       r.URL.RequestURI(),
		Status:    status,
		Timestamp: time.Now(),
	}

	go func() {
		defer func() {
			if p := recover(); p != nil {
				s.logger.Error("Audit recorder panicked", "panic", p)
			}
		}()

		ctx := context.WithValue(context.Background(), audit.RequestIDKey, requestID)
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := s.recorder.Record(ctx, entry); err != nil {
			s.logger.Error("Audit record failed",
				log.FieldRequestID, requestID,
				log.FieldMethod, entry.Method,
				log.FieldPath, entry.URL,
				log.FieldError, err)
		}
	}()
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
