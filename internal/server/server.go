package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nutriplan/internal/handlers"
	applog "nutriplan/internal/log"
)

const (
	defaultSessionLifetime = 12 * time.Hour
	defaultCookieName      = "nutriplan_session"
	// AI drafts can take well over a minute.
	defaultWriteTimeout = 2 * time.Minute
	shutdownTimeout     = 5 * time.Second
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr         string
	Session      SessionConfig
	Database     *gorm.DB
	Planning     handlers.Planning
	WriteTimeout time.Duration
}

// SessionConfig controls session behavior for the HTTP server.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// Server wraps the http.Server that serves the planner UI and JSON API.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New configures the handler dependencies and builds the handler chain:
// request logging, then sessions, then routing.
func New(cfg Config) (*Server, error) {
	sessionCfg := cfg.Session
	if sessionCfg.Lifetime <= 0 {
		sessionCfg.Lifetime = defaultSessionLifetime
	}
	if strings.TrimSpace(sessionCfg.CookieName) == "" {
		sessionCfg.CookieName = defaultCookieName
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = sessionCfg.Lifetime
	sessionManager.Cookie.Name = sessionCfg.CookieName
	sessionManager.Cookie.Domain = sessionCfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = sessionCfg.CookieSecure

	handlers.Configure(sessionManager, cfg.Database)
	handlers.ConfigurePlanning(cfg.Planning)

	applog.Debug(context.Background(), "server configured",
		"addr", cfg.Addr,
		"cookieName", sessionCfg.CookieName,
		"cookieSecure", sessionCfg.CookieSecure,
		"sessionLifetime", sessionCfg.Lifetime.String(),
		"aiEnabled", cfg.Planning.Drafter != nil,
	)

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           logRequests(sessionManager.LoadAndSave(newRouter())),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       2 * time.Minute,
		},
	}, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests tags every request with a request id and logs its outcome.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := applog.WithAttrs(r.Context(), "request_id", requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		level := applog.Debug
		if rec.status >= http.StatusInternalServerError {
			level = applog.Error
		}
		level(ctx, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(started).String(),
		)
	})
}
