// Package server exposes the practice session as a local JSON API.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/felixgeelhaar/fortify/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/mates/internal/gamification"
	"github.com/abhisek/mates/internal/logging"
	"github.com/abhisek/mates/internal/session"
)

// DefaultAddr keeps the server on loopback; it serves a single learner.
const DefaultAddr = "127.0.0.1:8787"

// DefaultRatePerMinute bounds generation and evaluation calls per client.
const DefaultRatePerMinute = 30

// Config holds server settings.
type Config struct {
	Addr           string
	RatePerMinute  int
	AllowedOrigins []string // empty allows loopback origins only
}

// Server is the HTTP front-end of a practice session.
type Server struct {
	cfg     Config
	session *session.Service
	tracker *gamification.Tracker
	limiter ratelimit.RateLimiter
	router  chi.Router
}

// New creates a Server.
func New(cfg Config, svc *session.Service, tracker *gamification.Tracker) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = DefaultRatePerMinute
	}

	s := &Server{
		cfg:     cfg,
		session: svc,
		tracker: tracker,
		limiter: ratelimit.New(&ratelimit.Config{
			Rate:     cfg.RatePerMinute,
			Burst:    cfg.RatePerMinute,
			Interval: time.Minute,
		}),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors(s.cfg.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/categories", s.handleCategories)

		r.Group(func(r chi.Router) {
			r.Use(s.rateLimit)
			r.Post("/exercises", s.handleCreateExercise)
			r.Post("/evaluations", s.handleEvaluate)
		})

		r.Get("/progress", s.handleGetProgress)
		r.Put("/progress/nickname", s.handleSetNickname)
		r.Delete("/progress", s.handleResetProgress)
		r.Get("/summary", s.handleSummary)
	})

	s.router = r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger.WithField("addr", ln.Addr().String()).Info("server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if serveErr := <-errCh; !errors.Is(serveErr, http.ErrServerClosed) && err == nil {
		err = serveErr
	}
	return err
}

// Close releases the rate limiter.
func (s *Server) Close() error {
	return s.limiter.Close()
}
