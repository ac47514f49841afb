// Package server exposes a scene session over a JSON HTTP API for browser
// renderers.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/founder-galaxy/internal/logger"
	"github.com/Faultbox/founder-galaxy/internal/scene"
)

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins []string
	CORSDebug      bool
	RateLimit      RateLimitConfig
}

// Server routes API requests to a scene session.
type Server struct {
	session *scene.Session
	opts    Options
	log     *zap.Logger
	now     func() time.Time
}

// New returns a Server for session.
func New(session *scene.Session, opts Options) *Server {
	return &Server{
		session: session,
		opts:    opts,
		log:     logger.Named("server"),
		now:     time.Now,
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/galaxy", s.handleGalaxy)
	mux.HandleFunc("GET /api/registry", s.handleRegistry)
	mux.HandleFunc("GET /api/quality", s.handleQuality)
	mux.HandleFunc("POST /api/quality/samples", s.handleSamples)
	mux.HandleFunc("POST /api/quality/probe", s.handleProbe)
	mux.HandleFunc("GET /api/interaction", s.handleInteraction)
	mux.HandleFunc("POST /api/interaction/over", s.handleOver)
	mux.HandleFunc("POST /api/interaction/out", s.handleOut)
	mux.HandleFunc("POST /api/interaction/click", s.handleClick)
	mux.HandleFunc("POST /api/interaction/close", s.handleClose)
	mux.HandleFunc("POST /api/interaction/move", s.handleMove)
	mux.HandleFunc("POST /api/mode", s.handleMode)
	mux.HandleFunc("GET /api/textures/{category}", s.handleTexture)
	return mux
}

// Handler returns the API with CORS, rate limiting and request logging.
// The rate limiter's cleanup goroutine stops when ctx is done.
func (s *Server) Handler(ctx context.Context) http.Handler {
	limiter := NewRateLimiter(ctx, s.opts.RateLimit, s.log)
	var h http.Handler = s.routes()
	h = limiter.Middleware(h)
	h = newCORS(s.opts.AllowedOrigins, s.opts.CORSDebug).Handler(h)
	return requestLogger(s.log, h)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
