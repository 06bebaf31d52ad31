// Package server is the HTTP backend that stores survey submissions.
package server

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/abhisek/dqi/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Banner is the message returned by the root endpoint.
const Banner = "Data Quality Index API"

// Server routes survey API requests to a SubmissionRepo.
type Server struct {
	repo    store.SubmissionRepo
	catalog *Catalog
	log     *zap.Logger
	now     func() time.Time
	version string

	writeRate    float64
	writeBurst   int
	allowOrigins []string

	engine *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the clock used to date submissions.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithVersion sets the version reported by the root endpoint.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithWriteLimit bounds submissions per client IP.
func WithWriteLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		s.writeRate = perSecond
		s.writeBurst = burst
	}
}

// WithAllowOrigins sets the CORS origins. "*" allows any origin.
func WithAllowOrigins(origins ...string) Option {
	return func(s *Server) { s.allowOrigins = origins }
}

// New builds a Server and its routes.
func New(repo store.SubmissionRepo, catalog *Catalog, opts ...Option) *Server {
	s := &Server{
		repo:         repo,
		catalog:      catalog,
		log:          zap.NewNop(),
		now:          time.Now,
		version:      "(devel)",
		writeRate:    1,
		writeBurst:   10,
		allowOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(s.log), Recovery(s.log))
	r.Use(cors.New(s.corsConfig()))
	_ = r.SetTrustedProxies(nil)

	writes := NewIPRateLimiter(s.writeRate, s.writeBurst, 5*time.Minute)

	r.GET("/", s.root)
	r.POST("/submissions/", RateLimitByIP(writes), s.createSubmission)
	r.GET("/submissions", s.listSubmissions)
	r.GET("/submissions/:emp_id", s.getSubmission)
	r.GET("/export/:emp_id", s.exportSubmission)
	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(s.allowOrigins) == 0 || slices.Contains(s.allowOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.allowOrigins
	}
	return cfg
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("server listening", zap.String("addr", addr), zap.String("version", s.version))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
