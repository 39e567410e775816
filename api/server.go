// Package api serves estimates over HTTP. It decodes the plan, hands it to
// the estimator and serializes the report; it holds no pricing logic.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/estimator"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/plan"
)

// DefaultMaxBodyBytes limits the plan size accepted by POST /estimate
const DefaultMaxBodyBytes = 32 << 20

// Estimator is the part of the estimator the server needs
type Estimator interface {
	EstimatePlan(ctx context.Context, doc *plan.Document, detailed bool) (*estimator.Report, error)
}

// Server is the API server
type Server struct {
	estimator Estimator
	mux       *http.ServeMux
	version   string
	logger    *zap.Logger
	maxBody   int64
	metrics   *metrics
	newID     func() string
	now       func() time.Time
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxBodyBytes limits the accepted plan size
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithRequestIDs replaces the X-Request-ID generator
func WithRequestIDs(fn func() string) Option {
	return func(s *Server) { s.newID = fn }
}

// NewServer creates a new API server
func NewServer(est Estimator, version string, opts ...Option) *Server {
	s := &Server{
		estimator: est,
		mux:       http.NewServeMux(),
		version:   version,
		logger:    zap.NewNop(),
		maxBody:   DefaultMaxBodyBytes,
		metrics:   newMetrics(),
		newID:     uuid.NewString,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.Handle("POST /estimate", s.instrument("/estimate", s.handleEstimate))
	s.mux.Handle("GET /health", s.instrument("/health", s.handleHealth))
	s.mux.Handle("GET /version", s.instrument("/version", s.handleVersion))
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then drains open
// requests for up to shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// instrument assigns a request id and records request metrics under route
func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()

		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = s.newID()
		}
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r.WithContext(withRequestID(r.Context(), id)))

		elapsed := s.now().Sub(start)
		s.metrics.observe(route, rec.status, elapsed)
		s.logger.Debug("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed))
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

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id assigned to the request carried by ctx
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
