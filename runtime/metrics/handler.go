// Package metrics serves the operational endpoints of a service on their own
// listener: Prometheus exposition, liveness and readiness.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vortex-fintech/go-iban/foundation/logger"
)

const (
	readyCheckConcurrencyLimit = 64
	defaultReadyTimeout        = 500 * time.Millisecond
)

type Options struct {
	// Registry defaults to a fresh registry. Pass the one the service
	// registers its own collectors on.
	Registry *prometheus.Registry
	Register func(reg prometheus.Registerer) error

	// Ready must honour ctx.Done(); stuck checks hold a slot of
	// readyCheckConcurrencyLimit until they return.
	Ready func(ctx context.Context) error

	MetricsPath string
	HealthPath  string
	ReadyPath   string

	ReadyTimeout time.Duration

	// Log receives one entry per request. Nil disables request logging.
	Log logger.Interface

	DisableBuildInfo bool
}

func registerCollector(reg prometheus.Registerer, c prometheus.Collector, name string) error {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return nil
		}
		return fmt.Errorf("metrics: register %s: %w", name, err)
	}
	return nil
}

// New builds the operational mux. Registration failures are returned; an
// already registered collector is not an error.
func New(opts Options) (http.Handler, *prometheus.Registry, error) {
	metricsPath := normalizePath(opts.MetricsPath, "/metrics")
	healthPath := normalizePath(opts.HealthPath, "/health")
	readyPath := normalizePath(opts.ReadyPath, "/ready")

	readyTimeout := opts.ReadyTimeout
	if readyTimeout <= 0 {
		readyTimeout = defaultReadyTimeout
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	if err := registerCollector(reg, collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), "process"); err != nil {
		return nil, nil, err
	}
	if err := registerCollector(reg, collectors.NewGoCollector(), "go"); err != nil {
		return nil, nil, err
	}
	if !opts.DisableBuildInfo {
		if err := registerCollector(reg, collectors.NewBuildInfoCollector(), "build_info"); err != nil {
			return nil, nil, err
		}
	}
	if opts.Register != nil {
		if err := opts.Register(reg); err != nil {
			return nil, nil, fmt.Errorf("metrics: register custom: %w", err)
		}
	}

	promHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
	sem := make(chan struct{}, readyCheckConcurrencyLimit)

	mux := http.NewServeMux()
	mux.Handle(metricsPath, withLog(readOnly(promHandler), opts.Log))
	mux.Handle(healthPath, withLog(readOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, r.Method == http.MethodHead)
	})), opts.Log))
	mux.Handle(readyPath, withLog(readOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runReadyCheck(w, r, opts.Ready, readyTimeout, sem)
	})), opts.Log))

	return mux, reg, nil
}

// readOnly allows GET and HEAD and disables caching.
func readOnly(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			writeError(w, "method not allowed", http.StatusMethodNotAllowed, r.Method == http.MethodHead)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func runReadyCheck(w http.ResponseWriter, r *http.Request, check func(context.Context) error, timeout time.Duration, sem chan struct{}) {
	headOnly := r.Method == http.MethodHead
	if check == nil {
		writeOK(w, headOnly)
		return
	}

	select {
	case sem <- struct{}{}:
	default:
		w.Header().Set("Retry-After", "1")
		writeError(w, "ready check busy", http.StatusServiceUnavailable, headOnly)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() { <-sem }()
		done <- check(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			writeError(w, err.Error(), http.StatusServiceUnavailable, headOnly)
			return
		}
		writeOK(w, headOnly)
	case <-ctx.Done():
		w.Header().Set("Retry-After", "1")
		writeError(w, "ready check timeout", http.StatusServiceUnavailable, headOnly)
	}
}

func normalizePath(p, def string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		p = def
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return p
}

func writeOK(w http.ResponseWriter, headOnly bool) {
	w.WriteHeader(http.StatusOK)
	if !headOnly {
		_, _ = w.Write([]byte("OK"))
	}
}

func writeError(w http.ResponseWriter, msg string, status int, headOnly bool) {
	if headOnly {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		return
	}
	http.Error(w, msg, status)
}

func withLog(h http.Handler, log logger.Interface) http.Handler {
	if log == nil {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &StatusWriter{ResponseWriter: w}
		h.ServeHTTP(sw, r)

		kv := []any{"path", r.URL.Path, "method", r.Method, "status", sw.Status(), "duration", time.Since(start)}
		switch {
		case sw.Status() >= http.StatusInternalServerError:
			log.Errorw("ops request", kv...)
		case sw.Status() >= http.StatusBadRequest:
			log.Warnw("ops request", kv...)
		default:
			log.Debugw("ops request", kv...)
		}
	})
}

// StatusWriter records the status code written through it. It is shared with
// the API transport for access logging.
type StatusWriter struct {
	http.ResponseWriter
	status int
}

// Status returns the written status, 200 if the handler never called
// WriteHeader.
func (s *StatusWriter) Status() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

func (s *StatusWriter) WriteHeader(statusCode int) {
	if s.status == 0 {
		s.status = statusCode
	}
	s.ResponseWriter.WriteHeader(statusCode)
}

func (s *StatusWriter) Write(p []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(p)
}

func (s *StatusWriter) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *StatusWriter) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
