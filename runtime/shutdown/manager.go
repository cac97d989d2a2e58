// Package shutdown runs a set of servers under one errgroup and stops them
// together, gracefully first and forcibly once the shutdown budget is spent.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vortex-fintech/go-iban/foundation/logger"
)

// Grace period Run waits for Serve calls to return after Stop.
const serveExitSlack = 2 * time.Second

// Server is a long-running listener managed by Manager.
type Server interface {
	Serve(ctx context.Context) error
	GracefulStopWithTimeout(ctx context.Context) error
	ForceStop()
	Name() string
}

// Metrics collects shutdown statistics. prommetrics.PromMetrics implements it.
type Metrics interface {
	IncStopTotal(result string)
	ObserveGracefulDuration(d time.Duration)
	IncServeError(name string)
	IncServerStopResult(name, result string)
}

type Config struct {
	// ShutdownTimeout bounds the whole graceful stop. Zero force-stops at once.
	ShutdownTimeout time.Duration

	// HandleSignals turns SIGINT and SIGTERM into a graceful stop.
	HandleSignals bool

	// IsNormalError reports Serve errors expected during shutdown.
	// Default: DefaultIsNormalErr.
	IsNormalError func(error) bool

	// Logger defaults to a no-op logger.
	Logger logger.Interface

	Metrics Metrics
}

type Manager struct {
	cfg     Config
	mu      sync.Mutex
	servers []Server
	stopped bool
	// draining is set once Stop begins; readiness probes report it.
	draining atomic.Bool
}

func New(cfg Config) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.IsNormalError == nil {
		cfg.IsNormalError = DefaultIsNormalErr
	}
	return &Manager{cfg: cfg}
}

// Add registers a server. Nil servers are ignored. Servers added after Run
// has started are not served.
func (m *Manager) Add(s Server) {
	if s == nil {
		return
	}
	m.mu.Lock()
	m.servers = append(m.servers, s)
	m.mu.Unlock()
}

// Draining reports whether Stop has been initiated.
func (m *Manager) Draining() bool { return m.draining.Load() }

// Ready is a readiness check for runtime/metrics: it fails once the manager
// is draining.
func (m *Manager) Ready(context.Context) error {
	if m.Draining() {
		return errors.New("shutting down")
	}
	return nil
}

func (m *Manager) snapshot() []Server {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Server(nil), m.servers...)
}

// Run serves every registered server and blocks until ctx is done, a signal
// arrives (HandleSignals) or any server exits. It then stops all servers and
// returns the first abnormal Serve error, or nil.
func (m *Manager) Run(ctx context.Context) error {
	if m.cfg.HandleSignals {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
	}

	log := m.cfg.Logger
	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range m.snapshot() {
		g.Go(func() error {
			name := safeName(srv)
			log.Infow("serve start", "server", name)
			err := srv.Serve(gctx)
			if err != nil && !m.cfg.IsNormalError(err) && gctx.Err() == nil {
				log.Errorw("serve error", "server", name, "error", err)
				if m.cfg.Metrics != nil {
					m.cfg.Metrics.IncServeError(name)
				}
				return fmt.Errorf("%s: %w", name, err)
			}
			log.Infow("serve stop", "server", name)
			return nil
		})
	}

	waitCh := make(chan error, 1)
	go func() { waitCh <- g.Wait() }()

	var (
		groupDone bool
		groupErr  error
	)
	select {
	case <-ctx.Done():
		log.Infow("context done, starting graceful stop")
	case groupErr = <-waitCh:
		groupDone = true
		if groupErr != nil {
			log.Warnw("server failed, starting graceful stop", "error", groupErr)
		} else {
			log.Infow("servers exited, starting graceful stop")
		}
	}

	m.Stop()

	if groupDone {
		return groupErr
	}

	select {
	case err := <-waitCh:
		return err
	case <-time.After(m.cfg.ShutdownTimeout + serveExitSlack):
		return fmt.Errorf("shutdown: servers still running %s after stop", m.cfg.ShutdownTimeout+serveExitSlack)
	}
}

// Stop gracefully stops every server within ShutdownTimeout, force-stopping
// the ones that fail or overrun. Calls after the first are no-ops.
func (m *Manager) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	m.mu.Unlock()
	m.draining.Store(true)

	log := m.cfg.Logger
	started := time.Now()
	var forcedAny atomic.Bool

	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.ShutdownTimeout)
	defer cancel()

	var g errgroup.Group
	for _, srv := range m.snapshot() {
		g.Go(func() error {
			name := safeName(srv)
			result := "success"

			graceDone := make(chan error, 1)
			go func() { graceDone <- srv.GracefulStopWithTimeout(ctx) }()

			select {
			case err := <-graceDone:
				if err != nil {
					log.Warnw("graceful stop failed, forcing", "server", name, "error", err)
					result = "force"
				}
			case <-ctx.Done():
				log.Warnw("graceful stop timed out, forcing", "server", name)
				result = "force"
			}

			if result == "force" {
				srv.ForceStop()
				forcedAny.Store(true)
			} else {
				log.Infow("graceful stop done", "server", name)
			}
			if m.cfg.Metrics != nil {
				m.cfg.Metrics.IncServerStopResult(name, result)
			}
			return nil
		})
	}
	_ = g.Wait()

	if m.cfg.Metrics != nil {
		m.cfg.Metrics.ObserveGracefulDuration(time.Since(started))
		result := "success"
		if forcedAny.Load() {
			result = "force"
		}
		m.cfg.Metrics.IncStopTotal(result)
	}
}

// DefaultIsNormalErr reports whether err is an expected result of stopping
// a server: nil, http.ErrServerClosed, context cancellation or a closed
// listener.
func DefaultIsNormalErr(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, http.ErrServerClosed),
		errors.Is(err, context.Canceled):
		return true
	}
	return strings.Contains(err.Error(), "use of closed network connection")
}

func safeName(s Server) string {
	if n := s.Name(); n != "" {
		return n
	}
	return "server"
}
