// Package adapters wraps concrete servers as shutdown.Server.
package adapters

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"
)

const readHeaderTimeout = 5 * time.Second

var errNoServer = errors.New("http adapter: no server")

// HTTP adapts an *http.Server. Serve binds the listener itself unless one
// was supplied with WithListener.
type HTTP struct {
	name string
	srv  *http.Server

	mu        sync.Mutex
	lis       net.Listener
	bound     chan struct{}
	boundOnce sync.Once
}

// NewHTTP returns an adapter serving h on addr.
func NewHTTP(name, addr string, h http.Handler) *HTTP {
	return FromServer(name, &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
	})
}

// FromServer adapts a preconfigured server.
func FromServer(name string, srv *http.Server) *HTTP {
	if name == "" {
		name = "http"
	}
	return &HTTP{name: name, srv: srv, bound: make(chan struct{})}
}

// WithListener makes Serve use l instead of listening on the server address.
func (h *HTTP) WithListener(l net.Listener) *HTTP {
	h.mu.Lock()
	h.lis = l
	h.mu.Unlock()
	return h
}

func (h *HTTP) Name() string { return h.name }

// Bound is closed once Serve holds a listener.
func (h *HTTP) Bound() <-chan struct{} { return h.bound }

// Addr is the listener address once bound, the configured address before.
func (h *HTTP) Addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.lis != nil {
		return h.lis.Addr().String()
	}
	if h.srv == nil {
		return ""
	}
	return h.srv.Addr
}

// Serve blocks until ctx is done or the server exits. Request contexts
// derive from ctx.
func (h *HTTP) Serve(ctx context.Context) error {
	if h.srv == nil {
		return errNoServer
	}
	lis, err := h.listener(ctx)
	if err != nil {
		return err
	}
	h.srv.BaseContext = func(net.Listener) context.Context { return ctx }
	h.boundOnce.Do(func() { close(h.bound) })

	errCh := make(chan error, 1)
	go func() { errCh <- h.srv.Serve(lis) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (h *HTTP) listener(ctx context.Context) (net.Listener, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.lis != nil {
		return h.lis, nil
	}
	addr := h.srv.Addr
	if addr == "" {
		addr = ":http"
	}
	var lc net.ListenConfig
	lis, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	h.lis = lis
	return lis, nil
}

func (h *HTTP) GracefulStopWithTimeout(ctx context.Context) error {
	if h.srv == nil {
		return errNoServer
	}
	return h.srv.Shutdown(ctx)
}

func (h *HTTP) ForceStop() {
	if h.srv != nil {
		_ = h.srv.Close()
	}
}
