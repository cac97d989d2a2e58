package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vortex-fintech/go-iban/foundation/logger"
)

func get(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHandler_ExposesCustomCollectors(t *testing.T) {
	t.Parallel()

	ctr := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "iban",
		Name:      "test_total",
		Help:      "test counter",
	})

	h, reg, err := New(Options{
		Register: func(reg prometheus.Registerer) error { return reg.Register(ctr) },
	})
	require.NoError(t, err)
	require.NotNil(t, reg)
	ctr.Inc()

	rec := get(t, h, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "# HELP iban_test_total test counter")
	assert.Contains(t, body, "iban_test_total 1")
	assert.Contains(t, body, "go_goroutines")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestHandler_UsesGivenRegistry(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, got, err := New(Options{Registry: reg, DisableBuildInfo: true})
	require.NoError(t, err)
	assert.Same(t, reg, got)

	// A second handler on the same registry tolerates the runtime collectors.
	_, _, err = New(Options{Registry: reg, DisableBuildInfo: true})
	require.NoError(t, err)
}

func TestHandler_CustomRegisterError(t *testing.T) {
	t.Parallel()

	h, reg, err := New(Options{
		Register: func(prometheus.Registerer) error { return errors.New("boom") },
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Nil(t, h)
	assert.Nil(t, reg)
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	h, _, err := New(Options{})
	require.NoError(t, err)

	rec := get(t, h, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = get(t, h, http.MethodHead, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h, _, err := New(Options{})
	require.NoError(t, err)

	for _, path := range []string{"/metrics", "/health", "/ready"} {
		rec := get(t, h, http.MethodPost, path)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"), path)
	}
}

func TestHandler_ReadyCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ready    func(context.Context) error
		wantCode int
		wantBody string
	}{
		{name: "nil check", wantCode: http.StatusOK, wantBody: "OK"},
		{name: "ready", ready: func(context.Context) error { return nil }, wantCode: http.StatusOK, wantBody: "OK"},
		{name: "not ready", ready: func(context.Context) error { return errors.New("draining") }, wantCode: http.StatusServiceUnavailable, wantBody: "draining"},
		{
			name: "timeout",
			ready: func(ctx context.Context) error {
				<-ctx.Done()
				time.Sleep(10 * time.Millisecond)
				return ctx.Err()
			},
			wantCode: http.StatusServiceUnavailable,
			wantBody: "ready check timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, _, err := New(Options{Ready: tt.ready, ReadyTimeout: 20 * time.Millisecond})
			require.NoError(t, err)

			rec := get(t, h, http.MethodGet, "/ready")
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_CustomPaths(t *testing.T) {
	t.Parallel()

	h, _, err := New(Options{MetricsPath: "prom", HealthPath: " /livez ", ReadyPath: "/readyz"})
	require.NoError(t, err)

	srv := httptest.NewServer(h)
	defer srv.Close()

	for _, path := range []string{"/prom", "/livez", "/readyz"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestHandler_LogsRequests(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	h, _, err := New(Options{
		Log:   logger.FromZap(zap.New(core)),
		Ready: func(context.Context) error { return errors.New("draining") },
	})
	require.NoError(t, err)

	get(t, h, http.MethodGet, "/health")
	get(t, h, http.MethodGet, "/ready")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, "/health", entries[0].ContextMap()["path"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusServiceUnavailable, entries[1].ContextMap()["status"])
}

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/metrics", normalizePath("", "/metrics"))
	assert.Equal(t, "/metrics", normalizePath("   ", "/metrics"))
	assert.Equal(t, "/x", normalizePath("x", "/metrics"))
	assert.Equal(t, "/x", normalizePath(" /x ", "/metrics"))
}

func TestStatusWriter(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := &StatusWriter{ResponseWriter: rec}
	assert.Equal(t, http.StatusOK, sw.Status())

	sw.WriteHeader(http.StatusTeapot)
	sw.WriteHeader(http.StatusInternalServerError)
	assert.Equal(t, http.StatusTeapot, sw.Status())
	assert.Same(t, rec, sw.Unwrap())

	sw2 := &StatusWriter{ResponseWriter: httptest.NewRecorder()}
	_, _ = sw2.Write([]byte("x"))
	assert.Equal(t, http.StatusOK, sw2.Status())
	assert.True(t, strings.HasPrefix(sw2.ResponseWriter.(*httptest.ResponseRecorder).Body.String(), "x"))
}
