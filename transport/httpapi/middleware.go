package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	ferrors "github.com/vortex-fintech/go-iban/foundation/errors"
	"github.com/vortex-fintech/go-iban/foundation/logger"
	"github.com/vortex-fintech/go-iban/runtime/metrics"
)

const (
	HeaderRequestID = "X-Request-ID"

	maxRequestIDLen = 128
)

// withRequestID propagates a sane incoming X-Request-ID or generates one,
// echoes it on the response and stores it in the request context.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderRequestID))
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(logger.ContextWithRequestID(r.Context(), id)))
	})
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// withRecover turns a handler panic into a 500 ErrorResponse.
func withRecover(log logger.Interface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.ErrorwCtx(r.Context(), "handler panic", "path", r.URL.Path, "panic", panicString(rec))
				ferrors.Internal().ToHTTP(w)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func panicString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case error:
		return t.Error()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// withAccessLog logs and times every request under its route pattern.
func withAccessLog(log logger.Interface, m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &metrics.StatusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)

			route := routePattern(r)
			elapsed := time.Since(start)
			m.observeRequest(route, sw.Status(), elapsed)

			kv := []any{"route", route, "method", r.Method, "status", sw.Status(), "duration", elapsed}
			if sw.Status() >= http.StatusInternalServerError {
				log.ErrorwCtx(r.Context(), "request", kv...)
				return
			}
			log.InfowCtx(r.Context(), "request", kv...)
		})
	}
}

// routePattern is the matched chi pattern, available once routing is done.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
