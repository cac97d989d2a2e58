// Package prommetrics implements shutdown.Metrics on Prometheus.
package prommetrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var durationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60}

type PromMetrics struct {
	stopTotal        *prometheus.CounterVec
	serveErrors      *prometheus.CounterVec
	serverStopResult *prometheus.CounterVec
	gracefulDuration prometheus.Histogram
}

// register returns the collector actually registered: c itself, or the
// equal collector registered earlier.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("prommetrics: register collector: %w", err)
	}
	return c, nil
}

// New registers the shutdown metrics on reg:
//
//	{ns}_{sub}_graceful_stop_total{result}
//	{ns}_{sub}_server_serve_errors_total{server}
//	{ns}_{sub}_server_stop_result_total{server,result}
//	{ns}_{sub}_graceful_duration_seconds
//
// Calling New twice on one registry returns metrics bound to the same series.
func New(reg prometheus.Registerer, namespace, subsystem string) (*PromMetrics, error) {
	if reg == nil {
		return nil, errors.New("prommetrics: registerer is nil")
	}

	var (
		pm  PromMetrics
		err error
	)

	if pm.stopTotal, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem,
		Name: "graceful_stop_total", Help: "Graceful stops by result (success or force).",
	}, []string{"result"})); err != nil {
		return nil, err
	}
	if pm.serveErrors, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem,
		Name: "server_serve_errors_total", Help: "Abnormal Serve errors by server.",
	}, []string{"server"})); err != nil {
		return nil, err
	}
	if pm.serverStopResult, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem,
		Name: "server_stop_result_total", Help: "Per-server stop result.",
	}, []string{"server", "result"})); err != nil {
		return nil, err
	}
	if pm.gracefulDuration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: subsystem,
		Name:    "graceful_duration_seconds",
		Help:    "Duration of the whole graceful stop.",
		Buckets: durationBuckets,
	})); err != nil {
		return nil, err
	}

	return &pm, nil
}

func (p *PromMetrics) IncStopTotal(result string) {
	p.stopTotal.WithLabelValues(result).Inc()
}

func (p *PromMetrics) ObserveGracefulDuration(d time.Duration) {
	p.gracefulDuration.Observe(d.Seconds())
}

func (p *PromMetrics) IncServeError(name string) {
	p.serveErrors.WithLabelValues(name).Inc()
}

func (p *PromMetrics) IncServerStopResult(name, result string) {
	p.serverStopResult.WithLabelValues(name, result).Inc()
}
