package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const resultOK = "ok"

// Metrics holds the API collectors. A nil *Metrics records nothing.
type Metrics struct {
	parse    *prometheus.CounterVec
	validate *prometheus.CounterVec
	requests *prometheus.HistogramVec
}

// NewMetrics registers:
//
//	iban_parse_total{result}                          result: ok or a parse reason
//	iban_validate_total{result}                       result: ok or a validation reason
//	iban_http_request_duration_seconds{route,status}
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, errors.New("httpapi: registerer is nil")
	}

	var (
		m   Metrics
		err error
	)
	if m.parse, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "iban", Name: "parse_total",
		Help: "IBAN parse attempts by result.",
	}, []string{"result"})); err != nil {
		return nil, err
	}
	if m.validate, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "iban", Name: "validate_total",
		Help: "Validation of parsed IBANs by result.",
	}, []string{"result"})); err != nil {
		return nil, err
	}
	if m.requests, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "iban", Subsystem: "http", Name: "request_duration_seconds",
		Help:    "API request latency by route and status.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
	}, []string{"route", "status"})); err != nil {
		return nil, err
	}
	return &m, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("httpapi: register collector: %w", err)
	}
	return c, nil
}

func (m *Metrics) observeParse(result string) {
	if m == nil {
		return
	}
	m.parse.WithLabelValues(result).Inc()
}

func (m *Metrics) observeValidate(result string) {
	if m == nil {
		return
	}
	m.validate.WithLabelValues(result).Inc()
}

func (m *Metrics) observeRequest(route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}
