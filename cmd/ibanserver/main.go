// Command ibanserver serves the IBAN HTTP API and, on a separate listener,
// Prometheus metrics with health and readiness probes. Configuration comes
// from IBAN_* environment variables (see internal/config).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vortex-fintech/go-iban/foundation/logger"
	"github.com/vortex-fintech/go-iban/iban"
	"github.com/vortex-fintech/go-iban/internal/config"
	"github.com/vortex-fintech/go-iban/runtime/metrics"
	"github.com/vortex-fintech/go-iban/runtime/shutdown"
	"github.com/vortex-fintech/go-iban/runtime/shutdown/adapters"
	"github.com/vortex-fintech/go-iban/runtime/shutdown/prommetrics"
	"github.com/vortex-fintech/go-iban/transport/httpapi"
)

const serviceName = "ibanserver"

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.Must(serviceName, cfg.Env)
	defer log.SafeSync()

	if err := run(context.Background(), cfg, log); err != nil {
		log.Errorw("server stopped with error", "error", err)
		log.SafeSync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	reg := prometheus.NewRegistry()

	apiMetrics, err := httpapi.NewMetrics(reg)
	if err != nil {
		return err
	}
	stopMetrics, err := prommetrics.New(reg, "iban", "shutdown")
	if err != nil {
		return err
	}

	mgr := shutdown.New(shutdown.Config{
		ShutdownTimeout: cfg.ShutdownTimeout,
		HandleSignals:   true,
		Logger:          log.With("component", "shutdown"),
		Metrics:         stopMetrics,
	})

	opsHandler, _, err := metrics.New(metrics.Options{
		Registry: reg,
		Ready: func(ctx context.Context) error {
			if len(iban.Countries()) == 0 {
				return errors.New("country table is empty")
			}
			return mgr.Ready(ctx)
		},
		Log: log.With("component", "ops"),
	})
	if err != nil {
		return err
	}

	api := httpapi.New(httpapi.Options{
		Log:          log.With("component", "httpapi"),
		Metrics:      apiMetrics,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})

	for _, srv := range []*adapters.HTTP{
		adapters.NewHTTP("api", cfg.HTTPAddr, api),
		adapters.NewHTTP("ops", cfg.MetricsAddr, opsHandler),
	} {
		mgr.Add(srv)
		go logListening(ctx, log, srv)
	}

	log.Infow("starting",
		"http_addr", cfg.HTTPAddr,
		"metrics_addr", cfg.MetricsAddr,
		"env", cfg.Env,
		"countries", len(iban.Countries()),
	)
	return mgr.Run(ctx)
}

func logListening(ctx context.Context, log logger.Interface, srv *adapters.HTTP) {
	select {
	case <-srv.Bound():
		log.Infow("listening", "server", srv.Name(), "addr", srv.Addr())
	case <-ctx.Done():
	}
}
