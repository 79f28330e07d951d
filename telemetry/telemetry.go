package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/armon/go-metrics"
	prometheusMetrics "github.com/armon/go-metrics/prometheus"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
	"gopkg.in/DataDog/dd-trace-go.v1/profiler"
)

const serviceName = "star-craft-relay"

type TelemetryConfig struct {
	PrometheusAddr string        `json:"prometheusAddr"` // empty means disabled otherwise something like 0.0.0.0:5001
	DataDogAddr    string        `json:"dataDogAddr"`    // empty means disabled otherwise something like localhost:8126
	PullTime       time.Duration `json:"pullTime"`
}

// Telemetry holds the config details for metric services
type Telemetry struct {
	prometheusServer *http.Server
	dataDogStarted   bool
	config           TelemetryConfig
	logger           hclog.Logger
}

func NewTelemetry(config TelemetryConfig, logger hclog.Logger) *Telemetry {
	return &Telemetry{
		config: config,
		logger: logger,
	}
}

func (t *Telemetry) Start() error {
	if t.config.PrometheusAddr != "" {
		sink, err := prometheusMetrics.NewPrometheusSink()
		if err != nil {
			return fmt.Errorf("failed to create prometheus sink: %w", err)
		}

		metricsConfig := metrics.DefaultConfig(serviceName)
		metricsConfig.EnableHostname = false

		if _, err := metrics.NewGlobal(metricsConfig, sink); err != nil {
			return fmt.Errorf("failed to set global metrics: %w", err)
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(
			prometheus.DefaultGatherer,
			promhttp.HandlerOpts{},
		))

		t.prometheusServer = &http.Server{
			Addr:              t.config.PrometheusAddr,
			Handler:           mux,
			ReadHeaderTimeout: 3 * time.Second,
		}

		go func() {
			if err := t.prometheusServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				t.logger.Error("prometheus telemetry server error", "err", err)
			}
		}()

		t.logger.Debug("Prometheus telemetry started", "addr", t.config.PrometheusAddr)
	}

	if t.config.DataDogAddr != "" {
		tracer.Start(
			tracer.WithService(serviceName),
			tracer.WithAgentAddr(t.config.DataDogAddr),
		)

		if err := profiler.Start(
			profiler.WithService(serviceName),
			profiler.WithAgentAddr(t.config.DataDogAddr),
		); err != nil {
			tracer.Stop()

			return fmt.Errorf("failed to start datadog profiler: %w", err)
		}

		t.dataDogStarted = true

		t.logger.Debug("DataDog telemetry started", "addr", t.config.DataDogAddr)
	}

	return nil
}

func (t *Telemetry) Close(ctx context.Context) error {
	var telemetryErrors []error

	if t.prometheusServer != nil {
		if err := t.prometheusServer.Shutdown(ctx); err != nil {
			telemetryErrors = append(telemetryErrors,
				fmt.Errorf("error while trying to shutdown prometheus server. err: %w", err))
		}

		t.prometheusServer = nil
	}

	if t.dataDogStarted {
		tracer.Stop()
		profiler.Stop()

		t.dataDogStarted = false
	}

	return errors.Join(telemetryErrors...)
}
