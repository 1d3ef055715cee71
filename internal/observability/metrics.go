package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// Evaluation counters and provider latency, exported on /metrics.
var (
	EvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credit_evaluations_total",
		Help: "Evaluations by outcome and reason code.",
	}, []string{"outcome", "reason"})

	EvaluationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credit_evaluation_failures_total",
		Help: "Fatal evaluation failures by kind.",
	}, []string{"kind"})

	ProviderRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "credit_provider_request_duration_seconds",
		Help:    "External provider round-trip time.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})
)

// InitMetrics initializes the Prometheus metrics exporter.
// Returns the MeterProvider and an HTTP handler for the /metrics endpoint.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	handler := promhttp.Handler()

	return provider, handler, nil
}
