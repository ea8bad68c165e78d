package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
)

// PipelineMetrics tracks pipeline outcomes and provider routing. It
// implements the router's Observer so every fallback stays visible.
type PipelineMetrics struct {
	registry *prometheus.Registry

	processedTotal  *prometheus.CounterVec
	processDuration *prometheus.HistogramVec
	processInFlight prometheus.Gauge

	generateTotal    *prometheus.CounterVec
	generateDuration *prometheus.HistogramVec
	fallbackTotal    *prometheus.CounterVec
}

func NewPipelineMetrics(service string) *PipelineMetrics {
	registry := prometheus.NewRegistry()

	processedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partsdept",
			Subsystem: "pipeline",
			Name:      "emails_processed_total",
			Help:      "Total processed emails by intent and decision outcome.",
		},
		[]string{"service", "intent", "outcome"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "partsdept",
			Subsystem: "pipeline",
			Name:      "email_process_duration_seconds",
			Help:      "Email pipeline duration in seconds by decision outcome.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"service", "outcome"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "partsdept",
			Subsystem: "pipeline",
			Name:      "emails_in_flight",
			Help:      "Number of in-flight pipeline runs.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	generateTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partsdept",
			Subsystem: "llm",
			Name:      "generate_total",
			Help:      "Provider calls by provider, tier and status.",
		},
		[]string{"service", "provider", "tier", "status"},
	)
	generateDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "partsdept",
			Subsystem: "llm",
			Name:      "generate_duration_seconds",
			Help:      "Provider call duration in seconds (including retries).",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"service", "provider"},
	)
	fallbackTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partsdept",
			Subsystem: "llm",
			Name:      "provider_fallback_total",
			Help:      "Fallback transitions between providers.",
		},
		[]string{"service", "from_provider", "to_provider"},
	)

	registry.MustRegister(processedTotal, processDuration, processInFlight, generateTotal, generateDuration, fallbackTotal)

	return &PipelineMetrics{
		registry:         registry,
		processedTotal:   processedTotal,
		processDuration:  processDuration,
		processInFlight:  processInFlight,
		generateTotal:    generateTotal,
		generateDuration: generateDuration,
		fallbackTotal:    fallbackTotal,
	}
}

func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PipelineMetrics) StartEmail() {
	m.processInFlight.Inc()
}

func (m *PipelineMetrics) FinishEmail(service string, result *domain.PipelineResult, duration time.Duration, err error) {
	m.processInFlight.Dec()

	outcome := "error"
	intent := "unknown"
	if err == nil && result != nil {
		outcome = string(result.Decision.Outcome)
		intent = string(result.Classification.Intent)
	}

	m.processedTotal.WithLabelValues(service, intent, outcome).Inc()
	m.processDuration.WithLabelValues(service, outcome).Observe(duration.Seconds())
}

func (m *PipelineMetrics) GenerateObserved(provider string, tier domain.Tier, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.generateTotal.WithLabelValues("pipeline", provider, string(tier), status).Inc()
	m.generateDuration.WithLabelValues("pipeline", provider).Observe(duration.Seconds())
}

func (m *PipelineMetrics) FallbackObserved(fromProvider, toProvider string) {
	m.fallbackTotal.WithLabelValues("pipeline", fromProvider, toProvider).Inc()
}
