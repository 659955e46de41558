package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "climate_products"

// Metrics holds the Prometheus counters, histograms, and gauges for the
// generation pipeline.
type Metrics struct {
	GenerationsConsumed prometheus.Counter
	ContractViolations  prometheus.Counter
	UnroutableDropped   prometheus.Counter
	SessionSaves        *prometheus.CounterVec // labels: outcome={success,error}
	PipelineRunning     prometheus.Gauge

	// Transmission metrics.
	ProductsTransmitted *prometheus.CounterVec // labels: channel={NWR,NWWS}
	TransmitFailures    *prometheus.CounterVec // labels: channel={NWR,NWWS}

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.GenerationsConsumed,
		m.ContractViolations,
		m.UnroutableDropped,
		m.SessionSaves,
		m.PipelineRunning,
		m.ProductsTransmitted,
		m.TransmitFailures,
		m.BatchSize,
		m.BatchProcessingDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as
// many as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		GenerationsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_consumed_total",
			Help:      "Total generation messages read from the source topic.",
		}),
		ContractViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contract_violations_total",
			Help:      "Generations rejected because their period or payload was invalid.",
		}),
		UnroutableDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unroutable_products_dropped_total",
			Help:      "Products dropped because their period type has no NWR or NWWS channel.",
		}),
		SessionSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_saves_total",
			Help:      "Session snapshot writes by outcome.",
		}, []string{"outcome"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		ProductsTransmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_transmitted_total",
			Help:      "Products written to a channel topic.",
		}, []string{"channel"}),
		TransmitFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transmit_failures_total",
			Help:      "Failed product transmissions by channel.",
		}, []string{"channel"}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of generation messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete extract-assemble-transmit cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}
