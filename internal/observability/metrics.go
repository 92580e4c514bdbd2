package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsActive  prometheus.Gauge

	// Engine metrics
	PredictionsTotal    *prometheus.CounterVec
	PredictionDuration  *prometheus.HistogramVec
	ElementsScored      prometheus.Histogram
	DegradedBatchItems  prometheus.Counter
	WastedClickRatio    prometheus.Histogram
	CPCEstimatesTotal   *prometheus.CounterVec
	MatcherLookupsTotal *prometheus.CounterVec
}

// NewMetrics creates a new metrics instance with all Prometheus metrics registered
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "clickwise"
	}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_active",
				Help:      "Number of active HTTP requests",
			},
		),

		PredictionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "predictions_total",
				Help:      "Total number of prediction runs",
			},
			[]string{"status", "reliability"},
		),
		PredictionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "prediction_duration_seconds",
				Help:      "Prediction pipeline duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"kind"},
		),
		ElementsScored: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "elements_scored_per_run",
				Help:      "Number of elements scored per prediction run",
				Buckets:   []float64{1, 5, 10, 25, 50, 75, 100},
			},
		),
		DegradedBatchItems: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "degraded_batch_items_total",
				Help:      "Batch prediction items that degraded to an error result",
			},
		),
		WastedClickRatio: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "wasted_click_ratio",
				Help:      "Average wasted-click score per analysis",
				Buckets:   []float64{.01, .05, .1, .2, .3, .5, .8},
			},
		),
		CPCEstimatesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cpc_estimates_total",
				Help:      "Total number of CPC estimates",
			},
			[]string{"industry", "floored"},
		),
		MatcherLookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "matcher_lookups_total",
				Help:      "Element matcher lookups by strategy",
			},
			[]string{"strategy"},
		),
	}
}

// Handler returns the Prometheus HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordPrediction records one prediction run
func (m *Metrics) RecordPrediction(status, reliability string, elements int, duration time.Duration) {
	m.PredictionsTotal.WithLabelValues(status, reliability).Inc()
	m.PredictionDuration.WithLabelValues("single").Observe(duration.Seconds())
	if elements > 0 {
		m.ElementsScored.Observe(float64(elements))
	}
}

// RecordCPCEstimate records one CPC estimate
func (m *Metrics) RecordCPCEstimate(industry string, floored bool) {
	m.CPCEstimatesTotal.WithLabelValues(industry, strconv.FormatBool(floored)).Inc()
}
