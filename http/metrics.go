package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"strokerisk/inference"
)

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	requestDuration *prometheus.HistogramVec
	predictions     *prometheus.CounterVec
	failures        *prometheus.CounterVec
	probability     prometheus.Histogram
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "strokerisk_http_request_duration_seconds",
				Help:    "HTTP request latency by route and status",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strokerisk_predictions_total",
				Help: "Successful predictions by predicted class",
			},
			[]string{"prediction"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strokerisk_prediction_failures_total",
				Help: "Rejected prediction requests by error kind",
			},
			[]string{"kind"},
		),
		probability: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "strokerisk_predicted_probability",
				Help:    "Distribution of returned stroke probabilities",
				Buckets: prometheus.LinearBuckets(0.05, 0.05, 19),
			},
		),
	}
	registerer.MustRegister(m.requestDuration, m.predictions, m.failures, m.probability)
	return m
}

func (m *Metrics) ObservePrediction(result inference.Result) {
	if m == nil {
		return
	}
	m.predictions.WithLabelValues(strconv.Itoa(result.Prediction)).Inc()
	m.probability.Observe(result.Probability)
}

func (m *Metrics) ObserveError(err error) {
	if m == nil {
		return
	}
	kind := string(inference.KindOf(err))
	if kind == "" {
		kind = "Other"
	}
	m.failures.WithLabelValues(kind).Inc()
}

// Middleware records latency. It must run inside the mux's caller chain
// without copying the request, so r.Pattern is visible after routing.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.requestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).
			Observe(time.Since(start).Seconds())
	})
}

// RegisterMetrics exposes the registry's collectors on path.
func RegisterMetrics(mux *http.ServeMux, path string, gatherer prometheus.Gatherer) {
	mux.Handle("GET "+path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
