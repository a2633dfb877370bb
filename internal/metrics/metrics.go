package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "parley"

// Metrics holds the collectors exported on /metrics. A nil *Metrics is
// valid and records nothing, which keeps services usable in tests.
type Metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	passphrases *prometheus.CounterVec
	words       prometheus.Histogram
	features    *prometheus.CounterVec
}

// New creates a Metrics with its own registry, including Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		passphrases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passphrases_total",
			Help:      "Passphrase generation attempts by result.",
		}, []string{"result"}),
		words: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "passphrase_words",
			Help:      "Word count of generated passphrases.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 8, 12, 16, 32, 64},
		}),
		features: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "room_features_total",
			Help:      "Room features selected in encoded queries.",
		}, []string{"feature"}),
	}
	reg.MustRegister(m.requests, m.duration, m.passphrases, m.words, m.features)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObservePassphrase records a generated passphrase of the given word count.
func (m *Metrics) ObservePassphrase(words int) {
	if m == nil {
		return
	}
	m.passphrases.WithLabelValues("generated").Inc()
	m.words.Observe(float64(words))
}

// ObserveNoPassphrase records a request that produced no passphrase.
func (m *Metrics) ObserveNoPassphrase() {
	if m == nil {
		return
	}
	m.passphrases.WithLabelValues("empty").Inc()
}

// ObserveFeature records that feature was enabled in an encoded query.
func (m *Metrics) ObserveFeature(feature string) {
	if m == nil {
		return
	}
	m.features.WithLabelValues(feature).Inc()
}
