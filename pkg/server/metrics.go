package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts requests per kind (complete, batch, action, decode) on a private
// registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordtrie_requests_total",
			Help: "Requests handled, by kind.",
		}, []string{"kind"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordtrie_request_errors_total",
			Help: "Requests answered with an error, by kind.",
		}, []string{"kind"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wordtrie_request_duration_seconds",
			Help:    "Time spent answering requests, by kind.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.requests, m.errors, m.latency)
	return m
}

func (m *Metrics) observe(kind string, elapsed time.Duration) {
	m.requests.WithLabelValues(kind).Inc()
	m.latency.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *Metrics) failed(kind string) {
	m.requests.WithLabelValues(kind).Inc()
	m.errors.WithLabelValues(kind).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr in the background. The returned server can
// be shut down by the caller.
func (m *Metrics) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Metrics listener on %s stopped: %v", addr, err)
		}
	}()
	log.Debugf("Serving metrics on %s/metrics", addr)
	return srv
}
