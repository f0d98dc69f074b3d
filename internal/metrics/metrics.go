// Package metrics provides Prometheus collectors for the short link service.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shortlinks"

// Resolution outcomes.
const (
	OutcomeRedirect    = "redirect"
	OutcomeInvalidCode = "invalid_code"
	OutcomeNotFound    = "not_found"
	OutcomeStoreError  = "store_error"
)

// Issuance results.
const (
	IssueResultExisting  = "existing"
	IssueResultCreated   = "created"
	IssueResultRaceLost  = "race_lost"
	IssueResultInvalid   = "invalid"
	IssueResultStoreFail = "store_error"
)

// Metrics holds the collectors on a private registry.
type Metrics struct {
	Registry      *prometheus.Registry
	Resolutions   *prometheus.CounterVec
	Issuances     *prometheus.CounterVec
	ClickFailures *prometheus.CounterVec
	CodeRetries   prometheus.Counter
	Responses     *prometheus.CounterVec
	Duration      *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{Registry: reg}
	m.Resolutions = m.registerCounter("resolutions_total", "Short code resolutions by outcome", []string{"outcome"})
	m.Issuances = m.registerCounter("issuances_total", "Short link issuance requests by result", []string{"result"})
	m.ClickFailures = m.registerCounter("click_failures_total", "Click increments that failed", []string{"sink"})
	m.CodeRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "code_collisions_total",
		Help:      "Generated short codes that collided with an existing one",
	})
	reg.MustRegister(m.CodeRetries)
	m.Responses = m.registerCounter("http_responses_total", "HTTP responses by method and status class", []string{"method", "class"})
	m.Duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
	reg.MustRegister(m.Duration)
	return m
}

func (m *Metrics) registerCounter(name string, help string, labels []string) *prometheus.CounterVec {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// Resolved counts a resolution outcome; nil receivers are ignored.
func (m *Metrics) Resolved(outcome string) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(outcome).Inc()
}

// Issued counts an issuance result.
func (m *Metrics) Issued(result string) {
	if m == nil {
		return
	}
	m.Issuances.WithLabelValues(result).Inc()
}

// ClickFailed counts a failed click increment for sink.
func (m *Metrics) ClickFailed(sink string) {
	if m == nil {
		return
	}
	m.ClickFailures.WithLabelValues(sink).Inc()
}

// CodeCollided counts a short code collision.
func (m *Metrics) CodeCollided() {
	if m == nil {
		return
	}
	m.CodeRetries.Inc()
}

// ObserveResponse records a response status and its duration in seconds.
func (m *Metrics) ObserveResponse(method string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.Responses.WithLabelValues(method, StatusClass(status)).Inc()
	m.Duration.WithLabelValues(method).Observe(seconds)
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// StatusClass maps 302 to "3xx".
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
