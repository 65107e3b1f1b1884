package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nao1215/phishscan/internal/model"
)

// metricsNamespace prefixes every metric name.
const metricsNamespace = "phishscan"

// Metrics holds the Prometheus collectors of a Server.
type Metrics struct {
	registry *prometheus.Registry

	// scans counts successful analyses by verdict.
	scans *prometheus.CounterVec

	// scanErrors counts analyses that failed to parse.
	scanErrors prometheus.Counter

	// riskScore observes the clamped risk score of each analysis.
	riskScore prometheus.Histogram

	// requests counts HTTP requests by method, route and status code.
	requests *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them, together with the
// Go runtime and process collectors, on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "scans_total",
			Help:      "Number of analyzed URLs by verdict.",
		}, []string{"verdict"}),
		scanErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "scan_errors_total",
			Help:      "Number of URLs that could not be analyzed.",
		}),
		riskScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "risk_score",
			Help:      "Distribution of clamped risk scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
	}

	m.registry.MustRegister(
		m.scans,
		m.scanErrors,
		m.riskScore,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Expose every verdict from the first scrape, even before any scan.
	for _, v := range []model.Verdict{model.VerdictStandard, model.VerdictIrregular, model.VerdictAnomalous} {
		m.scans.WithLabelValues(v.String())
	}

	return m
}

// ObserveReport records a successful analysis.
func (m *Metrics) ObserveReport(report *model.Report) {
	m.scans.WithLabelValues(report.Verdict.String()).Inc()
	m.riskScore.Observe(float64(report.RiskScore))
}

// ObserveError records a failed analysis.
func (m *Metrics) ObserveError() {
	m.scanErrors.Inc()
}

// observeRequest records a served HTTP request.
func (m *Metrics) observeRequest(method, route string, status int) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler returns the /metrics handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
