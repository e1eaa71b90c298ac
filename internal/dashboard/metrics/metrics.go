// Package metrics holds the Prometheus collectors for holidash. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes.
const (
	OutcomeSuccess           = "success"
	OutcomeUnknownIdentifier = "unknown_identifier"
	OutcomeMalformedRecord   = "malformed_record"
	OutcomeWrongPassword     = "wrong_password"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	LoginAttempts   *prometheus.CounterVec
	DirectoryLoads  *prometheus.CounterVec
	DirectorySize   prometheus.Gauge
	Collisions      prometheus.Counter
	UpstreamLatency *prometheus.HistogramVec
}

// New creates the collectors and registers them, with the Go and process
// collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		gatherer: reg,
		LoginAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "holidash_login_attempts_total", Help: "Login attempts by outcome"},
			[]string{"outcome"},
		),
		DirectoryLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "holidash_directory_loads_total", Help: "User directory loads by source and result"},
			[]string{"source", "result"},
		),
		DirectorySize: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "holidash_directory_size", Help: "Users in the published directory"},
		),
		Collisions: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "holidash_directory_collisions_total", Help: "Duplicate identifiers overwritten during loads"},
		),
		UpstreamLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "holidash_upstream_request_duration_seconds",
				Help:    "Upstream API request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"upstream", "code"},
		),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.LoginAttempts, m.DirectoryLoads, m.DirectorySize, m.Collisions, m.UpstreamLatency,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) Login(outcome string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}

// DirectoryLoaded records a load attempt. size and collisions are only
// applied when err is nil.
func (m *Metrics) DirectoryLoaded(source string, size, collisions int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.DirectoryLoads.WithLabelValues(source, "error").Inc()
		return
	}
	m.DirectoryLoads.WithLabelValues(source, "ok").Inc()
	m.DirectorySize.Set(float64(size))
	m.Collisions.Add(float64(collisions))
}

// InstrumentClient returns an http.Client whose requests are timed under
// the given upstream label.
func (m *Metrics) InstrumentClient(upstream string, base *http.Client) *http.Client {
	if base == nil {
		base = &http.Client{}
	}
	if m == nil {
		return base
	}

	rt := base.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}

	hc := *base
	hc.Transport = promhttp.InstrumentRoundTripperDuration(
		m.UpstreamLatency.MustCurryWith(prometheus.Labels{"upstream": upstream}),
		rt,
	)
	return &hc
}
