// Package metricsvc exposes authorization and GraphQL metrics to Prometheus.
package metricsvc

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trezcool/edunotify/core/access"
)

const namespace = "edunotify"

// Result labels
const (
	LabelAllowed   = "allowed"
	LabelDenied    = "denied"
	LabelSuccess   = "success"
	LabelError     = "error"
	LabelAnonymous = "ANONYMOUS"
)

type Metrics struct {
	reg *prometheus.Registry

	Decisions       *prometheus.CounterVec
	Requests        *prometheus.CounterVec
	RequestsLatency *prometheus.HistogramVec
}

var _ access.Observer = (*Metrics)(nil)

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),

		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "access",
			Name:      "decisions_total",
			Help:      "Count of the authorization decisions",
		}, []string{"operation", "role", "result"}),

		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "requests_total",
			Help:      "Count of the GraphQL requests",
		}, []string{"operation", "result"}),

		RequestsLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "requests_latency_seconds",
			Help:      "Histogram of times spent executing GraphQL requests",
			Buckets:   prometheus.ExponentialBuckets(1e-3, 5, 7),
		}, []string{"operation", "result"}),
	}
	m.reg.MustRegister(m.PrometheusCollectors()...)
	m.reg.MustRegister(prometheus.NewGoCollector())
	return m
}

func (m *Metrics) PrometheusCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Decisions,
		m.Requests,
		m.RequestsLatency,
	}
}

// ObserveDecision counts an authorization decision.
func (m *Metrics) ObserveDecision(op access.Operation, role access.Role, d access.Decision) {
	result := LabelDenied
	if d.Allowed {
		result = LabelAllowed
	}
	r := string(role)
	if r == "" {
		r = LabelAnonymous
	}
	m.Decisions.WithLabelValues(string(op), r, result).Inc()
}

// GraphQL operation types, the only values of the requests "operation" label.
const (
	OpQuery        = "query"
	OpMutation     = "mutation"
	OpSubscription = "subscription"
	OpOther        = "other"
)

var operationTypes = map[string]bool{OpQuery: true, OpMutation: true, OpSubscription: true}

// ObserveRequest counts a GraphQL request and its latency by operation type.
// Any other operation value is reported as OpOther.
func (m *Metrics) ObserveRequest(operation string, failed bool, took time.Duration) {
	if !operationTypes[operation] {
		operation = OpOther
	}
	result := LabelSuccess
	if failed {
		result = LabelError
	}
	m.Requests.WithLabelValues(operation, result).Inc()
	m.RequestsLatency.WithLabelValues(operation, result).Observe(took.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
