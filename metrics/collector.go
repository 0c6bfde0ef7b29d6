// Package metrics exports Prometheus metrics for tool resolution and request
// dispatch.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/agentdesk/tool"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Collector records resolver attempts and dispatched requests. It
// implements resolver.Observer and runner.Hooks.
type Collector struct {
	attemptsTotal   *prometheus.CounterVec
	attemptDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewCollector creates the collector and registers its metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Collector{
		attemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolver_attempts_total",
				Help:      "Total number of tool invocation attempts",
			},
			[]string{"strategy", "outcome"},
		),
		attemptDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "resolver_attempt_duration_seconds",
				Help:      "Tool invocation attempt duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"strategy"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatch_requests_total",
				Help:      "Total number of dispatched requests",
			},
			[]string{"agent", "outcome"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "dispatch_request_duration_seconds",
				Help:      "Request handling duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"agent"},
		),
	}
}

// OnAttempt implements resolver.Observer.
func (c *Collector) OnAttempt(_ string, strategy tool.Capability, _ string, err error, d time.Duration) {
	c.attemptsTotal.WithLabelValues(string(strategy), outcome(err)).Inc()
	c.attemptDuration.WithLabelValues(string(strategy)).Observe(d.Seconds())
}

// OnRequest implements runner.Hooks. Requests that failed before routing
// are recorded with agent "unrouted".
func (c *Collector) OnRequest(agent string, err error, d time.Duration) {
	if agent == "" {
		agent = "unrouted"
	}

	c.requestsTotal.WithLabelValues(agent, outcome(err)).Inc()
	c.requestDuration.WithLabelValues(agent).Observe(d.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}

	return OutcomeSuccess
}
