package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the service exports. A nil *Metrics is valid
// and records nothing, so callers never need to guard.
type Metrics struct {
	gatherer prometheus.Gatherer

	// HTTP
	RequestDuration *prometheus.HistogramVec

	// Domain
	UsersRegistered prometheus.Counter
	Logins          *prometheus.CounterVec
	PostsCreated    prometheus.Counter

	// Activity worker queue
	ActivityQueueDepth prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
		UsersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total successful registrations",
		}),
		Logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logins_total",
				Help: "Login attempts by result",
			},
			[]string{"result"}, // success|failure
		),
		PostsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Total posts created",
		}),
		ActivityQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "activity_queue_depth",
			Help: "Current activity worker queue depth",
		}),
	}
	reg.MustRegister(m.RequestDuration, m.UsersRegistered, m.Logins, m.PostsCreated, m.ActivityQueueDepth)
	return m
}

// Handler serves the registry for /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, method, status).Observe(seconds)
}

func (m *Metrics) UserRegistered() {
	if m == nil {
		return
	}
	m.UsersRegistered.Inc()
}

func (m *Metrics) Login(ok bool) {
	if m == nil {
		return
	}
	result := "failure"
	if ok {
		result = "success"
	}
	m.Logins.WithLabelValues(result).Inc()
}

func (m *Metrics) PostCreated() {
	if m == nil {
		return
	}
	m.PostsCreated.Inc()
}

func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.ActivityQueueDepth.Set(float64(n))
}
