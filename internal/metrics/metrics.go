package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exported on /metrics. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	bookingsCreated   prometheus.Counter
	bookingConflicts  *prometheus.CounterVec
	bookingsCompleted prometheus.Counter
	assetsPriced      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	jobRuns           *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dhara",
			Name:      "bookings_created_total",
			Help:      "Bookings successfully created",
		}),
		bookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dhara",
			Name:      "booking_conflicts_total",
			Help:      "Booking attempts rejected because the slot was taken",
		}, []string{"source"}),
		bookingsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dhara",
			Name:      "bookings_completed_total",
			Help:      "Bookings moved to COMPLETED by the expiry sweep",
		}),
		assetsPriced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dhara",
			Name:      "assets_priced_total",
			Help:      "Hourly rates computed by the pricing engine",
		}, []string{"category"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dhara",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dhara",
			Name:      "job_runs_total",
			Help:      "Scheduled job executions",
		}, []string{"job", "result"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.bookingsCreated,
		m.bookingConflicts,
		m.bookingsCompleted,
		m.assetsPriced,
		m.httpDuration,
		m.jobRuns,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) BookingCreated() {
	if m != nil {
		m.bookingsCreated.Inc()
	}
}

// BookingConflict records a rejected booking. source is "precheck" or "constraint".
func (m *Metrics) BookingConflict(source string) {
	if m != nil {
		m.bookingConflicts.WithLabelValues(source).Inc()
	}
}

func (m *Metrics) BookingsCompleted(n int) {
	if m != nil && n > 0 {
		m.bookingsCompleted.Add(float64(n))
	}
}

func (m *Metrics) AssetPriced(category string) {
	if m != nil {
		m.assetsPriced.WithLabelValues(category).Inc()
	}
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m != nil {
		m.httpDuration.WithLabelValues(method, route, http.StatusText(status)).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) JobRun(job string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.jobRuns.WithLabelValues(job, result).Inc()
}
