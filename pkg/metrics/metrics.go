package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge

	BookingOutcomes        *prometheus.CounterVec
	NotificationResults    *prometheus.CounterVec
	NotificationQueueDepth prometheus.Gauge
}

// New регистрирует метрики в глобальном регистре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном регистре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 3},
		}, []string{"operation"}),
		DBQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors",
			ConstLabels: labels,
		}, []string{"operation"}),
		DBOpenConnections: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: labels,
		}),
		DBInUse: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: labels,
		}),
		DBIdle: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: labels,
		}),

		BookingOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "inspection_booking_outcomes_total",
			Help:        "Inspection booking attempts by kind and outcome",
			ConstLabels: labels,
		}, []string{"kind", "outcome"}),
		NotificationResults: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "inspection_notification_results_total",
			Help:        "Notification channel results",
			ConstLabels: labels,
		}, []string{"channel", "status"}),
		NotificationQueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name:        "inspection_notification_queue_depth",
			Help:        "Notifications waiting in the dispatcher queue",
			ConstLabels: labels,
		}),
	}
}

// RecordBookingOutcome увеличивает счетчик исходов бронирования
func (m *Metrics) RecordBookingOutcome(kind, outcome string) {
	m.BookingOutcomes.WithLabelValues(kind, outcome).Inc()
}

// RecordNotification увеличивает счетчик результатов канала уведомлений
func (m *Metrics) RecordNotification(channel, status string) {
	m.NotificationResults.WithLabelValues(channel, status).Inc()
}

// SetNotificationQueueDepth выставляет текущую глубину очереди уведомлений
func (m *Metrics) SetNotificationQueueDepth(n int) {
	m.NotificationQueueDepth.Set(float64(n))
}
