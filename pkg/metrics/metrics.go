package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// BookingAttemptsTotal счетчик попыток бронирования по исходам
	// (confirmed, slot_full, limit_exceeded, time_conflict, ...)
	BookingAttemptsTotal *prometheus.CounterVec

	// PhaseTransitionsTotal счетчик автоматических и ручных переходов фаз
	PhaseTransitionsTotal *prometheus.CounterVec
}

// BookingAttempt инкрементирует счетчик попыток бронирования
func (m *Metrics) BookingAttempt(outcome string) {
	m.BookingAttemptsTotal.WithLabelValues(outcome).Inc()
}

// PhaseTransition инкрементирует счетчик переходов фаз
func (m *Metrics) PhaseTransition(trigger string) {
	m.PhaseTransitionsTotal.WithLabelValues(trigger).Inc()
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		BookingAttemptsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_attempts_total",
			Help:        "Booking attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		PhaseTransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "phase_transitions_total",
			Help:        "Event phase transitions by trigger (auto, manual)",
			ConstLabels: constLabels,
		}, []string{"trigger"}),
	}
}
