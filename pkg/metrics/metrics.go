package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics коллектор метрик сервиса.
// Все методы записи безопасны для nil-получателя: если метрики выключены, вызовы игнорируются.
type Metrics struct {
	service string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec

	SessionsMaterialized *prometheus.CounterVec
	MaterializationGaps  *prometheus.CounterVec
	MaterializationFails *prometheus.CounterVec
	ReservationConflicts *prometheus.CounterVec
	StatusesAdvanced     *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном реестре (используется в тестах)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		service: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status_code"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path", "status_code"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUse: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdle: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		SessionsMaterialized: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_sessions_materialized_total",
			Help: "Sessions created from recurring bookings",
		}, []string{"service"}),

		MaterializationGaps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_materialization_gaps_total",
			Help: "Recurring occurrences skipped because the window was not bookable",
		}, []string{"service", "reason"}),

		MaterializationFails: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_materialization_errors_total",
			Help: "Recurring bookings that failed during materialization",
		}, []string{"service"}),

		ReservationConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_reservation_conflicts_total",
			Help: "Reservation attempts rejected because of an overlapping session",
		}, []string{"service"}),

		StatusesAdvanced: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_sessions_completed_total",
			Help: "Sessions transitioned from scheduled to completed",
		}, []string{"service"}),
	}
}

// ServiceName возвращает имя сервиса, которым помечаются метрики
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.service
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(statusCode)
	m.HTTPRequestsTotal.WithLabelValues(m.service, method, path, code).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.service, method, path, code).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.service, operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.service, operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(m.service).Set(float64(open))
	m.DBInUse.WithLabelValues(m.service).Set(float64(inUse))
	m.DBIdle.WithLabelValues(m.service).Set(float64(idle))
}

// RecordMaterialization записывает итоги прогона материализации
func (m *Metrics) RecordMaterialization(created int, gapsByReason map[string]int, failed int) {
	if m == nil {
		return
	}
	m.SessionsMaterialized.WithLabelValues(m.service).Add(float64(created))
	for reason, count := range gapsByReason {
		m.MaterializationGaps.WithLabelValues(m.service, reason).Add(float64(count))
	}
	m.MaterializationFails.WithLabelValues(m.service).Add(float64(failed))
}

// RecordConflict увеличивает счетчик отклоненных резервирований
func (m *Metrics) RecordConflict() {
	if m == nil {
		return
	}
	m.ReservationConflicts.WithLabelValues(m.service).Inc()
}

// RecordStatusesAdvanced увеличивает счетчик завершенных сессий
func (m *Metrics) RecordStatusesAdvanced(count int64) {
	if m == nil {
		return
	}
	m.StatusesAdvanced.WithLabelValues(m.service).Add(float64(count))
}
