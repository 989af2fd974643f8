package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the calendar
// service: HTTP request metrics plus domain counters for migration sweeps.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	sessionsStarted     prometheus.Counter
	studentsPromoted    prometheus.Counter
	studentsCarriedOver prometheus.Counter
	studentsGraduated   prometheus.Counter
}

// NewMetricsService registers the service's Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	sessionsStarted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calendar_sessions_started_total",
		Help: "Total academic sessions started",
	})

	studentsPromoted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calendar_students_promoted_total",
		Help: "Total students promoted to the next class level",
	})

	studentsCarriedOver := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calendar_students_carried_over_total",
		Help: "Total students carried over into a new term",
	})

	studentsGraduated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calendar_students_graduated_total",
		Help: "Total students graduated during promotion sweeps",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, sessionsStarted, studentsPromoted, studentsCarriedOver, studentsGraduated, goroutines)

	return &MetricsService{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		sessionsStarted:     sessionsStarted,
		studentsPromoted:    studentsPromoted,
		studentsCarriedOver: studentsCarriedOver,
		studentsGraduated:   studentsGraduated,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, code).Inc()
}

// IncSessionsStarted counts a NEW_SESSION transition.
func (m *MetricsService) IncSessionsStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
}

// AddPromoted counts promoted students.
func (m *MetricsService) AddPromoted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.studentsPromoted.Add(float64(n))
}

// AddCarriedOver counts carried-over students.
func (m *MetricsService) AddCarriedOver(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.studentsCarriedOver.Add(float64(n))
}

// AddGraduated counts graduated students.
func (m *MetricsService) AddGraduated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.studentsGraduated.Add(float64(n))
}
