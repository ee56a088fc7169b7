package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP layer and the solver driver.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	solverWallTime   prometheus.Histogram
	solverStatus     *prometheus.CounterVec
	modelVariables   prometheus.Gauge
	modelConstraints prometheus.Gauge
}

// NewMetricsService registers the engine's Prometheus collectors.
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

	solverWallTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_wall_time_seconds",
		Help:    "Wall clock time spent inside the solver driver",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
	})

	solverStatus := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_status_total",
		Help: "Count of solver runs by terminal status",
	}, []string{"status"})

	modelVariables := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solver_model_variables",
		Help: "Number of boolean decision variables in the last compiled model",
	})

	modelConstraints := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solver_model_constraints",
		Help: "Number of linear constraints in the last compiled model",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, solverWallTime, solverStatus, modelVariables, modelConstraints, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:         registry,
		handler:          handler,
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		solverWallTime:   solverWallTime,
		solverStatus:     solverStatus,
		modelVariables:   modelVariables,
		modelConstraints: modelConstraints,
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

// ObserveHTTPRequest records request latency and count, labeled by method/path/status.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveSolverRun records a completed solver invocation.
func (m *MetricsService) ObserveSolverRun(status string, duration time.Duration, numVariables, numConstraints int) {
	if m == nil {
		return
	}
	m.solverWallTime.Observe(duration.Seconds())
	m.solverStatus.WithLabelValues(status).Inc()
	m.modelVariables.Set(float64(numVariables))
	m.modelConstraints.Set(float64(numConstraints))
}
