package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the stats daemon
var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hyperbox_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hyperbox_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// Collector metrics
	collectorScrapeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hyperbox_collector_scrape_duration_seconds",
			Help:    "Duration of runtime backend requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"collector"},
	)

	collectorScrapeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hyperbox_collector_scrape_errors_total",
			Help: "Total number of failed runtime backend requests",
		},
		[]string{"collector"},
	)

	// Ring buffer metrics
	cyclePointsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hyperbox_cycle_points_total",
			Help: "Total number of points committed to ring buffers",
		},
	)

	// Pressure metrics
	pressurePercent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hyperbox_memory_pressure_percent",
			Help: "Aggregate memory usage as a percentage of aggregate limit",
		},
	)

	pressureLevel = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hyperbox_memory_pressure_level",
			Help: "Current memory pressure level (1 for the active level, 0 otherwise)",
		},
		[]string{"level"},
	)

	// WebSocket metrics
	websocketConnectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hyperbox_websocket_connections_total",
			Help: "Total number of WebSocket connections",
		},
	)

	websocketConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hyperbox_websocket_connections_active",
			Help: "Number of active WebSocket connections",
		},
	)
)

var pressureLevels = []string{"low", "moderate", "high", "critical"}

// RecordHTTPRequest records metrics for HTTP requests
func RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	labels := prometheus.Labels{
		"method":      method,
		"path":        path,
		"status_code": strconv.Itoa(statusCode),
	}

	httpRequestsTotal.With(labels).Inc()
	httpRequestDuration.With(labels).Observe(duration.Seconds())
}

// RecordCollectorScrape records one runtime backend request
func RecordCollectorScrape(collector string, duration time.Duration, hasError bool) {
	collectorScrapeDuration.With(prometheus.Labels{"collector": collector}).Observe(duration.Seconds())

	if hasError {
		collectorScrapeErrors.With(prometheus.Labels{"collector": collector}).Inc()
	}
}

// RecordCyclePoints records the points committed by one completed cycle
func RecordCyclePoints(count int) {
	cyclePointsTotal.Add(float64(count))
}

// UpdatePressure publishes the latest pressure classification
func UpdatePressure(percent float64, level string) {
	pressurePercent.Set(percent)
	for _, l := range pressureLevels {
		v := 0.0
		if l == level {
			v = 1.0
		}
		pressureLevel.With(prometheus.Labels{"level": l}).Set(v)
	}
}

// RecordWebSocketConnection records a new WebSocket connection
func RecordWebSocketConnection() {
	websocketConnectionsTotal.Inc()
	websocketConnectionsActive.Inc()
}

// RecordWebSocketDisconnection records a closed WebSocket connection
func RecordWebSocketDisconnection() {
	websocketConnectionsActive.Dec()
}
