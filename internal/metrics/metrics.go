package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// TransactionsRecorded counts asset transactions written, by action.
	TransactionsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_transactions_recorded_total",
			Help: "Total number of asset transactions recorded by action",
		},
		[]string{"action"},
	)

	ExportedRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "export_rows_total",
			Help: "Total number of rows written to CSV exports by resource",
		},
		[]string{"resource"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, TransactionsRecorded, ExportedRows)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// Used when no route pattern is known, e.g. /assets/123 -> /assets/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

func IncTransactions(action string) {
	TransactionsRecorded.WithLabelValues(action).Inc()
}

// AddExportedRows adds n to the export counter for resource (assets, users).
func AddExportedRows(resource string, n int) {
	ExportedRows.WithLabelValues(resource).Add(float64(n))
}
