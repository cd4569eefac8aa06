package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	issuesProcessedTotal  *prometheus.CounterVec
	issueLatencySeconds   prometheus.Histogram
	issueLinesSkipped     *prometheus.CounterVec
	stockRejectionsTotal  prometheus.Counter
	signatureFailures     prometheus.Counter
	ledgerAdjustmentsDone *prometheus.CounterVec
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	httpErrorsTotal       *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for the issuance and
// inventory paths.
func RegisterMetrics() {
	registerOnce.Do(func() {
		issuesProcessedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storeroom_issues_total",
			Help: "Total number of issuance attempts by outcome.",
		}, []string{"outcome"})

		issueLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "storeroom_issue_latency_seconds",
			Help:    "Latency distribution for processing an issuance.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		})

		issueLinesSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storeroom_issue_lines_skipped_total",
			Help: "Issuance lines skipped during processing by reason.",
		}, []string{"reason"})

		stockRejectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storeroom_insufficient_stock_total",
			Help: "Issuance attempts rejected because stock would go negative.",
		})

		signatureFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storeroom_signature_failures_total",
			Help: "Signature payloads that failed to decode or persist.",
		})

		ledgerAdjustmentsDone = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storeroom_ledger_adjustments_total",
			Help: "Committed stock ledger adjustments by event kind.",
		}, []string{"event"})

		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storeroom_http_requests_total",
			Help: "HTTP requests served by method, route and status.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storeroom_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storeroom_http_errors_total",
			Help: "HTTP responses with status >= 400 by method, route and status.",
		}, []string{"method", "route", "status"})

		prometheus.MustRegister(
			issuesProcessedTotal,
			issueLatencySeconds,
			issueLinesSkipped,
			stockRejectionsTotal,
			signatureFailures,
			ledgerAdjustmentsDone,
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
		)
	})
}

// IssuesProcessed exposes the issuance outcome counter.
func IssuesProcessed() *prometheus.CounterVec {
	RegisterMetrics()
	return issuesProcessedTotal
}

// IssueLatency exposes the issuance latency histogram.
func IssueLatency() prometheus.Histogram {
	RegisterMetrics()
	return issueLatencySeconds
}

// IssueLinesSkipped exposes the skipped-line counter.
func IssueLinesSkipped() *prometheus.CounterVec {
	RegisterMetrics()
	return issueLinesSkipped
}

// StockRejections exposes the insufficient-stock counter.
func StockRejections() prometheus.Counter {
	RegisterMetrics()
	return stockRejectionsTotal
}

// SignatureFailures exposes the signature failure counter.
func SignatureFailures() prometheus.Counter {
	RegisterMetrics()
	return signatureFailures
}

// LedgerAdjustments exposes the committed adjustment counter.
func LedgerAdjustments() *prometheus.CounterVec {
	RegisterMetrics()
	return ledgerAdjustmentsDone
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the error response counter.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}
