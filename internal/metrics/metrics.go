package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ProxyBytesStreamed prometheus.Counter
	ProxyUpstreamError prometheus.Counter

	UploadTokensIssued prometheus.Counter
}

var (
	instance *Metrics
	once     sync.Once
)

// Get returns the metrics singleton, registering collectors on first use.
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			ProxyBytesStreamed: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "proxy_bytes_streamed_total",
					Help: "Total bytes re-streamed from upstream assets",
				},
			),
			ProxyUpstreamError: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "proxy_upstream_errors_total",
					Help: "Total upstream fetch failures in the streaming proxy",
				},
			),
			UploadTokensIssued: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "upload_tokens_issued_total",
					Help: "Total upload credentials minted",
				},
			),
		}
	})
	return instance
}
