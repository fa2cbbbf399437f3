package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dot11dec",
			Subsystem: "decoder",
			Name:      "frames_decoded_total",
			Help:      "Frames decoded successfully, by frame kind.",
		},
		[]string{"source", "kind"},
	)
	decodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dot11dec",
			Subsystem: "decoder",
			Name:      "decode_failures_total",
			Help:      "Frames rejected by the decoder, by failure reason.",
		},
		[]string{"source", "reason"},
	)
	bodyBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dot11dec",
			Subsystem: "decoder",
			Name:      "body_bytes",
			Help:      "Frame body length in bytes.",
			Buckets:   prometheus.ExponentialBuckets(16, 2, 8),
		},
		[]string{"source", "kind"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dot11dec",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dot11dec",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(framesDecoded, decodeFailures, bodyBytes, httpRequests, httpDuration)
	})
}

// RecordDecode counts one decode outcome. reason is ignored on success.
func RecordDecode(source, kind, reason string, bodyLen int, ok bool) {
	RegisterMetrics()
	if !ok {
		decodeFailures.WithLabelValues(source, reason).Inc()
		return
	}
	framesDecoded.WithLabelValues(source, kind).Inc()
	bodyBytes.WithLabelValues(source, kind).Observe(float64(bodyLen))
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}
