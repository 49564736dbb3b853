// Package metrics exposes Prometheus collectors for the translation
// pipeline. Collectors are registered on the default registry and served
// by the /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Serving surfaces, used as the "surface" label.
const (
	SurfaceHTTP   = "http"
	SurfaceStream = "stream"
	SurfaceLambda = "lambda"
	SurfacePubSub = "pubsub"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "astra_translate_requests_total",
			Help: "Total number of translation requests",
		},
		[]string{"surface", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "astra_translate_request_duration_seconds",
			Help:    "Duration of translation requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
		},
		[]string{"surface", "status"},
	)

	requestTextBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "astra_translate_request_text_bytes",
			Help:    "Size of request text in bytes",
			Buckets: []float64{50, 100, 500, 1000, 5000, 10000, 50000},
		},
		[]string{"surface"},
	)

	responseTextBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "astra_translate_response_text_bytes",
			Help:    "Size of translated text in bytes",
			Buckets: []float64{50, 100, 500, 1000, 5000, 10000, 50000},
		},
		[]string{"surface"},
	)

	activeRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "astra_translate_active_requests",
			Help: "Number of translation requests currently in flight",
		},
	)

	languageFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "astra_translate_language_fallbacks_total",
			Help: "Language resolution fallbacks by kind",
		},
		[]string{"kind"},
	)

	cacheEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "astra_translate_cache_events_total",
			Help: "Result cache lookups by outcome",
		},
		[]string{"event"},
	)
)

// RecordRequest records one completed translation request on a surface.
func RecordRequest(surface string, success bool, duration time.Duration, requestBytes, responseBytes int) {
	status := "success"
	if !success {
		status = "error"
	}

	requestsTotal.WithLabelValues(surface, status).Inc()
	requestDuration.WithLabelValues(surface, status).Observe(duration.Seconds())
	requestTextBytes.WithLabelValues(surface).Observe(float64(requestBytes))
	responseTextBytes.WithLabelValues(surface).Observe(float64(responseBytes))
}

// TrackActive marks a request in flight; call the returned func when done.
func TrackActive() func() {
	activeRequests.Inc()
	return func() { activeRequests.Dec() }
}

// RecordSourceDetected counts a source language resolved by detection.
func RecordSourceDetected() {
	languageFallbacksTotal.WithLabelValues("source_detected").Inc()
}

// RecordSourceDefaulted counts a source language that fell back to the
// default because detection failed or was unsupported.
func RecordSourceDefaulted() {
	languageFallbacksTotal.WithLabelValues("source_defaulted").Inc()
}

// RecordTargetSubstituted counts an unsupported target replaced by the
// default language.
func RecordTargetSubstituted() {
	languageFallbacksTotal.WithLabelValues("target_substituted").Inc()
}

// RecordCacheHit counts a result served from the cache.
func RecordCacheHit() {
	cacheEventsTotal.WithLabelValues("hit").Inc()
}

// RecordCacheMiss counts a cache miss.
func RecordCacheMiss() {
	cacheEventsTotal.WithLabelValues("miss").Inc()
}
