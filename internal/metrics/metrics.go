package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the speech service. Each
// instance carries its own registry so multiple servers can coexist in
// one process.
type Metrics struct {
	registry *prometheus.Registry

	speakRequests        *prometheus.CounterVec
	synthesisDuration    prometheus.Histogram
	translationFallbacks prometheus.Counter
	audioBytes           prometheus.Histogram
}

// New creates and registers the service collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		speakRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mozhi",
				Name:      "speak_requests_total",
				Help:      "Speech generation requests by language and outcome.",
			},
			[]string{"language", "status"},
		),

		synthesisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "mozhi",
				Name:      "synthesis_duration_seconds",
				Help:      "Wall time of a full generation, including translation.",
				Buckets:   prometheus.DefBuckets,
			},
		),

		translationFallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "mozhi",
				Name:      "translation_fallbacks_total",
				Help:      "Malayalam requests spoken without a translation.",
			},
		),

		audioBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "mozhi",
				Name:      "audio_bytes",
				Help:      "Size of generated WAV files in bytes.",
				Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),
	}

	m.registry.MustRegister(
		m.speakRequests,
		m.synthesisDuration,
		m.translationFallbacks,
		m.audioBytes,
	)

	return m
}

// RecordSpeakRequest records the outcome and duration of a generation.
func (m *Metrics) RecordSpeakRequest(language string, success bool, seconds float64) {
	status := "ok"
	if !success {
		status = "error"
	}
	m.speakRequests.WithLabelValues(language, status).Inc()
	m.synthesisDuration.Observe(seconds)
}

// RecordAudio records the size of a generated WAV file.
func (m *Metrics) RecordAudio(bytes int) {
	m.audioBytes.Observe(float64(bytes))
}

// RecordTranslationFallback records a Malayalam request that fell back
// to speaking the original text.
func (m *Metrics) RecordTranslationFallback() {
	m.translationFallbacks.Inc()
}

// Handler returns the HTTP handler exposing the registry in the
// Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
