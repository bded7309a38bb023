package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unicorn_requests_total",
			Help: "Total number of scoring requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	InferenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unicorn_inference_duration_seconds",
			Help:    "Duration of model inference in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"endpoint"},
	)

	ArtifactLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "unicorn_artifact_loaded",
			Help: "Whether a model artifact was loaded at startup (1) or not (0)",
		},
		[]string{"artifact"},
	)
)

const (
	OutcomeSuccess         = "success"
	OutcomeArtifactMissing = "artifact_missing"
	OutcomeInvalidRequest  = "invalid_request"
	OutcomeError           = "error"
)

func SetArtifactLoaded(artifact string, loaded bool) {
	value := 0.0
	if loaded {
		value = 1
	}
	ArtifactLoaded.WithLabelValues(artifact).Set(value)
}
