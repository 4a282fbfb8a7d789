package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationRequests counts generation calls.
	// Labels:
	//   - mode: "batch" or "mood"
	//   - outcome: "ok", "empty", "error"
	GenerationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_generation_requests_total",
			Help: "Total number of outfit generation requests",
		},
		[]string{"mode", "outcome"},
	)

	// GeneratedOutfits observes how many outfits a single call returned.
	GeneratedOutfits = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outfit_generation_outfits",
			Help:    "Number of outfits returned per generation call",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		},
	)

	// GenerationDuration measures engine latency, excluding item store reads.
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outfit_generation_duration_seconds",
			Help:    "Duration of outfit generation in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"mode"},
	)

	// OutfitScores observes the overall score of every returned outfit.
	OutfitScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outfit_score",
			Help:    "Overall score of generated outfits",
			Buckets: prometheus.LinearBuckets(40, 10, 7),
		},
	)

	// SavedOutfitEvents counts saved-outfit lifecycle events.
	// Labels:
	//   - event: "saved", "worn", "favorite", "updated", "deleted"
	SavedOutfitEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saved_outfit_events_total",
			Help: "Total number of saved outfit lifecycle events",
		},
		[]string{"event"},
	)
)

// ObserveGeneration records one generation call.
func ObserveGeneration(mode string, scores []float64, started time.Time, err error) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case len(scores) == 0:
		outcome = "empty"
	}
	GenerationRequests.WithLabelValues(mode, outcome).Inc()
	if err != nil {
		return
	}
	GenerationDuration.WithLabelValues(mode).Observe(time.Since(started).Seconds())
	GeneratedOutfits.Observe(float64(len(scores)))
	for _, score := range scores {
		OutfitScores.Observe(score)
	}
}
