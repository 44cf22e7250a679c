package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every metric of a search run. It is separate from the
// default registry so the textfile output carries only these series.
var Registry = prometheus.NewRegistry()

var (
	ImagesHashedTotal = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Name: "similar_images_hashed_total",
			Help: "Total number of images hashed successfully",
		},
	)

	HashErrorsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "similar_images_hash_errors_total",
			Help: "Total number of images that could not be hashed",
		},
		[]string{"kind"}, // "unreadable", "decode", "other"
	)

	HashDurationSeconds = promauto.With(Registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "similar_images_hash_duration_seconds",
			Help:    "Time spent loading and hashing one image",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
	)

	PairsComparedTotal = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Name: "similar_images_pairs_compared_total",
			Help: "Total number of ordered image pairs compared",
		},
	)

	SimilarPairsTotal = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Name: "similar_images_similar_pairs_total",
			Help: "Total number of unordered image pairs below the distance threshold",
		},
	)

	SearchDurationSeconds = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "similar_images_search_duration_seconds",
			Help:    "Duration of search phases",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"phase"}, // "hash", "compare", "export"
	)
)

// WriteToTextfile writes the registry in the node exporter textfile format.
func WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
