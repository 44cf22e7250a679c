package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, name string, labelValue string) float64 {
	families, err := Registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if labelValue == "" {
				return metric.GetCounter().GetValue()
			}
			for _, label := range metric.GetLabel() {
				if label.GetValue() == labelValue {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestCounters(t *testing.T) {
	a := assert.New(t)

	before := counterValue(t, "similar_images_hash_errors_total", "decode")
	HashErrorsTotal.WithLabelValues("decode").Inc()

	a.Equal(before+1, counterValue(t, "similar_images_hash_errors_total", "decode"))

	beforeHashed := counterValue(t, "similar_images_hashed_total", "")
	ImagesHashedTotal.Add(2)

	a.Equal(beforeHashed+2, counterValue(t, "similar_images_hashed_total", ""))
}

func TestWriteToTextfile(t *testing.T) {
	a := assert.New(t)
	path := filepath.Join(t.TempDir(), "similar_images.prom")

	ImagesHashedTotal.Add(3)
	SearchDurationSeconds.WithLabelValues("hash").Observe(0.5)

	if a.NoError(WriteToTextfile(path)) {
		content, err := os.ReadFile(path)
		if a.NoError(err) {
			a.Contains(string(content), "similar_images_hashed_total")
			a.Contains(string(content), `similar_images_search_duration_seconds_count{phase="hash"}`)
		}
	}
}
