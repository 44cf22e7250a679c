package phash

import (
	"math"
	"sort"

	"vincit.fi/similar-images/api/apitype"
)

// Coefficients closer than this (relative to the largest magnitude in the
// block) to the median are treated as equal to it.
const tieTolerance = 1e-9

// Binarize sets one bit per cell of the top-left HashSize×HashSize block,
// row-major: 1 when the cell is strictly greater than the block median.
func Binarize(frequencies FrequencyGrid, config apitype.HashConfig) (*apitype.Hash, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(frequencies) < config.HashSize {
		return nil, &apitype.ConfigurationMismatchError{
			Expected: config,
			Actual:   apitype.HashConfig{ImageSize: len(frequencies), HashSize: config.HashSize},
		}
	}

	block := lowFrequencyBlock(frequencies, config.HashSize)
	med := median(block)

	largest := 1.0
	for _, value := range block {
		largest = math.Max(largest, math.Abs(value))
	}
	tolerance := tieTolerance * largest

	bits := make([]bool, len(block))
	for i, value := range block {
		bits[i] = value-med > tolerance
	}
	return apitype.NewHash(config, bits)
}

func lowFrequencyBlock(frequencies FrequencyGrid, hashSize int) []float64 {
	block := make([]float64, 0, hashSize*hashSize)
	for u := 0; u < hashSize; u++ {
		block = append(block, frequencies[u][:hashSize]...)
	}
	return block
}

// median averages the two middle values for even-length input.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	middle := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[middle-1] + sorted[middle]) / 2
	}
	return sorted[middle]
}
