package phash

import (
	"math"
	"sync"
)

// FrequencyGrid holds DCT-II coefficients indexed [u][v], lowest frequency
// at [0][0].
type FrequencyGrid [][]float64

var cosineTables sync.Map

// cosineTable returns table[u][i] = cos((2i+1)/(2N) * u * π).
func cosineTable(size int) [][]float64 {
	if table, ok := cosineTables.Load(size); ok {
		return table.([][]float64)
	}
	table := newGrid(size)
	for u := 0; u < size; u++ {
		for i := 0; i < size; i++ {
			table[u][i] = math.Cos((float64(2*i+1) / (2.0 * float64(size))) * float64(u) * math.Pi)
		}
	}
	actual, _ := cosineTables.LoadOrStore(size, table)
	return actual.([][]float64)
}

func coefficient(k int) float64 {
	if k == 0 {
		return 1 / math.Sqrt2
	}
	return 1
}

// DCT2 computes the 2-D DCT-II of a square grid. Each coefficient is scaled
// by coef(u)·coef(v)/4. The transform is done separably, rows first.
func DCT2(grid GrayscaleGrid) FrequencyGrid {
	size := len(grid)
	table := cosineTable(size)

	partial := newGrid(size)
	for u := 0; u < size; u++ {
		cosines := table[u]
		row := partial[u]
		for i := 0; i < size; i++ {
			weight := cosines[i]
			for j, value := range grid[i] {
				row[j] += weight * value
			}
		}
	}

	result := newGrid(size)
	for u := 0; u < size; u++ {
		for v := 0; v < size; v++ {
			cosines := table[v]
			sum := 0.0
			for j, value := range partial[u] {
				sum += cosines[j] * value
			}
			result[u][v] = sum * (coefficient(u) * coefficient(v)) / 4.0
		}
	}
	return result
}

// DirectDCT2 evaluates the transform straight from its definition in O(N⁴).
func DirectDCT2(grid GrayscaleGrid) FrequencyGrid {
	size := len(grid)
	result := newGrid(size)
	n := float64(size)
	for u := 0; u < size; u++ {
		for v := 0; v < size; v++ {
			sum := 0.0
			for i := 0; i < size; i++ {
				for j := 0; j < size; j++ {
					sum += math.Cos((float64(2*i+1)/(2.0*n))*float64(u)*math.Pi) *
						math.Cos((float64(2*j+1)/(2.0*n))*float64(v)*math.Pi) *
						grid[i][j]
				}
			}
			result[u][v] = sum * (coefficient(u) * coefficient(v)) / 4.0
		}
	}
	return result
}

// InverseDCT2 reverses DCT2: f(i,j) = 16/N² Σ coef(u)·coef(v)·F(u,v)·cos·cos.
func InverseDCT2(frequencies FrequencyGrid) GrayscaleGrid {
	size := len(frequencies)
	table := cosineTable(size)
	scale := 16.0 / float64(size*size)

	partial := newGrid(size)
	for u := 0; u < size; u++ {
		for j := 0; j < size; j++ {
			sum := 0.0
			for v := 0; v < size; v++ {
				sum += coefficient(v) * frequencies[u][v] * table[v][j]
			}
			partial[u][j] = sum
		}
	}

	result := newGrid(size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			sum := 0.0
			for u := 0; u < size; u++ {
				sum += coefficient(u) * partial[u][j] * table[u][i]
			}
			result[i][j] = sum * scale
		}
	}
	return result
}
