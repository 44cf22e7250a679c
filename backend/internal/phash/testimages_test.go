package phash

import (
	"image"
	"image/color"
	"math/rand"
)

func solidImage(width int, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func noiseImage(width int, height int, seed int64) *image.RGBA {
	random := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(30 + random.Intn(190)),
				G: uint8(30 + random.Intn(190)),
				B: uint8(30 + random.Intn(190)),
				A: 255,
			})
		}
	}
	return img
}

func randomGrid(size int, seed int64) GrayscaleGrid {
	random := rand.New(rand.NewSource(seed))
	grid := newGrid(size)
	for i := range grid {
		for j := range grid[i] {
			grid[i][j] = float64(random.Intn(256))
		}
	}
	return grid
}

func constantGrid(size int, value float64) GrayscaleGrid {
	grid := newGrid(size)
	for i := range grid {
		for j := range grid[i] {
			grid[i][j] = value
		}
	}
	return grid
}
