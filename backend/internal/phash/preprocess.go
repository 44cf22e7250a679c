package phash

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"vincit.fi/similar-images/api/apitype"
)

// GrayscaleGrid holds luminance samples indexed [row][column].
type GrayscaleGrid [][]float64

func newGrid(size int) [][]float64 {
	cells := make([]float64, size*size)
	grid := make([][]float64, size)
	for i := range grid {
		grid[i] = cells[i*size : (i+1)*size : (i+1)*size]
	}
	return grid
}

type Preprocessor struct {
	size      apitype.Size
	resampler Resampler
}

func NewPreprocessor(imageSize int, resampler Resampler) *Preprocessor {
	return &Preprocessor{
		size:      apitype.SquareOf(imageSize),
		resampler: resampler,
	}
}

// Grid converts img to luma and resizes it to the configured square.
func (s *Preprocessor) Grid(img image.Image) GrayscaleGrid {
	gray := ToGray(img)
	scaled := s.resampler.Resize(gray, s.size)
	return gridFromImage(scaled, s.size.Width())
}

// ToGray applies the ITU-R 601 luma weights (0.299, 0.587, 0.114).
func ToGray(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	luma := imaging.Grayscale(img)
	bounds := luma.Bounds()
	gray := image.NewGray(bounds)
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			// All three channels carry the same value after imaging.Grayscale
			gray.Pix[y*gray.Stride+x] = luma.Pix[y*luma.Stride+x*4]
		}
	}
	return gray
}

func gridFromImage(img image.Image, size int) GrayscaleGrid {
	grid := newGrid(size)
	bounds := img.Bounds()
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			value := color.GrayModel.Convert(img.At(bounds.Min.X+j, bounds.Min.Y+i)).(color.Gray)
			grid[i][j] = float64(value.Y)
		}
	}
	return grid
}
