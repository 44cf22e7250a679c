package library

import (
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"vincit.fi/similar-images/api/apitype"
	"vincit.fi/similar-images/backend/internal/imageloader"
	"vincit.fi/similar-images/backend/internal/phash"
)

func noiseImage(size int, seed int64) image.Image {
	random := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(random.Intn(256)),
				G: uint8(random.Intn(256)),
				B: uint8(random.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

func blackImage(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func writePng(t *testing.T, dir string, name string, img image.Image) {
	file, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
}

func writeText(t *testing.T, dir string, name string, content string) {
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newTestHashCalculator(threadCount int) *HashCalculator {
	return NewHashCalculator(phash.NewDefaultHasher(), imageloader.NewImageLoader(false), threadCount, &recordingReporter{})
}

// hashWithBits returns a default size hash with the first count bits set.
func hashWithBits(t *testing.T, count int) *apitype.Hash {
	config := apitype.DefaultHashConfig()
	values := make([]bool, config.Bits())
	for i := 0; i < count; i++ {
		values[i] = true
	}
	hash, err := apitype.NewHash(config, values)
	require.NoError(t, err)
	return hash
}

func hashed(name string, hash *apitype.Hash) *apitype.HashedImage {
	return &apitype.HashedImage{ImageFile: apitype.NewImageFile("images", name), Hash: hash}
}
