package library

import (
	"image"
	"time"

	"vincit.fi/similar-images/api"
	"vincit.fi/similar-images/api/apitype"
	"vincit.fi/similar-images/backend/internal/metrics"
	"vincit.fi/similar-images/backend/internal/phash"
	"vincit.fi/similar-images/common/logger"
)

type HashResult struct {
	imageFile *apitype.ImageFile
	hash      *apitype.Hash
	err       error
}

func hashImage(imageFile *apitype.ImageFile, hasher *phash.Hasher, imageLoader api.ImageLoader) *HashResult {
	startTime := time.Now()
	defer func() {
		metrics.HashDurationSeconds.Observe(time.Since(startTime).Seconds())
	}()

	decodedImage, err := openImageForHashing(imageLoader, imageFile)
	if err != nil {
		return &HashResult{imageFile: imageFile, err: err}
	}
	hash, err := generateHash(hasher, decodedImage, imageFile)
	return &HashResult{imageFile: imageFile, hash: hash, err: err}
}

func openImageForHashing(imageLoader api.ImageLoader, imageFile *apitype.ImageFile) (image.Image, error) {
	startTime := time.Now()
	decodedImage, err := imageLoader.LoadImage(imageFile)
	logger.Trace.Printf("'%s': Image loaded in %s", imageFile.Path(), time.Since(startTime).String())
	return decodedImage, err
}

func generateHash(hasher *phash.Hasher, img image.Image, imageFile *apitype.ImageFile) (*apitype.Hash, error) {
	startTime := time.Now()
	hash, err := hasher.HashImage(img)
	logger.Trace.Printf("'%s': Calculated hash in %s", imageFile.Path(), time.Since(startTime).String())
	return hash, err
}
