package library

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"vincit.fi/similar-images/api"
	"vincit.fi/similar-images/api/apitype"
	"vincit.fi/similar-images/backend/internal/metrics"
	"vincit.fi/similar-images/backend/internal/phash"
	"vincit.fi/similar-images/common/logger"
)

type HashCalculator struct {
	hasher      *phash.Hasher
	imageLoader api.ImageLoader
	threadCount int
	reporter    api.ProgressReporter
}

func NewHashCalculator(hasher *phash.Hasher, imageLoader api.ImageLoader, threadCount int, reporter api.ProgressReporter) *HashCalculator {
	if threadCount < 1 {
		threadCount = 1
	}
	return &HashCalculator{
		hasher:      hasher,
		imageLoader: imageLoader,
		threadCount: threadCount,
		reporter:    reporter,
	}
}

// GenerateHashes hashes every image. Images that fail are returned as
// ImageErrors and do not stop the others. Both slices keep input order.
// Only cancellation of ctx makes the whole call fail.
func (s *HashCalculator) GenerateHashes(ctx context.Context, images []*apitype.ImageFile) ([]*apitype.HashedImage, []*apitype.ImageError, error) {
	startTime := time.Now()
	hashExpected := len(images)
	logger.Info.Printf("Generate hashes for %d images...", hashExpected)
	s.reporter.Update(api.ProgressHashing, 0, hashExpected)

	if hashExpected == 0 {
		logger.Info.Printf("No hashes to generate")
		return nil, nil, nil
	}

	logger.Info.Printf(" * Using %d threads", s.threadCount)

	// One slot per image, each written by exactly one worker
	results := make([]*HashResult, hashExpected)
	var processed int64

	group, groupCtx := errgroup.WithContext(ctx)
	inputChannel := make(chan int)
	group.Go(func() error {
		defer close(inputChannel)
		for index := range images {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			case inputChannel <- index:
			}
		}
		return nil
	})

	// Only as many goroutines as threads so that at most that many
	// decoded images are held in memory at once
	for i := 0; i < s.threadCount; i++ {
		group.Go(func() error {
			for index := range inputChannel {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				results[index] = hashImage(images[index], s.hasher, s.imageLoader)
				s.reporter.Update(api.ProgressHashing, int(atomic.AddInt64(&processed, 1)), hashExpected)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		logger.Warn.Printf("Hashing stopped after %d/%d images: %s", atomic.LoadInt64(&processed), hashExpected, err)
		return nil, nil, err
	}

	var hashes []*apitype.HashedImage
	var errors []*apitype.ImageError
	for _, result := range results {
		if result.err == nil {
			hashes = append(hashes, &apitype.HashedImage{ImageFile: result.imageFile, Hash: result.hash})
			metrics.ImagesHashedTotal.Inc()
		} else {
			errors = append(errors, &apitype.ImageError{ImageFile: result.imageFile, Err: result.err})
			metrics.HashErrorsTotal.WithLabelValues(apitype.ErrorKind(result.err)).Inc()
			s.reporter.ImageFailed(result.imageFile, result.err)
		}
	}

	d := time.Since(startTime)
	metrics.SearchDurationSeconds.WithLabelValues("hash").Observe(d.Seconds())
	logger.Info.Printf("%d hashes generated in %s (%d errors)", len(hashes), d.String(), len(errors))

	if len(errors) > 0 {
		logger.Warn.Printf("Errors while processing hashes")
		for _, err := range errors {
			logger.Warn.Printf(" - %s", err)
		}
	}

	if len(hashes) > 0 {
		// Remember to take thread count otherwise the avg time is too small
		avg := d * time.Duration(s.threadCount) / time.Duration(len(hashes))
		logger.Info.Printf("  On average: %s/image", avg.String())
	}

	return hashes, errors, nil
}
