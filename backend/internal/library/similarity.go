package library

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"vincit.fi/similar-images/api"
	"vincit.fi/similar-images/api/apitype"
	"vincit.fi/similar-images/backend/internal/metrics"
	"vincit.fi/similar-images/common/logger"
)

const DefaultDistanceThreshold = 20

func ValidateThreshold(threshold int, config apitype.HashConfig) error {
	if threshold < 0 || threshold > config.Bits() {
		return fmt.Errorf("%w: distance threshold %d outside [0, %d]", apitype.ErrInvalidConfig, threshold, config.Bits())
	}
	return nil
}

// CheckSameConfig fails with a ConfigurationMismatchError when the hashes
// were not all computed with the same configuration.
func CheckSameConfig(hashes []*apitype.HashedImage) error {
	if len(hashes) == 0 {
		return nil
	}
	expected := hashes[0].Hash.Config()
	for _, hashed := range hashes[1:] {
		if actual := hashed.Hash.Config(); actual != expected {
			return &apitype.ConfigurationMismatchError{Expected: expected, Actual: actual}
		}
	}
	return nil
}

// Compare returns, for every image, the other images whose Hamming distance
// is strictly below threshold, nearest first and ties ordered by path.
// Rows are computed in parallel; each row is written by one goroutine.
func Compare(ctx context.Context, hashes []*apitype.HashedImage, threshold int, threadCount int, reporter api.ProgressReporter) (map[string][]*apitype.Match, error) {
	if err := CheckSameConfig(hashes); err != nil {
		return nil, err
	}
	if len(hashes) > 0 {
		if err := ValidateThreshold(threshold, hashes[0].Hash.Config()); err != nil {
			return nil, err
		}
	}
	if threadCount < 1 {
		threadCount = 1
	}

	startTime := time.Now()
	total := len(hashes)
	logger.Info.Printf("Comparing %d hashes with threshold %d", total, threshold)
	reporter.Update(api.ProgressComparing, 0, total)

	rows := make([][]*apitype.Match, total)
	var processed int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threadCount)
	for i := range hashes {
		i := i
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			row, err := similarRow(hashes, i, threshold)
			if err != nil {
				return err
			}
			rows[i] = row
			reporter.Update(api.ProgressComparing, int(atomic.AddInt64(&processed, 1)), total)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	similar := make(map[string][]*apitype.Match, total)
	similarPairs := 0
	for i, hashed := range hashes {
		similar[hashed.ImageFile.Path()] = rows[i]
		similarPairs += len(rows[i])
	}

	if total > 1 {
		metrics.PairsComparedTotal.Add(float64(total * (total - 1)))
	}
	metrics.SimilarPairsTotal.Add(float64(similarPairs / 2))
	metrics.SearchDurationSeconds.WithLabelValues("compare").Observe(time.Since(startTime).Seconds())
	logger.Info.Printf("Found %d similar pairs in %s", similarPairs/2, time.Since(startTime).String())

	return similar, nil
}

func similarRow(hashes []*apitype.HashedImage, index int, threshold int) ([]*apitype.Match, error) {
	current := hashes[index]
	row := []*apitype.Match{}
	for j, other := range hashes {
		if j == index || other.ImageFile.Path() == current.ImageFile.Path() {
			continue
		}
		distance, err := current.Hash.Distance(other.Hash)
		if err != nil {
			return nil, err
		}
		if distance < threshold {
			row = append(row, &apitype.Match{ImageFile: other.ImageFile, Distance: distance})
		}
	}
	sort.Slice(row, func(i, j int) bool {
		if row[i].Distance != row[j].Distance {
			return row[i].Distance < row[j].Distance
		}
		return row[i].ImageFile.Path() < row[j].ImageFile.Path()
	})
	return row, nil
}
