package library

import (
	"context"
	"time"

	"github.com/google/uuid"
	"vincit.fi/similar-images/api"
	"vincit.fi/similar-images/api/apitype"
	"vincit.fi/similar-images/backend/internal/metrics"
	"vincit.fi/similar-images/backend/internal/phash"
	"vincit.fi/similar-images/common/logger"
)

type Library struct {
	hasher         *phash.Hasher
	hashCalculator *HashCalculator
	threshold      int
	threadCount    int
	reporter       api.ProgressReporter
	exporter       api.ResultExporter

	api.ImageLibrary
}

// NewLibrary creates a library that hashes with hasher and reports pairs
// closer than threshold. The exporter may be nil.
func NewLibrary(hasher *phash.Hasher, imageLoader api.ImageLoader, threshold int, threadCount int,
	reporter api.ProgressReporter, exporter api.ResultExporter) (*Library, error) {
	if err := ValidateThreshold(threshold, hasher.Config()); err != nil {
		return nil, err
	}
	if reporter == nil {
		reporter = api.NullProgressReporter{}
	}
	return &Library{
		hasher:         hasher,
		hashCalculator: NewHashCalculator(hasher, imageLoader, threadCount, reporter),
		threshold:      threshold,
		threadCount:    threadCount,
		reporter:       reporter,
		exporter:       exporter,
	}, nil
}

// SearchFolder fails immediately when directory cannot be listed. Errors of
// single images are part of the result.
func (s *Library) SearchFolder(ctx context.Context, directory string) (*apitype.SearchResult, error) {
	imageFiles, err := ListImageFiles(directory)
	if err != nil {
		logger.Error.Printf("Could not list directory '%s': %s", directory, err)
		return nil, err
	}
	return s.Search(ctx, imageFiles)
}

func (s *Library) Search(ctx context.Context, imageFiles []*apitype.ImageFile) (*apitype.SearchResult, error) {
	runId := uuid.New()
	startTime := time.Now()
	logger.Info.Printf("Starting search %s for %d files", runId, len(imageFiles))

	hashes, imageErrors, err := s.hashCalculator.GenerateHashes(ctx, imageFiles)
	if err != nil {
		return nil, err
	}

	similar, err := Compare(ctx, hashes, s.threshold, s.threadCount, s.reporter)
	if err != nil {
		return nil, err
	}

	result := &apitype.SearchResult{
		RunId:     runId,
		Config:    s.hasher.Config(),
		Threshold: s.threshold,
		Hashes:    hashes,
		Errors:    imageErrors,
		Similar:   similar,
	}

	if result.Empty() {
		logger.Warn.Printf("No valid images found")
	}

	if s.exporter != nil {
		exportStart := time.Now()
		if err := s.exporter.ExportResult(result); err != nil {
			s.reporter.Error("Error while exporting results", err)
			return nil, err
		}
		metrics.SearchDurationSeconds.WithLabelValues("export").Observe(time.Since(exportStart).Seconds())
	}

	logger.Info.Printf("Search %s done in %s", runId, time.Since(startTime).String())
	return result, nil
}

// CompareHashes runs only the comparison step on hashes computed elsewhere.
func (s *Library) CompareHashes(ctx context.Context, hashes []*apitype.HashedImage) (*apitype.SearchResult, error) {
	if err := CheckSameConfig(hashes); err != nil {
		return nil, err
	}
	if len(hashes) > 0 && hashes[0].Hash.Config() != s.hasher.Config() {
		return nil, &apitype.ConfigurationMismatchError{Expected: s.hasher.Config(), Actual: hashes[0].Hash.Config()}
	}
	similar, err := Compare(ctx, hashes, s.threshold, s.threadCount, s.reporter)
	if err != nil {
		return nil, err
	}
	return &apitype.SearchResult{
		RunId:     uuid.New(),
		Config:    s.hasher.Config(),
		Threshold: s.threshold,
		Hashes:    hashes,
		Similar:   similar,
	}, nil
}
