package api

import (
	"context"

	"vincit.fi/similar-images/api/apitype"
)

type ImageLibrary interface {
	SearchFolder(ctx context.Context, directory string) (*apitype.SearchResult, error)
	Search(ctx context.Context, imageFiles []*apitype.ImageFile) (*apitype.SearchResult, error)
}

// ResultExporter stores the outcome of one search run.
type ResultExporter interface {
	ExportResult(result *apitype.SearchResult) error
}
