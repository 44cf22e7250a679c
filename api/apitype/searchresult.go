package apitype

import (
	"sort"

	"github.com/google/uuid"
)

type HashedImage struct {
	ImageFile *ImageFile
	Hash      *Hash
}

// ImageError records why one image was left out of the comparison.
type ImageError struct {
	ImageFile *ImageFile
	Err       error
}

func (s *ImageError) Error() string {
	return s.Err.Error()
}

func (s *ImageError) Unwrap() error {
	return s.Err
}

type Match struct {
	ImageFile *ImageFile
	Distance  int
}

// Pair is an unordered similar pair with First.Path() < Second.Path().
type Pair struct {
	First    *ImageFile
	Second   *ImageFile
	Distance int
}

// SearchResult is built once per run and never updated afterwards.
type SearchResult struct {
	RunId     uuid.UUID
	Config    HashConfig
	Threshold int
	Hashes    []*HashedImage
	Errors    []*ImageError
	// Similar maps every hashed image path to the images closer than
	// Threshold, ordered by distance and then path.
	Similar map[string][]*Match
}

func (s *SearchResult) Empty() bool {
	return len(s.Hashes) == 0
}

// Err returns ErrEmptyDataset when no image could be hashed. An empty
// dataset is not a failed run.
func (s *SearchResult) Err() error {
	if s.Empty() {
		return ErrEmptyDataset
	}
	return nil
}

func (s *SearchResult) SimilarTo(path string) []*Match {
	return s.Similar[path]
}

// UniquePairs reports each similar pair once, sorted by the first and then
// the second path.
func (s *SearchResult) UniquePairs() []*Pair {
	var pairs []*Pair
	for _, hashed := range s.Hashes {
		path := hashed.ImageFile.Path()
		for _, match := range s.Similar[path] {
			if path < match.ImageFile.Path() {
				pairs = append(pairs, &Pair{
					First:    hashed.ImageFile,
					Second:   match.ImageFile,
					Distance: match.Distance,
				})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].First.Path() != pairs[j].First.Path() {
			return pairs[i].First.Path() < pairs[j].First.Path()
		}
		return pairs[i].Second.Path() < pairs[j].Second.Path()
	})
	return pairs
}
