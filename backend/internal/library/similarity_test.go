package library

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vincit.fi/similar-images/api"
	"vincit.fi/similar-images/api/apitype"
)

func TestCompare_ThresholdBoundary(t *testing.T) {
	a := assert.New(t)

	for _, threshold := range []int{0, 1, 7, 20, 63} {
		hashes := []*apitype.HashedImage{
			hashed("a.png", hashWithBits(t, 0)),
			hashed("b.png", hashWithBits(t, threshold)),
		}

		t.Run("Distance equal to threshold is not similar", func(t *testing.T) {
			similar, err := Compare(context.Background(), hashes, threshold, 1, api.NullProgressReporter{})
			if a.NoError(err) {
				a.Empty(similar[hashes[0].ImageFile.Path()])
				a.Empty(similar[hashes[1].ImageFile.Path()])
			}
		})

		t.Run("Distance below threshold is similar", func(t *testing.T) {
			similar, err := Compare(context.Background(), hashes, threshold+1, 1, api.NullProgressReporter{})
			if a.NoError(err) {
				matches := similar[hashes[0].ImageFile.Path()]
				if a.Len(matches, 1) {
					a.Equal(hashes[1].ImageFile, matches[0].ImageFile)
					a.Equal(threshold, matches[0].Distance)
				}
			}
		})
	}
}

func TestCompare_Ordering(t *testing.T) {
	a := assert.New(t)
	hashes := []*apitype.HashedImage{
		hashed("base.png", hashWithBits(t, 0)),
		hashed("d.png", hashWithBits(t, 5)),
		hashed("c.png", hashWithBits(t, 2)),
		hashed("b.png", hashWithBits(t, 5)),
		hashed("a.png", hashWithBits(t, 30)),
	}

	similar, err := Compare(context.Background(), hashes, 20, 3, api.NullProgressReporter{})

	require.NoError(t, err)
	matches := similar[hashes[0].ImageFile.Path()]
	if a.Len(matches, 3) {
		a.Equal("c.png", matches[0].ImageFile.FileName())
		a.Equal(2, matches[0].Distance)
		a.Equal("b.png", matches[1].ImageFile.FileName())
		a.Equal("d.png", matches[2].ImageFile.FileName())
	}

	t.Run("Every image has an entry", func(t *testing.T) {
		a.Len(similar, len(hashes))
		a.NotNil(similar[hashes[4].ImageFile.Path()])
		a.Empty(similar[hashes[4].ImageFile.Path()])
	})

	t.Run("Self pairs are excluded", func(t *testing.T) {
		for _, hashedImage := range hashes {
			for _, match := range similar[hashedImage.ImageFile.Path()] {
				a.NotEqual(hashedImage.ImageFile.Path(), match.ImageFile.Path())
			}
		}
	})

	t.Run("Results are symmetric", func(t *testing.T) {
		for _, hashedImage := range hashes {
			for _, match := range similar[hashedImage.ImageFile.Path()] {
				found := false
				for _, reverse := range similar[match.ImageFile.Path()] {
					if reverse.ImageFile.Path() == hashedImage.ImageFile.Path() {
						found = true
						a.Equal(match.Distance, reverse.Distance)
					}
				}
				a.True(found)
			}
		}
	})
}

func TestCompare_Errors(t *testing.T) {
	a := assert.New(t)

	t.Run("Configuration mismatch", func(t *testing.T) {
		other, err := apitype.NewHash(apitype.HashConfig{ImageSize: 16, HashSize: 8}, make([]bool, 64))
		require.NoError(t, err)
		hashes := []*apitype.HashedImage{
			hashed("a.png", hashWithBits(t, 0)),
			hashed("b.png", other),
		}

		_, err = Compare(context.Background(), hashes, 20, 1, api.NullProgressReporter{})

		var mismatch *apitype.ConfigurationMismatchError
		a.True(errors.As(err, &mismatch))
	})

	t.Run("Threshold out of range", func(t *testing.T) {
		hashes := []*apitype.HashedImage{hashed("a.png", hashWithBits(t, 0))}

		_, err := Compare(context.Background(), hashes, 65, 1, api.NullProgressReporter{})
		a.True(errors.Is(err, apitype.ErrInvalidConfig))

		_, err = Compare(context.Background(), hashes, -1, 1, api.NullProgressReporter{})
		a.True(errors.Is(err, apitype.ErrInvalidConfig))
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		hashes := []*apitype.HashedImage{
			hashed("a.png", hashWithBits(t, 0)),
			hashed("b.png", hashWithBits(t, 1)),
		}

		_, err := Compare(ctx, hashes, 20, 1, api.NullProgressReporter{})

		a.True(errors.Is(err, context.Canceled))
	})
}

func TestCompare_Empty(t *testing.T) {
	a := assert.New(t)

	similar, err := Compare(context.Background(), nil, 20, 1, api.NullProgressReporter{})

	a.NoError(err)
	a.Empty(similar)
}
