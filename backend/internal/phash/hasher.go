package phash

import (
	"image"

	"vincit.fi/similar-images/api/apitype"
)

// Hasher computes perceptual hashes with a configuration fixed at
// construction.
type Hasher struct {
	config       apitype.HashConfig
	preprocessor *Preprocessor
}

func NewHasher(config apitype.HashConfig, resampler Resampler) (*Hasher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Hasher{
		config:       config,
		preprocessor: NewPreprocessor(config.ImageSize, resampler),
	}, nil
}

func NewDefaultHasher() *Hasher {
	resampler, _ := ResamplerByName(DefaultResampler)
	hasher, _ := NewHasher(apitype.DefaultHashConfig(), resampler)
	return hasher
}

func (s *Hasher) Config() apitype.HashConfig {
	return s.config
}

func (s *Hasher) HashImage(img image.Image) (*apitype.Hash, error) {
	grid := s.preprocessor.Grid(img)
	return Binarize(DCT2(grid), s.config)
}
