package apitype

import (
	"fmt"
)

const (
	DefaultImageSize = 32
	DefaultHashSize  = 8
)

// HashConfig fixes the grid and hash sizes for a whole comparison run.
// Hashes are only comparable when computed with an identical HashConfig.
type HashConfig struct {
	ImageSize int
	HashSize  int
}

func DefaultHashConfig() HashConfig {
	return HashConfig{
		ImageSize: DefaultImageSize,
		HashSize:  DefaultHashSize,
	}
}

func NewHashConfig(imageSize int, hashSize int) (HashConfig, error) {
	config := HashConfig{ImageSize: imageSize, HashSize: hashSize}
	return config, config.Validate()
}

func (s HashConfig) Validate() error {
	if s.ImageSize < 1 {
		return fmt.Errorf("%w: image size must be positive, was %d", ErrInvalidConfig, s.ImageSize)
	}
	if s.HashSize < 1 {
		return fmt.Errorf("%w: hash size must be positive, was %d", ErrInvalidConfig, s.HashSize)
	}
	if s.HashSize > s.ImageSize {
		return fmt.Errorf("%w: hash size %d exceeds image size %d", ErrInvalidConfig, s.HashSize, s.ImageSize)
	}
	return nil
}

// Bits is the length of a hash computed with this configuration.
func (s HashConfig) Bits() int {
	return s.HashSize * s.HashSize
}

func (s HashConfig) String() string {
	return fmt.Sprintf("HashConfig{imageSize=%d, hashSize=%d}", s.ImageSize, s.HashSize)
}
