package apitype

import (
	"fmt"
	"math/bits"
	"strings"
)

const wordBits = 64

// Hash is an immutable bit vector of HashSize² bits in row-major order of
// the low-frequency sub-block.
type Hash struct {
	config HashConfig
	length int
	words  []uint64
}

func NewHash(config HashConfig, values []bool) (*Hash, error) {
	if len(values) != config.Bits() {
		return nil, fmt.Errorf("%w: %d bits given for %s", ErrInvalidConfig, len(values), config)
	}
	hash := newEmptyHash(config)
	for i, value := range values {
		if value {
			hash.words[i/wordBits] |= 1 << uint(i%wordBits)
		}
	}
	return hash, nil
}

func newEmptyHash(config HashConfig) *Hash {
	length := config.Bits()
	return &Hash{
		config: config,
		length: length,
		words:  make([]uint64, (length+wordBits-1)/wordBits),
	}
}

// ParseHash reads a hash in the format written by String.
func ParseHash(config HashConfig, value string) (*Hash, error) {
	length := config.Bits()
	if len(value) != (length+3)/4 {
		return nil, fmt.Errorf("%w: hash '%s' has wrong length for %s", ErrInvalidConfig, value, config)
	}
	hash := newEmptyHash(config)
	for nibbleIndex, char := range strings.ToLower(value) {
		var nibble int
		switch {
		case char >= '0' && char <= '9':
			nibble = int(char - '0')
		case char >= 'a' && char <= 'f':
			nibble = int(char-'a') + 10
		default:
			return nil, fmt.Errorf("invalid hex character '%c' in hash '%s'", char, value)
		}
		for offset := 0; offset < 4; offset++ {
			i := nibbleIndex*4 + offset
			if nibble&(1<<uint(3-offset)) == 0 {
				continue
			}
			if i >= length {
				return nil, fmt.Errorf("hash '%s' has bits set beyond length %d", value, length)
			}
			hash.words[i/wordBits] |= 1 << uint(i%wordBits)
		}
	}
	return hash, nil
}

func (s *Hash) Config() HashConfig {
	return s.config
}

func (s *Hash) Len() int {
	return s.length
}

func (s *Hash) Bit(i int) bool {
	return s.words[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

func (s *Hash) OnesCount() int {
	count := 0
	for _, word := range s.words {
		count += bits.OnesCount64(word)
	}
	return count
}

// Distance returns the Hamming distance between the two hashes.
func (s *Hash) Distance(other *Hash) (int, error) {
	if s.config != other.config {
		return 0, &ConfigurationMismatchError{Expected: s.config, Actual: other.config}
	}
	distance := 0
	for i, word := range s.words {
		distance += bits.OnesCount64(word ^ other.words[i])
	}
	return distance, nil
}

func (s *Hash) Equal(other *Hash) bool {
	if other == nil || s.config != other.config {
		return false
	}
	for i, word := range s.words {
		if word != other.words[i] {
			return false
		}
	}
	return true
}

// String formats the hash as hex, four bits per character, first bit most
// significant.
func (s *Hash) String() string {
	var builder strings.Builder
	for start := 0; start < s.length; start += 4 {
		nibble := 0
		for offset := 0; offset < 4; offset++ {
			nibble <<= 1
			if i := start + offset; i < s.length && s.Bit(i) {
				nibble |= 1
			}
		}
		builder.WriteByte("0123456789abcdef"[nibble])
	}
	return builder.String()
}
