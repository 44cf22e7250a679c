package imageloader

import (
	"bytes"

	// Decoders beyond the ones imaging registers
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var jpegMagic = []byte{0xFF, 0xD8, 0xFF}

func isJpeg(data []byte) bool {
	return bytes.HasPrefix(data, jpegMagic)
}
