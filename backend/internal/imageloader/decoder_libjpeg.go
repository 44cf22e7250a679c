//go:build libjpeg

package imageloader

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/pixiv/go-libjpeg/jpeg"
)

var options = &jpeg.DecoderOptions{}

func decodeImage(data []byte) (image.Image, error) {
	if isJpeg(data) {
		return jpeg.Decode(bytes.NewReader(data), options)
	}
	return imaging.Decode(bytes.NewReader(data))
}
