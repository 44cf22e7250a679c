package imageloader

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	"vincit.fi/similar-images/common/logger"
)

const exifUnchangedOrientation = 1

// LoadExifOrientation returns the EXIF orientation tag (1-8) or 1 when the
// data carries no usable EXIF block.
func LoadExifOrientation(data []byte) int {
	decodedExif, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Trace.Printf("No exif data: %s", err)
		return exifUnchangedOrientation
	}
	tag, err := decodedExif.Get(exif.Orientation)
	if err != nil {
		return exifUnchangedOrientation
	}
	orientation, err := tag.Int(0)
	if err != nil || orientation < 1 || orientation > 8 {
		return exifUnchangedOrientation
	}
	return orientation
}

func ExifRotateImage(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}
