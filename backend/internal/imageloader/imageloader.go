package imageloader

import (
	"image"
	"os"
	"time"

	"vincit.fi/similar-images/api"
	"vincit.fi/similar-images/api/apitype"
	"vincit.fi/similar-images/common/logger"
)

func NewImageLoader(exifRotate bool) api.ImageLoader {
	logger.Debug.Printf("Initializing image loader (exif rotate: %t)", exifRotate)
	return &FileImageLoader{
		exifRotate: exifRotate,
	}
}

type FileImageLoader struct {
	exifRotate bool

	api.ImageLoader
}

// LoadImage reads and decodes the file. Failures are reported as
// apitype.UnreadableFileError or apitype.DecodeError.
func (s *FileImageLoader) LoadImage(imageFile *apitype.ImageFile) (image.Image, error) {
	path := imageFile.Path()

	startTime := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apitype.NewUnreadableFileError(path, err)
	}

	decoded, err := decodeImage(data)
	if err != nil {
		return nil, apitype.NewDecodeError(path, err)
	}

	if s.exifRotate {
		if orientation := LoadExifOrientation(data); orientation != exifUnchangedOrientation {
			logger.Trace.Printf("'%s': Applying exif orientation %d", path, orientation)
			decoded = ExifRotateImage(decoded, orientation)
		}
	}
	logger.Trace.Printf("'%s': Image loaded in %s", path, time.Since(startTime).String())

	return decoded, nil
}
