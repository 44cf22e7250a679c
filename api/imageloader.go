package api

import (
	"image"

	"vincit.fi/similar-images/api/apitype"
)

type ImageLoader interface {
	LoadImage(*apitype.ImageFile) (image.Image, error)
}
