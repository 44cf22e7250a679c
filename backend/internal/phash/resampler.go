package phash

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"vincit.fi/similar-images/api/apitype"
)

const DefaultResampler = "lanczos"

// Resampler scales an image to the hashing grid. Implementations must be
// deterministic for a given input.
type Resampler interface {
	Resize(img image.Image, size apitype.Size) image.Image
	Name() string
}

type ImagingResampler struct {
	name   string
	filter imaging.ResampleFilter
}

func (s *ImagingResampler) Resize(img image.Image, size apitype.Size) image.Image {
	return imaging.Resize(img, size.Width(), size.Height(), s.filter)
}

func (s *ImagingResampler) Name() string {
	return s.name
}

type NfntResampler struct {
	name          string
	interpolation resize.InterpolationFunction
}

func (s *NfntResampler) Resize(img image.Image, size apitype.Size) image.Image {
	return resize.Resize(uint(size.Width()), uint(size.Height()), img, s.interpolation)
}

func (s *NfntResampler) Name() string {
	return s.name
}

var resamplers = map[string]Resampler{
	"lanczos":      &ImagingResampler{name: "lanczos", filter: imaging.Lanczos},
	"box":          &ImagingResampler{name: "box", filter: imaging.Box},
	"linear":       &ImagingResampler{name: "linear", filter: imaging.Linear},
	"catmullrom":   &ImagingResampler{name: "catmullrom", filter: imaging.CatmullRom},
	"nfnt-lanczos": &NfntResampler{name: "nfnt-lanczos", interpolation: resize.Lanczos3},
	"nfnt-bicubic": &NfntResampler{name: "nfnt-bicubic", interpolation: resize.Bicubic},
}

func ResamplerByName(name string) (Resampler, error) {
	if resampler, ok := resamplers[strings.ToLower(name)]; ok {
		return resampler, nil
	}
	return nil, fmt.Errorf("%w: unknown resampler '%s', expected one of: %s", apitype.ErrInvalidConfig, name, strings.Join(ResamplerNames(), ", "))
}

func ResamplerNames() []string {
	names := make([]string, 0, len(resamplers))
	for name := range resamplers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
