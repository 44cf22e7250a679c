package apitype

import (
	"path/filepath"
)

type ImageId int64

const NoImage = ImageId(-1)

// ImageFile identifies one input image. The identifier reported in results
// is the joined path.
type ImageFile struct {
	id        ImageId
	directory string
	filename  string
	path      string
}

var EmptyImageFile = ImageFile{id: NoImage, path: ""}

func NewImageFileWithId(id ImageId, fileDir string, fileName string) *ImageFile {
	return &ImageFile{
		id:        id,
		directory: fileDir,
		filename:  fileName,
		path:      filepath.Join(fileDir, fileName),
	}
}

func NewImageFile(fileDir string, fileName string) *ImageFile {
	return NewImageFileWithId(NoImage, fileDir, fileName)
}

func NewImageFileFromPath(path string) *ImageFile {
	return NewImageFile(filepath.Dir(path), filepath.Base(path))
}

func GetEmptyImageFile() *ImageFile {
	return &EmptyImageFile
}

func (s *ImageFile) IsValid() bool {
	return s != nil && s.path != ""
}

func (s *ImageFile) Id() ImageId {
	if s != nil {
		return s.id
	} else {
		return NoImage
	}
}

func (s *ImageFile) String() string {
	if s != nil {
		if s.IsValid() {
			return "ImageFile{" + s.filename + "}"
		} else {
			return "ImageFile<invalid>"
		}
	} else {
		return "ImageFile<nil>"
	}
}

func (s *ImageFile) Path() string {
	if s != nil {
		return s.path
	} else {
		return ""
	}
}

func (s *ImageFile) Directory() string {
	if s != nil {
		return s.directory
	} else {
		return ""
	}
}

func (s *ImageFile) FileName() string {
	if s != nil {
		return s.filename
	} else {
		return ""
	}
}
