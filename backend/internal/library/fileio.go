package library

import (
	"os"
	"path/filepath"
	"sort"

	"vincit.fi/similar-images/api/apitype"
	"vincit.fi/similar-images/common/logger"
)

// ListImageFiles returns every non-directory entry of dir, sorted by name.
// No extension filtering is done; files that are not images fail later
// when decoded.
func ListImageFiles(dir string) ([]*apitype.ImageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	logger.Debug.Printf("Scanning directory '%s'", dir)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if isDirectory(dir, entry) {
			logger.Debug.Printf("Skipping directory '%s'", entry.Name())
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	imageFiles := make([]*apitype.ImageFile, len(names))
	for i, name := range names {
		imageFiles[i] = apitype.NewImageFileWithId(apitype.ImageId(i+1), dir, name)
	}
	logger.Debug.Printf("Found %d files", len(imageFiles))

	return imageFiles, nil
}

func isDirectory(dir string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink != 0 {
		if info, err := os.Stat(filepath.Join(dir, entry.Name())); err == nil {
			return info.IsDir()
		}
	}
	return false
}
