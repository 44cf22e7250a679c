package library

import (
	"sync"

	"vincit.fi/similar-images/api"
	"vincit.fi/similar-images/api/apitype"
)

type recordingReporter struct {
	mux     sync.Mutex
	updates map[string]int
	failed  []*apitype.ImageFile
	errors  []string

	api.ProgressReporter
}

func (s *recordingReporter) Update(name string, current int, total int) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.updates == nil {
		s.updates = map[string]int{}
	}
	if current > s.updates[name] {
		s.updates[name] = current
	}
}

func (s *recordingReporter) ImageFailed(imageFile *apitype.ImageFile, err error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.failed = append(s.failed, imageFile)
}

func (s *recordingReporter) Error(message string, err error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.errors = append(s.errors, message)
}

func (s *recordingReporter) maxProgress(name string) int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.updates[name]
}
