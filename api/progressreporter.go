package api

import "vincit.fi/similar-images/api/apitype"

type ProgressReporter interface {
	Update(name string, current int, total int)
	ImageFailed(imageFile *apitype.ImageFile, err error)
	Error(error string, err error)
}

type SenderProgressReporter struct {
	sender Sender

	ProgressReporter
}

func NewSenderProgressReporter(sender Sender) ProgressReporter {
	return SenderProgressReporter{
		sender: sender,
	}
}

func (s SenderProgressReporter) Update(name string, current int, total int) {
	s.sender.SendCommandToTopic(ProcessStatusUpdated, &UpdateProgressCommand{
		Name:    name,
		Current: current,
		Total:   total,
	})
}

func (s SenderProgressReporter) ImageFailed(imageFile *apitype.ImageFile, err error) {
	s.sender.SendCommandToTopic(ImageFailed, &ImageFailedCommand{
		ImageFile: imageFile,
		Err:       err,
	})
}

func (s SenderProgressReporter) Error(error string, err error) {
	s.sender.SendError(error, err)
}

// NullProgressReporter drops every update.
type NullProgressReporter struct {
	ProgressReporter
}

func (s NullProgressReporter) Update(string, int, int) {}

func (s NullProgressReporter) ImageFailed(*apitype.ImageFile, error) {}

func (s NullProgressReporter) Error(string, error) {}
