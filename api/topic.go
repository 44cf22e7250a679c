package api

type Topic string

const (
	ProcessStatusUpdated Topic = "process-status-updated"
	ImageFailed          Topic = "image-failed"
	ShowError            Topic = "show-error"
)

const (
	ProgressHashing   = "Hashing"
	ProgressComparing = "Comparing"
)
