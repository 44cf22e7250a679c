package api

import "vincit.fi/similar-images/api/apitype"

type UpdateProgressCommand struct {
	Name    string
	Current int
	Total   int
	apitype.Command
}

type ImageFailedCommand struct {
	ImageFile *apitype.ImageFile
	Err       error
	apitype.Command
}

type ErrorCommand struct {
	Message string
	apitype.Command
}
