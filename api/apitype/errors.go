package apitype

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyDataset  = errors.New("no valid images found")
	ErrInvalidConfig = errors.New("invalid hash configuration")
)

// UnreadableFileError is returned when an image file cannot be opened or read.
type UnreadableFileError struct {
	Path string
	Err  error
}

func NewUnreadableFileError(path string, err error) *UnreadableFileError {
	return &UnreadableFileError{Path: path, Err: err}
}

func (s *UnreadableFileError) Error() string {
	return fmt.Sprintf("could not read '%s': %s", s.Path, s.Err)
}

func (s *UnreadableFileError) Unwrap() error {
	return s.Err
}

// DecodeError is returned when the file content is not a supported image.
type DecodeError struct {
	Path string
	Err  error
}

func NewDecodeError(path string, err error) *DecodeError {
	return &DecodeError{Path: path, Err: err}
}

func (s *DecodeError) Error() string {
	return fmt.Sprintf("could not decode '%s': %s", s.Path, s.Err)
}

func (s *DecodeError) Unwrap() error {
	return s.Err
}

// ConfigurationMismatchError is returned when hashes computed with different
// configurations are compared.
type ConfigurationMismatchError struct {
	Expected HashConfig
	Actual   HashConfig
}

func (s *ConfigurationMismatchError) Error() string {
	return fmt.Sprintf("hash configuration mismatch: expected %s, got %s", s.Expected, s.Actual)
}

// ErrorKind names the error for logging and metric labels.
func ErrorKind(err error) string {
	var unreadable *UnreadableFileError
	var decode *DecodeError
	var mismatch *ConfigurationMismatchError
	switch {
	case errors.As(err, &unreadable):
		return "unreadable"
	case errors.As(err, &decode):
		return "decode"
	case errors.As(err, &mismatch):
		return "configuration"
	}
	return "other"
}
