package recommend

import "errors"

var (
	// ErrInvalidInput marks requests rejected before any work is done.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUploadTooLarge is returned when the upload exceeds the configured cap.
	ErrUploadTooLarge = errors.New("upload too large")
)
