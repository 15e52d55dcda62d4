package contentapi

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrUnexpectedStatus is returned for responses outside the 2xx range.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrMissingConfig is returned when a required setting is empty.
	ErrMissingConfig = errors.New("missing content api setting")

	// ErrEmptyAPI is returned when no API name is given.
	ErrEmptyAPI = errors.New("api name is required")
)
