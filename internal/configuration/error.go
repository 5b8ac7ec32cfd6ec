package configuration

import "errors"

var (
	// ErrInvalidMount occurs when a mount specification cannot be parsed.
	ErrInvalidMount = errors.New("invalid mount specification")

	// ErrInvalidValue occurs when a setting holds a malformed value.
	ErrInvalidValue = errors.New("invalid setting value")
)
