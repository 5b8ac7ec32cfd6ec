package platform

import "errors"

var (
	// ErrNoAppName occurs when a preference directory is requested without
	// an application name.
	ErrNoAppName = errors.New("application name is empty")

	// ErrNoHomeDir occurs when the home directory of the user cannot be
	// determined.
	ErrNoHomeDir = errors.New("home directory is unknown")
)
