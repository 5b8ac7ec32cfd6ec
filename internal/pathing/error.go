package pathing

import "errors"

var (
	// ErrBackslash occurs when a virtual path contains a backslash. Virtual
	// paths are always separated by forward slashes, regardless of platform.
	ErrBackslash = errors.New("virtual path contains a backslash")

	// ErrEscapesRoot occurs when a path would climb above the root it is
	// relative to, e.g. "a/../../b".
	ErrEscapesRoot = errors.New("path escapes its root")

	// ErrNulByte occurs when a path contains a NUL byte.
	ErrNulByte = errors.New("path contains a NUL byte")
)
