package mount

import "errors"

var (
	// ErrNotMounted occurs when a store is addressed by a root that is not
	// part of the mount table.
	ErrNotMounted = errors.New("store is not mounted")

	// ErrNotFound occurs when no mounted store contains a virtual path.
	ErrNotFound = errors.New("path not found in search path")

	// ErrNilStore occurs when mounting a nil store.
	ErrNilStore = errors.New("store is nil")
)
