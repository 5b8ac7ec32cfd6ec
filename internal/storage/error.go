package storage

import "errors"

var (
	// ErrNotExist occurs when a store-relative path does not exist.
	ErrNotExist = errors.New("path does not exist in store")

	// ErrNotDirectory occurs when a directory operation targets a file, or a
	// store root is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrIsDirectory occurs when a file operation targets a directory.
	ErrIsDirectory = errors.New("is a directory")

	// ErrReadOnly occurs when a modifying operation targets a store without
	// the respective [Capability].
	ErrReadOnly = errors.New("store is read-only")

	// ErrRemoveRoot occurs when the root of a store is to be removed.
	ErrRemoveRoot = errors.New("refusing to remove the store root")

	// ErrStreamClosed occurs when a [Stream] is used after being closed.
	ErrStreamClosed = errors.New("stream is closed")

	// ErrNotWritable occurs when a read-only [Stream] is written to.
	ErrNotWritable = errors.New("stream is not writable")

	// ErrNotReadable occurs when a write-only [Stream] is read from.
	ErrNotReadable = errors.New("stream is not readable")

	// ErrSeekOutOfRange occurs when seeking to a negative position, or past
	// the end of a stream that cannot grow.
	ErrSeekOutOfRange = errors.New("seek position out of range")
)
