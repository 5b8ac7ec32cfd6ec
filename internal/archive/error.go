package archive

import "errors"

var (
	// ErrUnsupportedArchive occurs when no registered [Decoder] accepts a file.
	ErrUnsupportedArchive = errors.New("unsupported archive format")

	// ErrEntryNotFound occurs when an entry is not part of an archive's index.
	ErrEntryNotFound = errors.New("entry not found in archive")

	// ErrIsDirectory occurs when a directory entry is opened for reading.
	ErrIsDirectory = errors.New("entry is a directory")

	// ErrEmptyArchive occurs when an archive file has no content at all.
	ErrEmptyArchive = errors.New("archive file is empty")

	// ErrIndexClosed occurs when an [Index] is used after [Index.Close].
	ErrIndexClosed = errors.New("archive index is closed")
)
