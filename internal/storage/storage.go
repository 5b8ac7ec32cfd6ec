// Package storage implements the backing stores of the virtual file system.
// A [Store] exposes files below its own root through store-relative,
// forward-slash separated paths; the root itself is the empty path. Two
// variants exist: [DirStore], rooted at a real directory, and [ArchiveStore],
// rooted at an indexed archive file.
package storage

import (
	"io"

	"github.com/desertwitch/govfs/internal/schema"
)

// Kind identifies the variant of a [Store].
type Kind int

const (
	// KindDirectory is a [DirStore].
	KindDirectory Kind = iota

	// KindArchive is an [ArchiveStore].
	KindArchive
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindArchive:
		return "archive"
	default:
		return "unknown"
	}
}

// Capability is a set of optional operations a [Store] supports.
type Capability uint8

const (
	// CapWrite allows [Store.OpenWrite].
	CapWrite Capability = 1 << iota

	// CapAppend allows [Store.OpenAppend].
	CapAppend

	// CapRemove allows [Store.Remove].
	CapRemove

	// CapMkdir allows [Store.Mkdir].
	CapMkdir

	// CapCheapBackSeek marks stores whose streams seek backwards without
	// re-reading from the start. Archive entries lacking it are reopened and
	// skipped forward on every backward seek.
	CapCheapBackSeek
)

// Has reports whether all capabilities of o are part of c.
func (c Capability) Has(o Capability) bool {
	return c&o == o
}

// Stream is a file opened on a [Store]. Positions are absolute byte offsets
// from the start of the file.
type Stream interface {
	io.Reader
	io.Writer
	io.Closer

	// Seek moves to an absolute position.
	Seek(pos int64) error

	// Tell returns the current position.
	Tell() int64

	// Length returns the current size of the file.
	Length() (int64, error)

	// Flush forces written bytes down to the store.
	Flush() error

	// EOF reports whether the position is at or past the end of the file.
	EOF() bool
}

// Store is the capability contract of a backing store.
type Store interface {
	// Root returns the real path the store is rooted at, which also serves
	// as the store's identity.
	Root() string

	// Kind returns the variant of the store.
	Kind() Kind

	// Capabilities returns the optional operations the store supports.
	Capabilities() Capability

	// Exists reports whether a file or directory exists at rel.
	Exists(rel string) bool

	// Stat returns the metadata of the file or directory at rel.
	Stat(rel string) (schema.Metadata, error)

	// List returns the names of the direct children of the directory at rel.
	List(rel string) ([]string, error)

	// OpenRead opens the file at rel for reading.
	OpenRead(rel string) (Stream, error)

	// OpenWrite creates or truncates the file at rel and opens it for
	// writing.
	OpenWrite(rel string) (Stream, error)

	// OpenAppend opens the file at rel for writing at its end, creating it
	// when absent.
	OpenAppend(rel string) (Stream, error)

	// Length returns the size of the file at rel.
	Length(rel string) (int64, error)

	// Mkdir creates the directory at rel including all missing parents.
	Mkdir(rel string) error

	// Remove deletes the file or empty directory at rel.
	Remove(rel string) error

	// Close releases the store.
	Close() error
}
