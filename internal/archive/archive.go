// Package archive defines the contract between the virtual file system and
// the decoders of archive container formats. A [Decoder] opens an archive
// file into an [Index], which lists the archive's entries and opens them for
// reading. Formats supporting in-place modification additionally implement
// [WritableIndex].
package archive

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/desertwitch/govfs/internal/pathing"
)

// Entry describes a single file or directory stored within an archive. Names
// are normalized virtual paths relative to the archive's root.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Index is an opened and indexed archive.
type Index interface {
	// Path returns the real path of the archive file.
	Path() string

	// Entries returns all entries, including implicit parent directories,
	// sorted by name.
	Entries() []Entry

	// Lookup returns the entry of the given normalized name.
	Lookup(name string) (Entry, bool)

	// Open opens a file entry for reading the decompressed bytes. Indexes
	// able to seek within an entry natively return an [io.ReadSeekCloser].
	Open(name string) (io.ReadCloser, error)

	// Close releases the archive file.
	Close() error
}

// WritableIndex is an [Index] whose format supports modifying entries in
// place.
type WritableIndex interface {
	Index

	// Put creates or replaces a file entry with the given content.
	Put(name string, data []byte) error

	// Delete removes a file entry.
	Delete(name string) error
}

// SeekableIndex is implemented by indexes whose [Index.Open] readers seek
// natively, which makes seeking backwards within an entry cheap.
type SeekableIndex interface {
	Index

	// Seekable reports whether opened entries implement [io.Seeker].
	Seekable() bool
}

// Decoder opens archive files of one container format.
type Decoder interface {
	// Name returns the short name of the format, e.g. "zip".
	Name() string

	// Extensions returns the lower-case file extensions (including the dot)
	// the format is usually stored with.
	Extensions() []string

	// Open opens and indexes the archive file at path.
	Open(path string) (Index, error)
}

// entryTable is the name-keyed entry bookkeeping shared by all indexes. Parent
// directories of every file are added implicitly.
type entryTable struct {
	entries map[string]Entry
}

func newEntryTable() *entryTable {
	return &entryTable{
		entries: make(map[string]Entry),
	}
}

// add records an entry under its normalized name. Entries with names that
// cannot be expressed as virtual paths are skipped.
func (t *entryTable) add(archivePath string, e Entry) (string, bool) {
	name, err := pathing.Normalize(e.Name)
	if err != nil || name == "" {
		slog.Warn("Skipped archive entry: unusable name",
			"archive", archivePath,
			"entry", e.Name,
			"err", err,
		)

		return "", false
	}
	e.Name = name

	t.entries[name] = e

	for dir := parentOf(name); dir != ""; dir = parentOf(dir) {
		if _, exists := t.entries[dir]; exists {
			break
		}
		t.entries[dir] = Entry{Name: dir, IsDir: true, ModTime: e.ModTime}
	}

	return name, true
}

func (t *entryTable) remove(name string) {
	delete(t.entries, name)
}

func (t *entryTable) lookup(name string) (Entry, bool) {
	e, ok := t.entries[name]

	return e, ok
}

func (t *entryTable) list() []Entry {
	list := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		list = append(list, e)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})

	return list
}

// normalizedName returns the virtual path an archive member name maps to.
func normalizedName(name string) (string, bool) {
	n, err := pathing.Normalize(name)
	if err != nil || n == "" {
		return "", false
	}

	return n, true
}

func parentOf(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[:i]
	}

	return ""
}

// nopSeekCloser turns an [io.ReadSeeker] into an [io.ReadSeekCloser].
type nopSeekCloser struct {
	io.ReadSeeker
}

func (nopSeekCloser) Close() error {
	return nil
}

// checkNotEmpty refuses zero-length files, which several container formats
// would otherwise accept as valid empty archives while probing.
func checkNotEmpty(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat: %w", err)
	}

	if info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyArchive, path)
	}

	return nil
}
