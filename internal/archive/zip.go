package archive

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/klauspost/compress/zip"
)

// ZipDecoder opens zip archives (and the zip-based .pk3/.pak package
// formats) using the klauspost/compress zip implementation.
type ZipDecoder struct{}

// Name returns the format name.
func (*ZipDecoder) Name() string {
	return "zip"
}

// Extensions returns the extensions zip archives are stored with.
func (*ZipDecoder) Extensions() []string {
	return []string{".zip", ".pk3", ".pak"}
}

// Open opens and indexes a zip archive.
func (*ZipDecoder) Open(path string) (Index, error) {
	if err := checkNotEmpty(path); err != nil {
		return nil, fmt.Errorf("(archive-zip) %w", err)
	}

	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("(archive-zip) failed to open: %w", err)
	}

	idx := &zipIndex{
		path:    path,
		reader:  rc,
		table:   newEntryTable(),
		members: make(map[string]*zip.File),
	}

	for _, f := range rc.File {
		isDir := strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir()

		e := Entry{
			Name:    f.Name,
			Size:    int64(f.UncompressedSize64), //nolint:gosec
			ModTime: f.Modified,
			IsDir:   isDir,
		}
		if isDir {
			e.Size = 0
		}

		name, ok := idx.table.add(path, e)
		if ok && !isDir {
			idx.members[name] = f
		}
	}

	return idx, nil
}

type zipIndex struct {
	path    string
	reader  *zip.ReadCloser
	table   *entryTable
	members map[string]*zip.File
	closed  atomic.Bool
}

func (z *zipIndex) Path() string {
	return z.path
}

func (z *zipIndex) Entries() []Entry {
	return z.table.list()
}

func (z *zipIndex) Lookup(name string) (Entry, bool) {
	return z.table.lookup(name)
}

func (z *zipIndex) Open(name string) (io.ReadCloser, error) {
	if z.closed.Load() {
		return nil, fmt.Errorf("(archive-zip) %w", ErrIndexClosed)
	}

	e, ok := z.table.lookup(name)
	if !ok {
		return nil, fmt.Errorf("(archive-zip) %w: %s", ErrEntryNotFound, name)
	}
	if e.IsDir {
		return nil, fmt.Errorf("(archive-zip) %w: %s", ErrIsDirectory, name)
	}

	rc, err := z.members[name].Open()
	if err != nil {
		return nil, fmt.Errorf("(archive-zip) failed to open entry %s: %w", name, err)
	}

	return rc, nil
}

func (z *zipIndex) Close() error {
	if z.closed.Swap(true) {
		return nil
	}

	if err := z.reader.Close(); err != nil {
		return fmt.Errorf("(archive-zip) failed to close: %w", err)
	}

	return nil
}
