package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// TarDecoder opens uncompressed tar archives. Entries are served as section
// readers directly from the archive file and are therefore natively seekable.
type TarDecoder struct{}

// Name returns the format name.
func (*TarDecoder) Name() string {
	return "tar"
}

// Extensions returns the extensions tar archives are stored with.
func (*TarDecoder) Extensions() []string {
	return []string{".tar"}
}

// Open opens and indexes a tar archive, recording the data offset of every
// regular file.
func (*TarDecoder) Open(path string) (Index, error) {
	if err := checkNotEmpty(path); err != nil {
		return nil, fmt.Errorf("(archive-tar) %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("(archive-tar) failed to open: %w", err)
	}

	idx := &tarIndex{
		path:    path,
		file:    f,
		table:   newEntryTable(),
		offsets: make(map[string]int64),
	}

	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			f.Close()

			return nil, fmt.Errorf("(archive-tar) failed to read header: %w", err)
		}

		e, ok := tarEntry(hdr)
		if !ok {
			continue
		}

		name, ok := idx.table.add(path, e)
		if !ok || e.IsDir {
			continue
		}

		offset, err := f.Seek(0, io.SeekCurrent)
		if err != nil {
			f.Close()

			return nil, fmt.Errorf("(archive-tar) failed to locate entry data: %w", err)
		}
		idx.offsets[name] = offset
	}

	return idx, nil
}

type tarIndex struct {
	path    string
	file    *os.File
	table   *entryTable
	offsets map[string]int64
	closed  atomic.Bool
}

func (t *tarIndex) Path() string {
	return t.path
}

func (t *tarIndex) Entries() []Entry {
	return t.table.list()
}

func (t *tarIndex) Lookup(name string) (Entry, bool) {
	return t.table.lookup(name)
}

func (t *tarIndex) Open(name string) (io.ReadCloser, error) {
	if t.closed.Load() {
		return nil, fmt.Errorf("(archive-tar) %w", ErrIndexClosed)
	}

	e, ok := t.table.lookup(name)
	if !ok {
		return nil, fmt.Errorf("(archive-tar) %w: %s", ErrEntryNotFound, name)
	}
	if e.IsDir {
		return nil, fmt.Errorf("(archive-tar) %w: %s", ErrIsDirectory, name)
	}

	return nopSeekCloser{io.NewSectionReader(t.file, t.offsets[name], e.Size)}, nil
}

func (*tarIndex) Seekable() bool {
	return true
}

func (t *tarIndex) Close() error {
	if t.closed.Swap(true) {
		return nil
	}

	if err := t.file.Close(); err != nil {
		return fmt.Errorf("(archive-tar) failed to close: %w", err)
	}

	return nil
}

// decompressor wraps the raw archive stream into a decompressing reader.
type decompressor func(r io.Reader) (io.ReadCloser, error)

// TarGzipDecoder opens gzip-compressed tar archives.
type TarGzipDecoder struct{}

// Name returns the format name.
func (*TarGzipDecoder) Name() string {
	return "tar.gz"
}

// Extensions returns the extensions gzip-compressed tar archives are stored
// with.
func (*TarGzipDecoder) Extensions() []string {
	return []string{".tar.gz", ".tgz"}
}

// Open opens and indexes a gzip-compressed tar archive.
func (d *TarGzipDecoder) Open(path string) (Index, error) {
	return openStreamTar(d.Name(), path, func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	})
}

// TarZstdDecoder opens zstd-compressed tar archives.
type TarZstdDecoder struct{}

// Name returns the format name.
func (*TarZstdDecoder) Name() string {
	return "tar.zst"
}

// Extensions returns the extensions zstd-compressed tar archives are stored
// with.
func (*TarZstdDecoder) Extensions() []string {
	return []string{".tar.zst", ".tzst"}
}

// Open opens and indexes a zstd-compressed tar archive.
func (d *TarZstdDecoder) Open(path string) (Index, error) {
	return openStreamTar(d.Name(), path, func(r io.Reader) (io.ReadCloser, error) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}

		return dec.IOReadCloser(), nil
	})
}

// streamTarIndex indexes a compressed tar archive. Compressed streams cannot
// be entered at an offset, so every open decompresses from the start of the
// archive up to the requested entry.
type streamTarIndex struct {
	format     string
	path       string
	table      *entryTable
	decompress decompressor
	closed     atomic.Bool
}

func openStreamTar(format, path string, decompress decompressor) (Index, error) {
	if err := checkNotEmpty(path); err != nil {
		return nil, fmt.Errorf("(archive-%s) %w", format, err)
	}

	idx := &streamTarIndex{
		format:     format,
		path:       path,
		table:      newEntryTable(),
		decompress: decompress,
	}

	err := idx.walk(func(hdr *tar.Header, _ io.Reader) (bool, error) {
		if e, ok := tarEntry(hdr); ok {
			idx.table.add(path, e)
		}

		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return idx, nil
}

// walk decompresses the archive and calls fn for every header until fn
// returns false or the archive ends.
func (s *streamTarIndex) walk(fn func(hdr *tar.Header, r io.Reader) (bool, error)) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("(archive-%s) failed to open: %w", s.format, err)
	}
	defer f.Close()

	dr, err := s.decompress(f)
	if err != nil {
		return fmt.Errorf("(archive-%s) failed to decompress: %w", s.format, err)
	}
	defer dr.Close()

	tr := tar.NewReader(dr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("(archive-%s) failed to read header: %w", s.format, err)
		}

		cont, err := fn(hdr, tr)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

func (s *streamTarIndex) Path() string {
	return s.path
}

func (s *streamTarIndex) Entries() []Entry {
	return s.table.list()
}

func (s *streamTarIndex) Lookup(name string) (Entry, bool) {
	return s.table.lookup(name)
}

// Open decompresses the archive up to the entry and returns a reader over its
// content. The archive file and decompressor stay open until the returned
// reader is closed.
func (s *streamTarIndex) Open(name string) (io.ReadCloser, error) {
	if s.closed.Load() {
		return nil, fmt.Errorf("(archive-%s) %w", s.format, ErrIndexClosed)
	}

	e, ok := s.table.lookup(name)
	if !ok {
		return nil, fmt.Errorf("(archive-%s) %w: %s", s.format, ErrEntryNotFound, name)
	}
	if e.IsDir {
		return nil, fmt.Errorf("(archive-%s) %w: %s", s.format, ErrIsDirectory, name)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("(archive-%s) failed to open: %w", s.format, err)
	}

	dr, err := s.decompress(f)
	if err != nil {
		f.Close()

		return nil, fmt.Errorf("(archive-%s) failed to decompress: %w", s.format, err)
	}

	tr := tar.NewReader(dr)
	for {
		hdr, err := tr.Next()
		if err != nil {
			dr.Close()
			f.Close()

			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("(archive-%s) %w: %s", s.format, ErrEntryNotFound, name)
			}

			return nil, fmt.Errorf("(archive-%s) failed to read header: %w", s.format, err)
		}

		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if entryName, ok := normalizedName(hdr.Name); ok && entryName == name {
			return &streamEntry{
				Reader:  io.LimitReader(tr, hdr.Size),
				closers: []io.Closer{dr, f},
			}, nil
		}
	}
}

func (s *streamTarIndex) Close() error {
	s.closed.Store(true)

	return nil
}

// streamEntry is an entry reader owning the resources it is read from.
type streamEntry struct {
	io.Reader
	closers []io.Closer
}

func (e *streamEntry) Close() error {
	var errs []error
	for _, c := range e.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// tarEntry converts a tar header into an [Entry]. Only regular files and
// directories are represented; links, devices and sparse files are skipped.
func tarEntry(hdr *tar.Header) (Entry, bool) {
	switch hdr.Typeflag {
	case tar.TypeReg:
		return Entry{Name: hdr.Name, Size: hdr.Size, ModTime: hdr.ModTime}, true
	case tar.TypeDir:
		return Entry{Name: hdr.Name, ModTime: hdr.ModTime, IsDir: true}, true
	default:
		return Entry{}, false
	}
}
