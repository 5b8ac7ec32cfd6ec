package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/desertwitch/govfs/internal/archive"
	"github.com/desertwitch/govfs/internal/pathing"
	"github.com/desertwitch/govfs/internal/schema"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultCacheEntries is the default amount of decompressed entries an
	// [ArchiveStore] keeps in memory.
	DefaultCacheEntries = 64

	// DefaultCacheMaxEntrySize is the default size limit of entries kept in
	// the decompressed entry cache.
	DefaultCacheMaxEntrySize = 4 << 20
)

// ArchiveOptions tune an [ArchiveStore].
type ArchiveOptions struct {
	// CacheEntries is the amount of decompressed entries kept in memory.
	// Zero means [DefaultCacheEntries], negative disables the cache.
	CacheEntries int

	// CacheMaxEntrySize is the largest entry size kept in the cache.
	// Zero means [DefaultCacheMaxEntrySize].
	CacheMaxEntrySize int64
}

// ArchiveStore is a [Store] rooted at an indexed archive file. Entries are
// read-only unless the archive format implements [archive.WritableIndex].
type ArchiveStore struct {
	index    archive.Index
	writable archive.WritableIndex
	seekable bool
	cache    *lru.Cache[string, []byte]
	maxSize  int64
}

// NewArchiveStore opens the archive at path through the registry and returns
// a pointer to a new [ArchiveStore] over it.
func NewArchiveStore(path string, reg *archive.Registry, opts ArchiveOptions) (*ArchiveStore, error) {
	idx, err := reg.Open(path)
	if err != nil {
		return nil, fmt.Errorf("(storage-newarchive) failed to open archive: %w", err)
	}

	s, err := NewArchiveStoreFromIndex(idx, opts)
	if err != nil {
		idx.Close()

		return nil, err
	}

	return s, nil
}

// NewArchiveStoreFromIndex returns a pointer to a new [ArchiveStore] over an
// already opened index. The store takes ownership of the index.
func NewArchiveStoreFromIndex(idx archive.Index, opts ArchiveOptions) (*ArchiveStore, error) {
	s := &ArchiveStore{
		index:   idx,
		maxSize: opts.CacheMaxEntrySize,
	}

	if s.maxSize == 0 {
		s.maxSize = DefaultCacheMaxEntrySize
	}

	if w, ok := idx.(archive.WritableIndex); ok {
		s.writable = w
	}

	if sk, ok := idx.(archive.SeekableIndex); ok {
		s.seekable = sk.Seekable()
	}

	size := opts.CacheEntries
	if size == 0 {
		size = DefaultCacheEntries
	}

	if size > 0 {
		cache, err := lru.New[string, []byte](size)
		if err != nil {
			return nil, fmt.Errorf("(storage-newarchive) failed to create cache: %w", err)
		}
		s.cache = cache
	}

	return s, nil
}

func (s *ArchiveStore) Root() string {
	return s.index.Path()
}

func (*ArchiveStore) Kind() Kind {
	return KindArchive
}

func (s *ArchiveStore) Capabilities() Capability {
	var caps Capability

	if s.writable != nil {
		caps |= CapWrite | CapAppend | CapRemove
	}

	if s.seekable {
		caps |= CapCheapBackSeek
	}

	return caps
}

func (s *ArchiveStore) lookup(rel string) (archive.Entry, error) {
	norm, err := pathing.Normalize(rel)
	if err != nil {
		return archive.Entry{}, fmt.Errorf("(storage-archive) invalid path: %w", err)
	}

	if norm == "" {
		return archive.Entry{IsDir: true}, nil
	}

	e, ok := s.index.Lookup(norm)
	if !ok {
		return archive.Entry{}, fmt.Errorf("(storage-archive) %w: %s", ErrNotExist, norm)
	}

	return e, nil
}

func (s *ArchiveStore) Exists(rel string) bool {
	_, err := s.lookup(rel)

	return err == nil
}

func (s *ArchiveStore) Stat(rel string) (schema.Metadata, error) {
	e, err := s.lookup(rel)
	if err != nil {
		return schema.Metadata{}, err
	}

	return schema.Metadata{
		Size:     e.Size,
		ModTime:  e.ModTime,
		IsDir:    e.IsDir,
		ReadOnly: s.writable == nil,
	}, nil
}

// List returns the names of the direct children of a directory, including
// implicit directories.
func (s *ArchiveStore) List(rel string) ([]string, error) {
	e, err := s.lookup(rel)
	if err != nil {
		return nil, err
	}
	if !e.IsDir {
		return nil, fmt.Errorf("(storage-archive-list) %w: %s", ErrNotDirectory, e.Name)
	}

	var names []string

	for _, child := range s.index.Entries() {
		parent, base := splitParent(child.Name)
		if parent == e.Name {
			names = append(names, base)
		}
	}

	sort.Strings(names)

	return names, nil
}

func (s *ArchiveStore) Length(rel string) (int64, error) {
	e, err := s.lookup(rel)
	if err != nil {
		return 0, err
	}
	if e.IsDir {
		return 0, fmt.Errorf("(storage-archive-length) %w: %s", ErrIsDirectory, e.Name)
	}

	return e.Size, nil
}

// OpenRead opens an entry for reading. Entries within the cache size limit
// are decompressed once and served from memory.
func (s *ArchiveStore) OpenRead(rel string) (Stream, error) {
	e, err := s.lookup(rel)
	if err != nil {
		return nil, err
	}
	if e.IsDir {
		return nil, fmt.Errorf("(storage-archive-openread) %w: %s", ErrIsDirectory, e.Name)
	}

	if s.cache != nil && e.Size <= s.maxSize {
		data, err := s.cachedEntry(e.Name)
		if err != nil {
			return nil, err
		}

		return &memStream{data: data, readable: true}, nil
	}

	rc, err := s.index.Open(e.Name)
	if err != nil {
		return nil, fmt.Errorf("(storage-archive-openread) failed to open entry: %w", err)
	}

	return &entryStream{index: s.index, name: e.Name, size: e.Size, rc: rc}, nil
}

func (s *ArchiveStore) cachedEntry(name string) ([]byte, error) {
	if data, ok := s.cache.Get(name); ok {
		return data, nil
	}

	rc, err := s.index.Open(name)
	if err != nil {
		return nil, fmt.Errorf("(storage-archive-cache) failed to open entry: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("(storage-archive-cache) failed to decompress entry: %w", err)
	}

	if s.cache.Add(name, data) {
		slog.Debug("Evicted archive entry from cache", "archive", s.index.Path())
	}

	return data, nil
}

func (s *ArchiveStore) OpenWrite(rel string) (Stream, error) {
	return s.openForWriting(rel, false)
}

func (s *ArchiveStore) OpenAppend(rel string) (Stream, error) {
	return s.openForWriting(rel, true)
}

// openForWriting opens a memory-backed stream which is stored into the
// archive on every flush and on close.
func (s *ArchiveStore) openForWriting(rel string, appending bool) (Stream, error) {
	if s.writable == nil {
		return nil, fmt.Errorf("(storage-archive-openwrite) %w: %s", ErrReadOnly, s.index.Path())
	}

	norm, err := pathing.Normalize(rel)
	if err != nil {
		return nil, fmt.Errorf("(storage-archive-openwrite) invalid path: %w", err)
	}
	if norm == "" {
		return nil, fmt.Errorf("(storage-archive-openwrite) %w: %s", ErrIsDirectory, s.index.Path())
	}

	var data []byte

	if e, ok := s.index.Lookup(norm); ok {
		if e.IsDir {
			return nil, fmt.Errorf("(storage-archive-openwrite) %w: %s", ErrIsDirectory, norm)
		}

		if appending {
			data, err = s.readEntry(norm)
			if err != nil {
				return nil, err
			}
		}
	}

	stream := &memStream{
		data:     data,
		pos:      int64(len(data)),
		writable: true,
		commit: func(b []byte) error {
			if s.cache != nil {
				s.cache.Remove(norm)
			}

			return s.writable.Put(norm, b) //nolint:wrapcheck
		},
	}

	if !appending {
		stream.pos = 0
		if err := stream.Flush(); err != nil {
			return nil, fmt.Errorf("(storage-archive-openwrite) failed to create entry: %w", err)
		}
	}

	return stream, nil
}

func (s *ArchiveStore) readEntry(name string) ([]byte, error) {
	rc, err := s.index.Open(name)
	if err != nil {
		return nil, fmt.Errorf("(storage-archive) failed to open entry: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("(storage-archive) failed to read entry: %w", err)
	}

	return data, nil
}

// Mkdir is unsupported, archive directories only exist implicitly.
func (s *ArchiveStore) Mkdir(_ string) error {
	return fmt.Errorf("(storage-archive-mkdir) %w: %s", ErrReadOnly, s.index.Path())
}

func (s *ArchiveStore) Remove(rel string) error {
	if s.writable == nil {
		return fmt.Errorf("(storage-archive-remove) %w: %s", ErrReadOnly, s.index.Path())
	}

	e, err := s.lookup(rel)
	if err != nil {
		return err
	}
	if e.Name == "" {
		return fmt.Errorf("(storage-archive-remove) %w: %s", ErrRemoveRoot, s.index.Path())
	}
	if e.IsDir {
		return fmt.Errorf("(storage-archive-remove) %w: %s", ErrIsDirectory, e.Name)
	}

	if err := s.writable.Delete(e.Name); err != nil {
		return fmt.Errorf("(storage-archive-remove) failed to delete entry: %w", err)
	}

	if s.cache != nil {
		s.cache.Remove(e.Name)
	}

	return nil
}

func (s *ArchiveStore) Close() error {
	if s.cache != nil {
		s.cache.Purge()
	}

	if err := s.index.Close(); err != nil {
		return fmt.Errorf("(storage-archive-close) %w", err)
	}

	return nil
}

// entryStream streams an entry straight from the archive. Without native
// seeking, forward seeks discard bytes and backward seeks reopen the entry.
type entryStream struct {
	index  archive.Index
	name   string
	size   int64
	rc     io.ReadCloser
	pos    int64
	closed bool
}

func (e *entryStream) Read(p []byte) (int, error) {
	if e.closed {
		return 0, ErrStreamClosed
	}

	n, err := e.rc.Read(p)
	e.pos += int64(n)

	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("(storage-entry-read) %w", err)
	}

	return n, err //nolint:wrapcheck
}

func (*entryStream) Write(_ []byte) (int, error) {
	return 0, ErrNotWritable
}

func (e *entryStream) Seek(pos int64) error {
	if e.closed {
		return ErrStreamClosed
	}
	if pos < 0 || pos > e.size {
		return fmt.Errorf("(storage-entry-seek) %w: %d", ErrSeekOutOfRange, pos)
	}

	if sk, ok := e.rc.(io.Seeker); ok {
		if _, err := sk.Seek(pos, io.SeekStart); err != nil {
			return fmt.Errorf("(storage-entry-seek) %w", err)
		}
		e.pos = pos

		return nil
	}

	if pos < e.pos {
		rc, err := e.index.Open(e.name)
		if err != nil {
			return fmt.Errorf("(storage-entry-seek) failed to reopen entry: %w", err)
		}
		e.rc.Close()
		e.rc = rc
		e.pos = 0
	}

	n, err := io.CopyN(io.Discard, e.rc, pos-e.pos)
	e.pos += n

	if err != nil {
		return fmt.Errorf("(storage-entry-seek) failed to skip: %w", err)
	}

	return nil
}

func (e *entryStream) Tell() int64 {
	return e.pos
}

func (e *entryStream) Length() (int64, error) {
	return e.size, nil
}

func (e *entryStream) EOF() bool {
	return e.pos >= e.size
}

func (*entryStream) Flush() error {
	return nil
}

func (e *entryStream) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	if err := e.rc.Close(); err != nil {
		return fmt.Errorf("(storage-entry-close) %w", err)
	}

	return nil
}
