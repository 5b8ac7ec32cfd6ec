package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertwitch/govfs/internal/pathing"
	"github.com/desertwitch/govfs/internal/schema"
	"golang.org/x/sys/unix"
)

const (
	// DirPerms are the permissions of directories created by a [DirStore].
	DirPerms = 0o755

	// FilePerms are the permissions of files created by a [DirStore].
	FilePerms = 0o644
)

type osProvider interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Stat(name string) (os.FileInfo, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Remove(name string) error
}

type unixProvider interface {
	Mkdir(path string, mode uint32) error
	Statfs(path string, buf *unix.Statfs_t) error
	Lstat(path string, stat *unix.Stat_t) error
}

// DirStore is a [Store] rooted at a real directory. Opens map directly onto
// the operating system's file primitives.
type DirStore struct {
	root        string
	osHandler   osProvider
	unixHandler unixProvider
}

// NewDirStore returns a pointer to a new [DirStore] rooted at root, which
// must be an existing directory.
func NewDirStore(root string, osHandler osProvider, unixHandler unixProvider) (*DirStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("(storage-newdir) failed to get absolute path: %w", err)
	}

	info, err := osHandler.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("(storage-newdir) %w: %s", ErrNotExist, abs)
		}

		return nil, fmt.Errorf("(storage-newdir) failed to stat: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("(storage-newdir) %w: %s", ErrNotDirectory, abs)
	}

	return &DirStore{
		root:        abs,
		osHandler:   osHandler,
		unixHandler: unixHandler,
	}, nil
}

func (s *DirStore) Root() string {
	return s.root
}

func (*DirStore) Kind() Kind {
	return KindDirectory
}

func (*DirStore) Capabilities() Capability {
	return CapWrite | CapAppend | CapRemove | CapMkdir | CapCheapBackSeek
}

// native converts a store-relative path into a real path below the root.
func (s *DirStore) native(rel string) (string, error) {
	norm, err := pathing.Normalize(rel)
	if err != nil {
		return "", fmt.Errorf("(storage-dir) invalid path: %w", err)
	}

	return pathing.ToNative(s.root, norm), nil
}

func (s *DirStore) Exists(rel string) bool {
	p, err := s.native(rel)
	if err != nil {
		return false
	}

	_, err = s.osHandler.Stat(p)

	return err == nil
}

func (s *DirStore) Stat(rel string) (schema.Metadata, error) {
	p, err := s.native(rel)
	if err != nil {
		return schema.Metadata{}, err
	}

	info, err := s.osHandler.Stat(p)
	if err != nil {
		return schema.Metadata{}, s.statError(p, err)
	}

	meta := schema.Metadata{
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		IsDir:    info.IsDir(),
		ReadOnly: info.Mode().Perm()&0o200 == 0,
	}

	var st unix.Stat_t
	if err := s.unixHandler.Lstat(p, &st); err == nil {
		meta.IsSymlink = st.Mode&unix.S_IFMT == unix.S_IFLNK
	}

	return meta, nil
}

func (s *DirStore) List(rel string) ([]string, error) {
	p, err := s.native(rel)
	if err != nil {
		return nil, err
	}

	info, err := s.osHandler.Stat(p)
	if err != nil {
		return nil, s.statError(p, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("(storage-dir-list) %w: %s", ErrNotDirectory, p)
	}

	entries, err := s.osHandler.ReadDir(p)
	if err != nil {
		return nil, fmt.Errorf("(storage-dir-list) failed to readdir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	return names, nil
}

func (s *DirStore) OpenRead(rel string) (Stream, error) {
	p, err := s.native(rel)
	if err != nil {
		return nil, err
	}

	if err := s.checkNotDir(p); err != nil {
		return nil, err
	}

	f, err := s.osHandler.OpenFile(p, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("(storage-dir-openread) failed to open: %w", err)
	}

	return &fileStream{file: f, readable: true}, nil
}

func (s *DirStore) OpenWrite(rel string) (Stream, error) {
	return s.openForWriting(rel, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

func (s *DirStore) OpenAppend(rel string) (Stream, error) {
	return s.openForWriting(rel, os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}

func (s *DirStore) openForWriting(rel string, flag int) (Stream, error) {
	norm, err := pathing.Normalize(rel)
	if err != nil {
		return nil, fmt.Errorf("(storage-dir-openwrite) invalid path: %w", err)
	}
	if norm == "" {
		return nil, fmt.Errorf("(storage-dir-openwrite) %w: %s", ErrIsDirectory, s.root)
	}

	p := pathing.ToNative(s.root, norm)

	if err := s.checkNotDir(p); err != nil && !errors.Is(err, ErrNotExist) {
		return nil, err
	}

	if parent, _ := splitParent(norm); parent != "" {
		if err := s.ensureDirectoryStructure(parent); err != nil {
			return nil, fmt.Errorf("(storage-dir-openwrite) failed to create parents: %w", err)
		}
	}

	f, err := s.osHandler.OpenFile(p, flag, FilePerms)
	if err != nil {
		return nil, fmt.Errorf("(storage-dir-openwrite) failed to open: %w", err)
	}

	stream := &fileStream{file: f, writable: true, appending: flag&os.O_APPEND != 0}

	if stream.appending {
		end, err := f.Seek(0, io.SeekEnd)
		if err != nil {
			f.Close()

			return nil, fmt.Errorf("(storage-dir-openappend) failed to seek to end: %w", err)
		}
		stream.pos = end
	}

	return stream, nil
}

func (s *DirStore) Length(rel string) (int64, error) {
	p, err := s.native(rel)
	if err != nil {
		return 0, err
	}

	info, err := s.osHandler.Stat(p)
	if err != nil {
		return 0, s.statError(p, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("(storage-dir-length) %w: %s", ErrIsDirectory, p)
	}

	return info.Size(), nil
}

// Mkdir creates the directory at rel along with every missing parent.
func (s *DirStore) Mkdir(rel string) error {
	norm, err := pathing.Normalize(rel)
	if err != nil {
		return fmt.Errorf("(storage-dir-mkdir) invalid path: %w", err)
	}

	return s.ensureDirectoryStructure(norm)
}

// Remove deletes a file or an empty directory.
func (s *DirStore) Remove(rel string) error {
	norm, err := pathing.Normalize(rel)
	if err != nil {
		return fmt.Errorf("(storage-dir-remove) invalid path: %w", err)
	}
	if norm == "" {
		return fmt.Errorf("(storage-dir-remove) %w: %s", ErrRemoveRoot, s.root)
	}

	p := pathing.ToNative(s.root, norm)

	if err := s.osHandler.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("(storage-dir-remove) %w: %s", ErrNotExist, p)
		}

		return fmt.Errorf("(storage-dir-remove) failed to remove: %w", err)
	}

	return nil
}

func (*DirStore) Close() error {
	return nil
}

// ensureDirectoryStructure walks the segments of a normalized relative path
// from the root downwards and creates every directory that does not exist.
func (s *DirStore) ensureDirectoryStructure(rel string) error {
	if rel == "" {
		return nil
	}

	segments := strings.Split(rel, "/")

	for i := range segments {
		p := pathing.ToNative(s.root, strings.Join(segments[:i+1], "/"))

		info, err := s.osHandler.Stat(p)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%w: %s", ErrNotDirectory, p)
			}

			continue
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to stat %s: %w", p, err)
		}

		if err := s.unixHandler.Mkdir(p, DirPerms); err != nil && !errors.Is(err, unix.EEXIST) {
			return fmt.Errorf("failed to create directory %s: %w", p, err)
		}
	}

	return nil
}

func (s *DirStore) checkNotDir(p string) error {
	info, err := s.osHandler.Stat(p)
	if err != nil {
		return s.statError(p, err)
	}

	if info.IsDir() {
		return fmt.Errorf("(storage-dir) %w: %s", ErrIsDirectory, p)
	}

	return nil
}

func (*DirStore) statError(p string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("(storage-dir) %w: %s", ErrNotExist, p)
	}

	return fmt.Errorf("(storage-dir) failed to stat: %w", err)
}

// splitParent splits a normalized relative path into its parent and base.
func splitParent(rel string) (string, string) {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[:i], rel[i+1:]
	}

	return "", rel
}
