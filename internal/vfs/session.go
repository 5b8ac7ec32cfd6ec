// Package vfs implements the virtual file system session. A [Session] holds
// the mount table, the write directory and the host directories discovered
// at initialization. Reads resolve through the mount table in search order,
// while every write targets the single write directory. Files are accessed
// through [File] handles.
package vfs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/desertwitch/govfs/internal/archive"
	"github.com/desertwitch/govfs/internal/mount"
	"github.com/desertwitch/govfs/internal/pathing"
	"github.com/desertwitch/govfs/internal/platform"
	"github.com/desertwitch/govfs/internal/schema"
	"github.com/desertwitch/govfs/internal/storage"
	"golang.org/x/sys/unix"
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

type platformProvider interface {
	BaseDir() (string, error)
	UserDir() (string, error)
	PrefDir(org, app string) (string, error)
	CDRoms() ([]string, error)
}

// Option configures a [Session] created by [NewSession].
type Option func(*Session)

// WithProviders replaces the operating system providers.
func WithProviders(osHandler osProvider, unixHandler unixProvider) Option {
	return func(s *Session) {
		s.osHandler = osHandler
		s.unixHandler = unixHandler
	}
}

// WithPlatform replaces the platform discovery.
func WithPlatform(p platformProvider) Option {
	return func(s *Session) {
		s.platformHandler = p
	}
}

// WithRegistry replaces the archive decoder registry.
func WithRegistry(reg *archive.Registry) Option {
	return func(s *Session) {
		s.registry = reg
	}
}

// WithArchiveOptions tunes the archive stores opened by the session.
func WithArchiveOptions(opts storage.ArchiveOptions) Option {
	return func(s *Session) {
		s.archiveOpts = opts
	}
}

// WithIdentity sets the organization and application name the default write
// directory is derived from.
func WithIdentity(org, app string) Option {
	return func(s *Session) {
		s.org = org
		s.app = app
	}
}

// WithBufferSize sets the buffer size of newly opened files.
func WithBufferSize(size int) Option {
	return func(s *Session) {
		s.bufferSize = max(size, 0)
	}
}

// Session is a virtual file system session. Session-level mutations are
// serialized by the session lock, open [File] handles are owned by their
// callers.
type Session struct {
	sync.RWMutex

	osHandler       osProvider
	unixHandler     unixProvider
	platformHandler platformProvider
	registry        *archive.Registry
	archiveOpts     storage.ArchiveOptions
	bufferSize      int

	org string
	app string

	initialized bool
	baseDir     string
	userDir     string
	writeDir    string
	writeStore  *storage.DirStore
	table       *mount.Table

	filesMu sync.Mutex
	files   map[*File]struct{}

	lastErr atomic.Pointer[Error]
}

// NewSession returns a pointer to a new, uninitialized [Session].
func NewSession(opts ...Option) *Session {
	s := &Session{
		osHandler:       &schema.OS{},
		unixHandler:     &schema.Unix{},
		platformHandler: platform.NewHandler(&schema.OS{}, &schema.Home{}),
		registry:        archive.DefaultRegistry(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Init discovers the base and user directories and establishes an empty
// mount table without a write directory.
func (s *Session) Init() error {
	s.Lock()
	defer s.Unlock()

	if s.initialized {
		return s.fail("init", "", ErrAlreadyInit, nil)
	}

	baseDir, err := s.platformHandler.BaseDir()
	if err != nil {
		return s.fail("init", "", ErrInit, err)
	}

	userDir, err := s.platformHandler.UserDir()
	if err != nil {
		return s.fail("init", "", ErrInit, err)
	}

	s.baseDir = baseDir
	s.userDir = userDir
	s.writeDir = ""
	s.writeStore = nil
	s.table = mount.NewTable()
	s.files = make(map[*File]struct{})
	s.initialized = true

	slog.Debug("Initialized session", "baseDir", baseDir, "userDir", userDir)

	return nil
}

// Deinit closes every open file, unmounts every store and releases the write
// directory. It is safe to call more than once.
func (s *Session) Deinit() error {
	s.Lock()
	defer s.Unlock()

	if !s.initialized {
		return nil
	}

	var errs []error

	for _, f := range s.openFiles() {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := s.table.Clear(); err != nil {
		errs = append(errs, err)
	}

	if s.writeStore != nil {
		if err := s.writeStore.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	s.initialized = false
	s.baseDir = ""
	s.userDir = ""
	s.writeDir = ""
	s.writeStore = nil
	s.table = nil

	slog.Debug("Deinitialized session")

	if err := errors.Join(errs...); err != nil {
		return s.fail("deinit", "", ErrIO, err)
	}

	return nil
}

// IsInit reports whether the session is initialized.
func (s *Session) IsInit() bool {
	s.RLock()
	defer s.RUnlock()

	return s.initialized
}

// BaseDir returns the directory of the running program.
func (s *Session) BaseDir() string {
	s.RLock()
	defer s.RUnlock()

	return s.baseDir
}

// UserDir returns the home directory of the user.
func (s *Session) UserDir() string {
	s.RLock()
	defer s.RUnlock()

	return s.userDir
}

// LastError returns the message of the last failed operation, or an empty
// string if none failed yet.
func (s *Session) LastError() string {
	if e := s.lastErr.Load(); e != nil {
		return e.Error()
	}

	return ""
}

// fail builds the structured error of a failed operation and records it as
// the last error.
func (s *Session) fail(op, path string, kind error, err error) error {
	e := newError(op, path, kind, err)
	if s == nil {
		return e
	}
	s.lastErr.Store(e)

	return e
}

// record records an already structured error as the last error.
func (s *Session) record(err error) error {
	var e *Error
	if errors.As(err, &e) {
		s.lastErr.Store(e)
	}

	return err
}

func (s *Session) checkInit(op, path string) error {
	if !s.initialized {
		return s.fail(op, path, ErrNotInitialized, nil)
	}

	return nil
}

// Mount opens the directory or archive at realPath and mounts it below
// mountPoint, at the end of the search path when appendToPath is set and at
// its front otherwise. Mounting an already mounted path succeeds without
// changing its position.
func (s *Session) Mount(realPath, mountPoint string, appendToPath bool) error {
	s.Lock()
	defer s.Unlock()

	if err := s.checkInit("mount", realPath); err != nil {
		return err
	}

	return s.mount("mount", realPath, mountPoint, appendToPath)
}

func (s *Session) mount(op, realPath, mountPoint string, appendToPath bool) error {
	abs, err := filepath.Abs(realPath)
	if err != nil {
		return s.fail(op, realPath, ErrMount, err)
	}

	if _, mounted := s.table.Lookup(abs); mounted {
		return nil
	}

	store, err := s.openStore(abs)
	if err != nil {
		return s.fail(op, realPath, ErrMount, err)
	}

	added, err := s.table.Mount(store, mountPoint, appendToPath)
	if err != nil || !added {
		store.Close()
	}
	if err != nil {
		return s.fail(op, realPath, ErrMount, err)
	}

	return nil
}

// openStore opens a [storage.DirStore] for directories and an
// [storage.ArchiveStore] for everything else.
func (s *Session) openStore(realPath string) (storage.Store, error) {
	info, err := s.osHandler.Stat(realPath)
	if err != nil {
		return nil, fmt.Errorf("(vfs-openstore) failed to stat: %w", err)
	}

	if info.IsDir() {
		return storage.NewDirStore(realPath, s.osHandler, s.unixHandler) //nolint:wrapcheck
	}

	return storage.NewArchiveStore(realPath, s.registry, s.archiveOpts) //nolint:wrapcheck
}

// MountStore mounts an already opened store. The session takes ownership of
// the store, which is closed right away if its root is already mounted.
func (s *Session) MountStore(store storage.Store, mountPoint string, appendToPath bool) error {
	s.Lock()
	defer s.Unlock()

	if err := s.checkInit("mountstore", ""); err != nil {
		return err
	}

	if store == nil {
		return s.fail("mountstore", "", ErrMount, mount.ErrNilStore)
	}

	added, err := s.table.Mount(store, mountPoint, appendToPath)
	if err != nil {
		return s.fail("mountstore", store.Root(), ErrMount, err)
	}

	if !added {
		store.Close()
	}

	return nil
}

// Unmount removes the store mounted from realPath from the search path. A
// store with files still open for reading is not unmounted.
func (s *Session) Unmount(realPath string) error {
	s.Lock()
	defer s.Unlock()

	if err := s.checkInit("unmount", realPath); err != nil {
		return err
	}

	abs, err := filepath.Abs(realPath)
	if err != nil {
		return s.fail("unmount", realPath, ErrNotMounted, err)
	}

	for _, f := range s.openFiles() {
		if f.mode == ModeRead && f.store.Root() == abs {
			return s.fail("unmount", realPath, ErrBusy, nil)
		}
	}

	if err := s.table.Unmount(abs); err != nil {
		if errors.Is(err, mount.ErrNotMounted) {
			return s.fail("unmount", realPath, ErrNotMounted, err)
		}

		return s.fail("unmount", realPath, ErrIO, err)
	}

	return nil
}

// SearchPath returns the roots of all mounted stores in search order.
func (s *Session) SearchPath() ([]string, error) {
	s.RLock()
	defer s.RUnlock()

	if err := s.checkInit("searchpath", ""); err != nil {
		return nil, err
	}

	return s.table.SearchPath(), nil
}

// Mounts returns a snapshot of the mount table in search order.
func (s *Session) Mounts() ([]mount.Entry, error) {
	s.RLock()
	defer s.RUnlock()

	if err := s.checkInit("mounts", ""); err != nil {
		return nil, err
	}

	return s.table.Entries(), nil
}

// MountPoint returns the mount point of the store mounted from realPath.
func (s *Session) MountPoint(realPath string) (string, error) {
	s.RLock()
	defer s.RUnlock()

	if err := s.checkInit("mountpoint", realPath); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(realPath)
	if err != nil {
		return "", s.fail("mountpoint", realPath, ErrNotMounted, err)
	}

	mp, err := s.table.MountPoint(abs)
	if err != nil {
		return "", s.fail("mountpoint", realPath, ErrNotMounted, err)
	}

	return mp, nil
}

// Resolve returns the store and store-relative path a virtual path is read
// from.
func (s *Session) Resolve(path string) (mount.Resolution, error) {
	s.RLock()
	defer s.RUnlock()

	if err := s.checkInit("resolve", path); err != nil {
		return mount.Resolution{}, err
	}

	res, err := s.resolve(path)
	if err != nil {
		return mount.Resolution{}, s.fail("resolve", path, ErrNotFound, err)
	}

	return res, nil
}

// resolve resolves a read through the search path. A write directory that
// is not mounted itself is consulted last, at the root.
func (s *Session) resolve(path string) (mount.Resolution, error) {
	res, err := s.table.Resolve(path)
	if err == nil {
		return res, nil
	}

	if ws := s.unmountedWriteStore(); ws != nil {
		if p, nerr := pathing.Normalize(path); nerr == nil && ws.Exists(p) {
			return mount.Resolution{Store: ws, RelPath: p}, nil
		}
	}

	return mount.Resolution{}, err //nolint:wrapcheck
}

// resolveAll is [Session.resolve] returning every store containing path.
func (s *Session) resolveAll(p string) ([]mount.Resolution, error) {
	matches, err := s.table.ResolveAll(p)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if ws := s.unmountedWriteStore(); ws != nil && ws.Exists(p) {
		matches = append(matches, mount.Resolution{Store: ws, RelPath: p})
	}

	return matches, nil
}

func (s *Session) unmountedWriteStore() *storage.DirStore {
	if s.writeStore == nil {
		return nil
	}

	if _, mounted := s.table.Lookup(s.writeStore.Root()); mounted {
		return nil
	}

	return s.writeStore
}

// WriteDir returns the real path of the write directory, or an empty string
// if none is bound.
func (s *Session) WriteDir() string {
	s.RLock()
	defer s.RUnlock()

	return s.writeDir
}

// SetWriteDir binds the existing directory at path as the write directory,
// replacing the previous one. An empty path unbinds the write directory. A
// previous write directory stays in the search path if it was mounted.
func (s *Session) SetWriteDir(path string) error {
	s.Lock()
	defer s.Unlock()

	if err := s.checkInit("setwritedir", path); err != nil {
		return err
	}

	return s.setWriteDir("setwritedir", path)
}

func (s *Session) setWriteDir(op, path string) error {
	for _, f := range s.openFiles() {
		if f.mode == ModeWrite || f.mode == ModeAppend {
			return s.fail(op, path, ErrBusy, nil)
		}
	}

	var store *storage.DirStore

	if path != "" {
		var err error

		store, err = storage.NewDirStore(path, s.osHandler, s.unixHandler)
		if err != nil {
			return s.fail(op, path, ErrIO, err)
		}
	}

	if s.writeStore != nil {
		s.writeStore.Close()
	}

	s.writeStore = store
	s.writeDir = ""

	if store != nil {
		s.writeDir = store.Root()
	}

	slog.Debug("Set write directory", "writeDir", s.writeDir)

	return nil
}

// writeTarget returns the write store, binding the preference directory of
// the session's identity when no write directory was set.
func (s *Session) writeTarget(op, path string) (*storage.DirStore, error) {
	s.Lock()
	defer s.Unlock()

	if err := s.checkInit(op, path); err != nil {
		return nil, err
	}

	if s.writeStore != nil {
		return s.writeStore, nil
	}

	if s.app == "" {
		return nil, s.fail(op, path, ErrNoWriteDir, nil)
	}

	pref, err := s.platformHandler.PrefDir(s.org, s.app)
	if err != nil {
		return nil, s.fail(op, path, ErrNoWriteDir, err)
	}

	if err := s.ensureRealDir(pref); err != nil {
		return nil, s.fail(op, path, ErrNoWriteDir, err)
	}

	if err := s.setWriteDir(op, pref); err != nil {
		return nil, err
	}

	return s.writeStore, nil
}

// ensureRealDir creates a real directory with all of its missing parents.
func (s *Session) ensureRealDir(dir string) error {
	dir = filepath.Clean(dir)

	if info, err := s.osHandler.Stat(dir); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("(vfs-ensuredir) %w: %s", storage.ErrNotDirectory, dir)
		}

		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("(vfs-ensuredir) failed to stat: %w", err)
	}

	if parent := filepath.Dir(dir); parent != dir {
		if err := s.ensureRealDir(parent); err != nil {
			return err
		}
	}

	if err := s.unixHandler.Mkdir(dir, storage.DirPerms); err != nil && !errors.Is(err, unix.EEXIST) {
		return fmt.Errorf("(vfs-ensuredir) failed to create directory %s: %w", dir, err)
	}

	return nil
}

// Mkdir creates a directory, including all missing parents, in the write
// directory.
func (s *Session) Mkdir(path string) error {
	rel, err := pathing.Normalize(path)
	if err != nil {
		return s.fail("mkdir", path, ErrIO, err)
	}

	store, err := s.writeTarget("mkdir", path)
	if err != nil {
		return err
	}

	if err := store.Mkdir(rel); err != nil {
		return s.fail("mkdir", path, ErrIO, err)
	}

	return nil
}

// Remove deletes a file or an empty directory from the write directory.
func (s *Session) Remove(path string) error {
	rel, err := pathing.Normalize(path)
	if err != nil {
		return s.fail("remove", path, ErrIO, err)
	}

	store, err := s.writeTarget("remove", path)
	if err != nil {
		return err
	}

	if err := store.Remove(rel); err != nil {
		return s.fail("remove", path, ErrIO, err)
	}

	return nil
}

// Exists reports whether a virtual path resolves to a file or directory.
// Ancestors of mount points always exist as directories.
func (s *Session) Exists(path string) bool {
	_, err := s.Stat(path)

	return err == nil
}

// IsDirectory reports whether a virtual path resolves to a directory.
func (s *Session) IsDirectory(path string) (bool, error) {
	meta, err := s.Stat(path)
	if err != nil {
		return false, err
	}

	return meta.IsDir, nil
}

// Stat returns the metadata of a virtual path from the first store
// containing it.
func (s *Session) Stat(path string) (schema.Metadata, error) {
	s.RLock()
	defer s.RUnlock()

	if err := s.checkInit("stat", path); err != nil {
		return schema.Metadata{}, err
	}

	p, err := pathing.Normalize(path)
	if err != nil {
		return schema.Metadata{}, s.fail("stat", path, ErrNotFound, err)
	}

	res, err := s.resolve(p)
	if err == nil {
		meta, err := res.Store.Stat(res.RelPath)
		if err != nil {
			return schema.Metadata{}, s.fail("stat", path, ErrIO, err)
		}

		return meta, nil
	}

	if p == "" || s.table.MountPointChildren(p) != nil {
		return schema.Metadata{IsDir: true, ReadOnly: true}, nil
	}

	return schema.Metadata{}, s.fail("stat", path, ErrNotFound, err)
}

// RealDir returns the root of the store a virtual path is read from.
func (s *Session) RealDir(path string) (string, error) {
	res, err := s.Resolve(path)
	if err != nil {
		return "", s.record(err)
	}

	return res.Store.Root(), nil
}

// Enumerate returns the sorted names within a virtual directory, merged
// across every store containing it and the mount points below it.
func (s *Session) Enumerate(dir string) ([]string, error) {
	s.RLock()
	defer s.RUnlock()

	if err := s.checkInit("enumerate", dir); err != nil {
		return nil, err
	}

	p, err := pathing.Normalize(dir)
	if err != nil {
		return nil, s.fail("enumerate", dir, ErrNotFound, err)
	}

	matches, err := s.resolveAll(p)
	if err != nil {
		return nil, s.fail("enumerate", dir, ErrNotFound, err)
	}

	children := s.table.MountPointChildren(p)
	if len(matches) == 0 && children == nil && p != "" {
		return nil, s.fail("enumerate", dir, ErrNotFound, nil)
	}

	seen := make(map[string]struct{})
	listed := p == "" || children != nil

	var notDirErr error

	for _, res := range matches {
		names, err := res.Store.List(res.RelPath)
		if err != nil {
			if errors.Is(err, storage.ErrNotDirectory) {
				notDirErr = err

				continue
			}

			return nil, s.fail("enumerate", dir, ErrIO, err)
		}
		listed = true

		for _, name := range names {
			seen[name] = struct{}{}
		}
	}

	if !listed {
		return nil, s.fail("enumerate", dir, ErrNotFound, notDirErr)
	}

	for _, name := range children {
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// ReadFile reads a whole file into buf, growing it when it is too small,
// and returns the slice holding the bytes read.
func (s *Session) ReadFile(path string, buf []byte) ([]byte, error) {
	f, err := s.OpenRead(path)
	if err != nil {
		return buf[:0], err
	}
	defer f.Close()

	size, err := f.Length()
	if err != nil {
		return buf[:0], err
	}

	return f.ReadObjects(buf, 1, int(size))
}

// WriteFile creates or truncates a file in the write directory and writes
// data to it. It returns the amount of bytes written.
func (s *Session) WriteFile(path string, data []byte) (int, error) {
	f, err := s.OpenWrite(path)
	if err != nil {
		return 0, err
	}

	n, err := f.Write(data)
	if err != nil {
		f.Close()

		return n, err
	}

	if err := f.Close(); err != nil {
		return n, err
	}

	return n, nil
}

// NewFile returns a closed [File] bound to the session.
func (s *Session) NewFile() *File {
	return &File{session: s}
}

// Open opens a file in the given mode.
func (s *Session) Open(path string, mode Mode) (*File, error) {
	f := s.NewFile()

	if err := f.Open(path, mode); err != nil {
		return nil, err
	}

	return f, nil
}

// OpenRead opens a file for reading from the search path.
func (s *Session) OpenRead(path string) (*File, error) {
	return s.Open(path, ModeRead)
}

// OpenWrite creates or truncates a file in the write directory.
func (s *Session) OpenWrite(path string) (*File, error) {
	return s.Open(path, ModeWrite)
}

// OpenAppend opens a file in the write directory for appending.
func (s *Session) OpenAppend(path string) (*File, error) {
	return s.Open(path, ModeAppend)
}

func (s *Session) register(f *File) {
	s.filesMu.Lock()
	defer s.filesMu.Unlock()

	if s.files != nil {
		s.files[f] = struct{}{}
	}
}

func (s *Session) forget(f *File) {
	s.filesMu.Lock()
	defer s.filesMu.Unlock()

	delete(s.files, f)
}

func (s *Session) openFiles() []*File {
	s.filesMu.Lock()
	defer s.filesMu.Unlock()

	files := make([]*File, 0, len(s.files))
	for f := range s.files {
		files = append(files, f)
	}

	return files
}

// OpenFiles returns the amount of open files.
func (s *Session) OpenFiles() int {
	s.filesMu.Lock()
	defer s.filesMu.Unlock()

	return len(s.files)
}

// WriteDirUsage returns the disk usage of the filesystem holding the write
// directory.
func (s *Session) WriteDirUsage() (storage.DiskStats, error) {
	s.RLock()
	defer s.RUnlock()

	if err := s.checkInit("writedirusage", ""); err != nil {
		return storage.DiskStats{}, err
	}

	if s.writeStore == nil {
		return storage.DiskStats{}, s.fail("writedirusage", "", ErrNoWriteDir, nil)
	}

	stats, err := s.writeStore.DiskUsage()
	if err != nil {
		return storage.DiskStats{}, s.fail("writedirusage", s.writeDir, ErrIO, err)
	}

	return stats, nil
}

// WriteDirHasSpace reports whether the write directory can take size more
// bytes while keeping minFree bytes free. Like every write, it binds the
// preference directory when no write directory was set.
func (s *Session) WriteDirHasSpace(minFree, size uint64) (bool, error) {
	store, err := s.writeTarget("writedirspace", "")
	if err != nil {
		return false, err
	}

	ok, err := store.HasEnoughFreeSpace(minFree, size)
	if err != nil {
		return false, s.fail("writedirspace", store.Root(), ErrIO, err)
	}

	return ok, nil
}

// hasArchiveExt reports whether name carries the extension ext, which may be
// given with or without its leading dot.
func hasArchiveExt(name, ext string) bool {
	ext = "." + strings.TrimPrefix(ext, ".")

	return len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext)
}
