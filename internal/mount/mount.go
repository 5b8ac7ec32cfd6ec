// Package mount implements the search path of the virtual file system. The
// [Table] is an ordered list of backing stores, each exposed below a mount
// point. Reads resolve against the first store in table order which contains
// the requested path.
package mount

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/desertwitch/govfs/internal/pathing"
	"github.com/desertwitch/govfs/internal/storage"
)

// Entry is a store mounted below a normalized mount point.
type Entry struct {
	Store      storage.Store
	MountPoint string
}

// Resolution is the outcome of resolving a virtual path: the store holding
// it and the path relative to that store's root.
type Resolution struct {
	Store      storage.Store
	MountPoint string
	RelPath    string
}

// Table is the ordered mount table. The order of its entries is the search
// priority. Mutations are guarded by a coarse lock.
type Table struct {
	sync.RWMutex
	entries []*Entry
}

// NewTable returns a pointer to a new, empty [Table].
func NewTable() *Table {
	return &Table{}
}

// Mount inserts store below mountPoint, at the end of the search path when
// appendToPath is set and at its front otherwise. A store whose root is
// already mounted is left where it is and false is returned, the caller
// keeps ownership of the passed store in that case.
func (t *Table) Mount(store storage.Store, mountPoint string, appendToPath bool) (bool, error) {
	if store == nil {
		return false, fmt.Errorf("(mount-mount) %w", ErrNilStore)
	}

	mp, err := pathing.NormalizeMountPoint(mountPoint)
	if err != nil {
		return false, fmt.Errorf("(mount-mount) invalid mount point: %w", err)
	}

	t.Lock()
	defer t.Unlock()

	if t.indexOf(store.Root()) >= 0 {
		slog.Debug("Skipped mount: already mounted", "root", store.Root())

		return false, nil
	}

	entry := &Entry{Store: store, MountPoint: mp}

	if appendToPath {
		t.entries = append(t.entries, entry)
	} else {
		t.entries = append([]*Entry{entry}, t.entries...)
	}

	slog.Debug("Mounted store",
		"root", store.Root(),
		"kind", store.Kind(),
		"mountPoint", "/"+mp,
		"append", appendToPath,
	)

	return true, nil
}

// Unmount removes the store mounted with the given root and closes it. The
// entry is removed even when closing the store fails.
func (t *Table) Unmount(root string) error {
	t.Lock()
	defer t.Unlock()

	i := t.indexOf(root)
	if i < 0 {
		return fmt.Errorf("(mount-unmount) %w: %s", ErrNotMounted, root)
	}

	store := t.entries[i].Store
	t.entries = slices.Delete(t.entries, i, i+1)

	slog.Debug("Unmounted store", "root", root)

	if err := store.Close(); err != nil {
		return fmt.Errorf("(mount-unmount) failed to close store: %w", err)
	}

	return nil
}

// Lookup returns the store mounted with the given root.
func (t *Table) Lookup(root string) (storage.Store, bool) {
	t.RLock()
	defer t.RUnlock()

	if i := t.indexOf(root); i >= 0 {
		return t.entries[i].Store, true
	}

	return nil, false
}

// Resolve returns the first store in search order whose mount point prefixes
// the virtual path and which contains the remaining relative path.
func (t *Table) Resolve(virtualPath string) (Resolution, error) {
	p, err := pathing.Normalize(virtualPath)
	if err != nil {
		return Resolution{}, fmt.Errorf("(mount-resolve) invalid path: %w", err)
	}

	t.RLock()
	defer t.RUnlock()

	for _, e := range t.entries {
		rel, ok := pathing.StripPrefix(p, e.MountPoint)
		if !ok || !e.Store.Exists(rel) {
			continue
		}

		return Resolution{Store: e.Store, MountPoint: e.MountPoint, RelPath: rel}, nil
	}

	return Resolution{}, fmt.Errorf("(mount-resolve) %w: %s", ErrNotFound, p)
}

// ResolveAll returns every store containing the virtual path, in search
// order.
func (t *Table) ResolveAll(virtualPath string) ([]Resolution, error) {
	p, err := pathing.Normalize(virtualPath)
	if err != nil {
		return nil, fmt.Errorf("(mount-resolveall) invalid path: %w", err)
	}

	t.RLock()
	defer t.RUnlock()

	var res []Resolution

	for _, e := range t.entries {
		rel, ok := pathing.StripPrefix(p, e.MountPoint)
		if !ok || !e.Store.Exists(rel) {
			continue
		}
		res = append(res, Resolution{Store: e.Store, MountPoint: e.MountPoint, RelPath: rel})
	}

	return res, nil
}

// MountPointChildren returns the names of the directories implied below the
// normalized virtual path p by deeper mount points. A non-nil result means
// p exists as a directory even if no store contains it.
func (t *Table) MountPointChildren(p string) []string {
	t.RLock()
	defer t.RUnlock()

	var names []string

	for _, e := range t.entries {
		if child, ok := pathing.ChildOf(p, e.MountPoint); ok && !slices.Contains(names, child) {
			names = append(names, child)
		}
	}

	return names
}

// SearchPath returns the roots of all mounted stores in search order.
func (t *Table) SearchPath() []string {
	t.RLock()
	defer t.RUnlock()

	roots := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		roots = append(roots, e.Store.Root())
	}

	return roots
}

// MountPoint returns the mount point of the store mounted with the given
// root, with a leading slash.
func (t *Table) MountPoint(root string) (string, error) {
	t.RLock()
	defer t.RUnlock()

	i := t.indexOf(root)
	if i < 0 {
		return "", fmt.Errorf("(mount-mountpoint) %w: %s", ErrNotMounted, root)
	}

	return "/" + t.entries[i].MountPoint, nil
}

// Entries returns a snapshot of the mount table in search order.
func (t *Table) Entries() []Entry {
	t.RLock()
	defer t.RUnlock()

	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, *e)
	}

	return out
}

// Len returns the amount of mounted stores.
func (t *Table) Len() int {
	t.RLock()
	defer t.RUnlock()

	return len(t.entries)
}

// Clear unmounts and closes every store.
func (t *Table) Clear() error {
	t.Lock()
	defer t.Unlock()

	var errs []error

	for _, e := range t.entries {
		if err := e.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Store.Root(), err))
		}
	}
	t.entries = nil

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("(mount-clear) failed to close stores: %w", err)
	}

	return nil
}

func (t *Table) indexOf(root string) int {
	return slices.IndexFunc(t.entries, func(e *Entry) bool {
		return e.Store.Root() == root
	})
}
