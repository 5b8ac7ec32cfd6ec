package archive

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

const (
	// BoltBucket is the bucket holding the file entries of a bolt archive.
	// Keys are entry names, values the entry content.
	BoltBucket = "files"

	// BoltLockTimeout bounds the wait for the file lock of a bolt archive
	// that is held by another process.
	BoltLockTimeout = time.Second

	boltFilePermission = 0o600
)

// BoltDecoder opens bbolt databases as archives. Unlike the other formats,
// bolt archives support modifying entries in place (see [WritableIndex]).
type BoltDecoder struct{}

// Name returns the format name.
func (*BoltDecoder) Name() string {
	return "bolt"
}

// Extensions returns the extensions bolt archives are stored with.
func (*BoltDecoder) Extensions() []string {
	return []string{".bolt", ".db"}
}

// Open opens and indexes a bolt archive, creating the entry bucket when the
// database does not have one yet.
func (*BoltDecoder) Open(path string) (Index, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("(archive-bolt) failed to stat: %w", err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("(archive-bolt) %w: %s", ErrEmptyArchive, path)
	}

	db, err := bbolt.Open(path, boltFilePermission, &bbolt.Options{
		Timeout:      BoltLockTimeout,
		FreelistType: bbolt.DefaultOptions.FreelistType,
	})
	if err != nil {
		return nil, fmt.Errorf("(archive-bolt) failed to open: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BoltBucket))

		return err
	})
	if err != nil {
		db.Close()

		return nil, fmt.Errorf("(archive-bolt) failed to prepare bucket: %w", err)
	}

	idx := &boltIndex{
		path:    path,
		db:      db,
		table:   newEntryTable(),
		modTime: info.ModTime(),
	}

	err = db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(BoltBucket)).ForEach(func(k, v []byte) error {
			idx.table.add(path, Entry{
				Name:    string(k),
				Size:    int64(len(v)),
				ModTime: idx.modTime,
			})

			return nil
		})
	})
	if err != nil {
		db.Close()

		return nil, fmt.Errorf("(archive-bolt) failed to index: %w", err)
	}

	return idx, nil
}

type boltIndex struct {
	sync.RWMutex
	path    string
	db      *bbolt.DB
	table   *entryTable
	modTime time.Time
	closed  bool
}

func (b *boltIndex) Path() string {
	return b.path
}

func (b *boltIndex) Entries() []Entry {
	b.RLock()
	defer b.RUnlock()

	return b.table.list()
}

func (b *boltIndex) Lookup(name string) (Entry, bool) {
	b.RLock()
	defer b.RUnlock()

	return b.table.lookup(name)
}

// Open returns a copy of the entry's value as a seekable reader. Values are
// only valid for the life of a bolt transaction and must not be retained.
func (b *boltIndex) Open(name string) (io.ReadCloser, error) {
	b.RLock()
	defer b.RUnlock()

	if b.closed {
		return nil, fmt.Errorf("(archive-bolt) %w", ErrIndexClosed)
	}

	e, ok := b.table.lookup(name)
	if !ok {
		return nil, fmt.Errorf("(archive-bolt) %w: %s", ErrEntryNotFound, name)
	}
	if e.IsDir {
		return nil, fmt.Errorf("(archive-bolt) %w: %s", ErrIsDirectory, name)
	}

	var data []byte

	err := b.db.View(func(tx *bbolt.Tx) error {
		val := tx.Bucket([]byte(BoltBucket)).Get([]byte(name))
		if val == nil {
			return fmt.Errorf("%w: %s", ErrEntryNotFound, name)
		}
		data = makeCopy(val)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("(archive-bolt) failed to read entry: %w", err)
	}

	return nopSeekCloser{bytes.NewReader(data)}, nil
}

// Put creates or replaces a file entry.
func (b *boltIndex) Put(name string, data []byte) error {
	b.Lock()
	defer b.Unlock()

	if b.closed {
		return fmt.Errorf("(archive-bolt) %w", ErrIndexClosed)
	}

	n, ok := normalizedName(name)
	if !ok {
		return fmt.Errorf("(archive-bolt) %w: %q", ErrEntryNotFound, name)
	}
	if e, exists := b.table.lookup(n); exists && e.IsDir {
		return fmt.Errorf("(archive-bolt) %w: %s", ErrIsDirectory, n)
	}

	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(BoltBucket)).Put([]byte(n), makeCopy(data))
	})
	if err != nil {
		return fmt.Errorf("(archive-bolt) failed to put entry: %w", err)
	}

	b.table.add(b.path, Entry{Name: n, Size: int64(len(data)), ModTime: time.Now()})

	return nil
}

// Delete removes a file entry. Implicit parent directories stay listed until
// the archive is reopened.
func (b *boltIndex) Delete(name string) error {
	b.Lock()
	defer b.Unlock()

	if b.closed {
		return fmt.Errorf("(archive-bolt) %w", ErrIndexClosed)
	}

	e, ok := b.table.lookup(name)
	if !ok {
		return fmt.Errorf("(archive-bolt) %w: %s", ErrEntryNotFound, name)
	}
	if e.IsDir {
		return fmt.Errorf("(archive-bolt) %w: %s", ErrIsDirectory, name)
	}

	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(BoltBucket)).Delete([]byte(name))
	})
	if err != nil {
		return fmt.Errorf("(archive-bolt) failed to delete entry: %w", err)
	}

	b.table.remove(name)

	return nil
}

func (*boltIndex) Seekable() bool {
	return true
}

func (b *boltIndex) Close() error {
	b.Lock()
	defer b.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	if err := b.db.Close(); err != nil {
		return fmt.Errorf("(archive-bolt) failed to close: %w", err)
	}

	return nil
}

func makeCopy(val []byte) []byte {
	tmp := make([]byte, len(val))
	copy(tmp, val)

	return tmp
}
