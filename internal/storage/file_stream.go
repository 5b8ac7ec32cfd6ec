package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// fileStream is a [Stream] over a real file opened by a [DirStore].
type fileStream struct {
	file      *os.File
	readable  bool
	writable  bool
	appending bool
	pos       int64
	closed    bool
}

func (f *fileStream) Read(p []byte) (int, error) {
	if f.closed {
		return 0, ErrStreamClosed
	}
	if !f.readable {
		return 0, ErrNotReadable
	}

	n, err := f.file.Read(p)
	f.pos += int64(n)

	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("(storage-file-read) %w", err)
	}

	return n, err //nolint:wrapcheck
}

func (f *fileStream) Write(p []byte) (int, error) {
	if f.closed {
		return 0, ErrStreamClosed
	}
	if !f.writable {
		return 0, ErrNotWritable
	}

	n, err := f.file.Write(p)
	if f.appending {
		if end, serr := f.file.Seek(0, io.SeekCurrent); serr == nil {
			f.pos = end
		}
	} else {
		f.pos += int64(n)
	}

	if err != nil {
		return n, fmt.Errorf("(storage-file-write) %w", err)
	}
	if n < len(p) {
		return n, fmt.Errorf("(storage-file-write) %w", io.ErrShortWrite)
	}

	return n, nil
}

func (f *fileStream) Seek(pos int64) error {
	if f.closed {
		return ErrStreamClosed
	}
	if pos < 0 {
		return fmt.Errorf("(storage-file-seek) %w: %d", ErrSeekOutOfRange, pos)
	}

	if !f.writable {
		size, err := f.Length()
		if err != nil {
			return err
		}
		if pos > size {
			return fmt.Errorf("(storage-file-seek) %w: %d", ErrSeekOutOfRange, pos)
		}
	}

	if _, err := f.file.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("(storage-file-seek) %w", err)
	}
	f.pos = pos

	return nil
}

func (f *fileStream) Tell() int64 {
	return f.pos
}

func (f *fileStream) Length() (int64, error) {
	if f.closed {
		return 0, ErrStreamClosed
	}

	info, err := f.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("(storage-file-length) %w", err)
	}

	return info.Size(), nil
}

func (f *fileStream) EOF() bool {
	size, err := f.Length()
	if err != nil {
		return true
	}

	return f.pos >= size
}

func (f *fileStream) Flush() error {
	if f.closed {
		return ErrStreamClosed
	}
	if !f.writable {
		return nil
	}

	if err := f.file.Sync(); err != nil {
		return fmt.Errorf("(storage-file-flush) %w", err)
	}

	return nil
}

func (f *fileStream) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	if err := f.file.Close(); err != nil {
		return fmt.Errorf("(storage-file-close) %w", err)
	}

	return nil
}
