package storage

import (
	"fmt"
	"io"
)

// memStream is a [Stream] over an in-memory copy of an archive entry. Read
// streams serve cached entries; write streams hand their content to commit
// on every flush.
type memStream struct {
	data     []byte
	pos      int64
	readable bool
	writable bool
	dirty    bool
	closed   bool
	commit   func([]byte) error
}

func (m *memStream) Read(p []byte) (int, error) {
	if m.closed {
		return 0, ErrStreamClosed
	}
	if !m.readable {
		return 0, ErrNotReadable
	}

	if m.pos >= int64(len(m.data)) {
		return 0, io.EOF
	}

	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)

	return n, nil
}

func (m *memStream) Write(p []byte) (int, error) {
	if m.closed {
		return 0, ErrStreamClosed
	}
	if !m.writable {
		return 0, ErrNotWritable
	}

	end := m.pos + int64(len(p))
	if end > int64(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}

	copy(m.data[m.pos:], p)
	m.pos = end
	m.dirty = true

	return len(p), nil
}

// Seek moves within the entry. Write streams may seek past the end, the gap
// is zero-filled on the next write.
func (m *memStream) Seek(pos int64) error {
	if m.closed {
		return ErrStreamClosed
	}
	if pos < 0 || (!m.writable && pos > int64(len(m.data))) {
		return fmt.Errorf("(storage-mem-seek) %w: %d", ErrSeekOutOfRange, pos)
	}
	m.pos = pos

	return nil
}

func (m *memStream) Tell() int64 {
	return m.pos
}

func (m *memStream) Length() (int64, error) {
	return int64(len(m.data)), nil
}

func (m *memStream) EOF() bool {
	return m.pos >= int64(len(m.data))
}

func (m *memStream) Flush() error {
	if m.closed {
		return ErrStreamClosed
	}
	if !m.writable || m.commit == nil {
		return nil
	}

	if err := m.commit(m.data); err != nil {
		return fmt.Errorf("(storage-mem-flush) %w", err)
	}
	m.dirty = false

	return nil
}

func (m *memStream) Close() error {
	if m.closed {
		return nil
	}

	var err error
	if m.dirty {
		err = m.Flush()
	}
	m.closed = true

	return err
}
