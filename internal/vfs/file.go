package vfs

import (
	"errors"
	"io"
	"math"

	"github.com/desertwitch/govfs/internal/pathing"
	"github.com/desertwitch/govfs/internal/storage"
)

// Mode is the open mode of a [File].
type Mode int

const (
	// ModeNone is the mode of a closed [File].
	ModeNone Mode = iota

	// ModeRead reads from the first store of the search path containing
	// the file.
	ModeRead

	// ModeWrite creates or truncates the file in the write directory.
	ModeWrite

	// ModeAppend writes at the end of the file in the write directory,
	// creating it when absent.
	ModeAppend
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeAppend:
		return "append"
	default:
		return "closed"
	}
}

// File is a handle to a file opened through a [Session]. Once open, all
// operations go straight to the backing store the file was resolved to.
// A File must not be used from more than one goroutine at a time. Files not
// created by [Session.NewFile] or the Open methods of a session fail every
// operation with [ErrNotOpen].
type File struct {
	session *Session
	name    string
	mode    Mode
	store   storage.Store
	stream  storage.Stream

	bufSize int
	rbuf    []byte
	rpos    int
	rlen    int
	wbuf    []byte
}

// Open resolves path according to mode and opens it. Reads resolve through
// the search path, writes and appends target the write directory. On
// failure the file stays closed.
func (f *File) Open(path string, mode Mode) error {
	s := f.session
	if s == nil {
		return newError("open", path, ErrNotOpen, nil)
	}

	if f.stream != nil {
		return s.fail("open", path, ErrAlreadyOpen, nil)
	}

	rel, err := pathing.Normalize(path)
	if err != nil {
		return s.fail("open", path, ErrOpen, err)
	}

	var (
		store  storage.Store
		stream storage.Stream
	)

	switch mode {
	case ModeRead:
		res, err := s.Resolve(rel)
		if err != nil {
			return s.fail("open", path, ErrOpen, err)
		}
		store = res.Store

		stream, err = store.OpenRead(res.RelPath)
		if err != nil {
			return s.fail("open", path, ErrOpen, err)
		}

	case ModeWrite, ModeAppend:
		ws, err := s.writeTarget("open", path)
		if err != nil {
			return s.fail("open", path, ErrOpen, err)
		}
		store = ws

		if mode == ModeWrite {
			stream, err = store.OpenWrite(rel)
		} else {
			stream, err = store.OpenAppend(rel)
		}
		if err != nil {
			return s.fail("open", path, ErrOpen, err)
		}

	default:
		return s.fail("open", path, ErrBadMode, nil)
	}

	f.name = rel
	f.mode = mode
	f.store = store
	f.stream = stream
	f.rpos, f.rlen = 0, 0
	f.wbuf = f.wbuf[:0]
	f.setBufferSize(s.bufferSize)

	s.register(f)

	return nil
}

// Name returns the normalized virtual path the file was opened with.
func (f *File) Name() string {
	return f.name
}

// Mode returns the open mode, or [ModeNone] if the file is closed.
func (f *File) Mode() Mode {
	if f.stream == nil {
		return ModeNone
	}

	return f.mode
}

// IsOpen reports whether the file is open.
func (f *File) IsOpen() bool {
	return f.stream != nil
}

func (f *File) check(op string, modes ...Mode) error {
	if f.stream == nil {
		return f.session.fail(op, f.name, ErrNotOpen, nil)
	}

	for _, m := range modes {
		if f.mode == m {
			return nil
		}
	}

	return f.session.fail(op, f.name, ErrBadMode, nil)
}

// Read reads up to len(p) bytes. Fewer bytes are only returned at the end of
// the file, where a read of zero bytes returns [io.EOF].
func (f *File) Read(p []byte) (int, error) {
	if err := f.check("read", ModeRead); err != nil {
		return 0, err
	}

	var (
		n   int
		err error
	)

	if f.bufSize > 0 {
		n, err = f.bufferedRead(p)
	} else {
		n, err = readFull(f.stream, p)
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return n, f.session.fail("read", f.name, ErrRead, err)
	}

	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}

	return n, nil
}

func (f *File) bufferedRead(p []byte) (int, error) {
	n := 0

	for n < len(p) {
		if f.rpos == f.rlen {
			if len(p)-n >= f.bufSize {
				// The buffer no longer describes the stream position.
				f.rpos, f.rlen = 0, 0

				m, err := readFull(f.stream, p[n:])

				return n + m, err
			}

			m, err := readFull(f.stream, f.rbuf[:f.bufSize])
			f.rpos, f.rlen = 0, m

			if m == 0 {
				return n, err
			}
		}

		c := copy(p[n:], f.rbuf[f.rpos:f.rlen])
		f.rpos += c
		n += c
	}

	return n, nil
}

// readFull reads until p is full or the stream ends, which is reported as
// [io.EOF] regardless of the amount read.
func readFull(r io.Reader, p []byte) (int, error) {
	n, err := io.ReadFull(r, p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}

	return n, err
}

func objectBytes(objSize, objCount int) (int, error) {
	if objSize < 0 || objCount < 0 {
		return 0, errInvalidCount
	}

	if objSize != 0 && objCount > math.MaxInt/objSize {
		return 0, errInvalidCount
	}

	return objSize * objCount, nil
}

// ReadObjects reads up to objCount objects of objSize bytes into buf,
// allocating a larger buffer when buf is too small. The returned slice
// holds the bytes read, which are fewer at the end of the file.
func (f *File) ReadObjects(buf []byte, objSize, objCount int) ([]byte, error) {
	total, err := objectBytes(objSize, objCount)
	if err != nil {
		return buf[:0], f.session.fail("read", f.name, ErrRead, err)
	}

	if cap(buf) < total {
		buf = make([]byte, total)
	}
	buf = buf[:total]

	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return buf[:n], err
	}

	return buf[:n], nil
}

// ReadInto reads up to objCount objects of objSize bytes into the fixed
// buffer buf and returns the amount of bytes read.
func (f *File) ReadInto(buf []byte, objSize, objCount int) (int, error) {
	total, err := objectBytes(objSize, objCount)
	if err != nil {
		return 0, f.session.fail("read", f.name, ErrRead, err)
	}

	if len(buf) < total {
		return 0, f.session.fail("read", f.name, ErrBufferTooSmall, nil)
	}

	n, err := f.Read(buf[:total])
	if err != nil && !errors.Is(err, io.EOF) {
		return n, err
	}

	return n, nil
}

// Write writes all of p or fails. Incomplete writes are failures.
func (f *File) Write(p []byte) (int, error) {
	if err := f.check("write", ModeWrite, ModeAppend); err != nil {
		return 0, err
	}

	if f.bufSize > 0 && len(p) < f.bufSize {
		if len(f.wbuf)+len(p) > f.bufSize {
			if err := f.flushWriteBuffer("write"); err != nil {
				return 0, err
			}
		}
		f.wbuf = append(f.wbuf, p...)

		return len(p), nil
	}

	if err := f.flushWriteBuffer("write"); err != nil {
		return 0, err
	}

	n, err := f.stream.Write(p)
	if err != nil {
		return n, f.session.fail("write", f.name, ErrWrite, err)
	}

	if n < len(p) {
		return n, f.session.fail("write", f.name, ErrWrite, io.ErrShortWrite)
	}

	return n, nil
}

// WriteObjects writes exactly objCount objects of objSize bytes from data.
func (f *File) WriteObjects(data []byte, objSize, objCount int) (int, error) {
	total, err := objectBytes(objSize, objCount)
	if err != nil {
		return 0, f.session.fail("write", f.name, ErrWrite, err)
	}

	if len(data) < total {
		return 0, f.session.fail("write", f.name, ErrBufferTooSmall, nil)
	}

	return f.Write(data[:total])
}

func (f *File) flushWriteBuffer(op string) error {
	if len(f.wbuf) == 0 {
		return nil
	}

	n, err := f.stream.Write(f.wbuf)
	if err == nil && n < len(f.wbuf) {
		err = io.ErrShortWrite
	}
	f.wbuf = f.wbuf[:0]

	if err != nil {
		return f.session.fail(op, f.name, ErrWrite, err)
	}

	return nil
}

// Seek moves to an absolute position. Buffered data is discarded or written
// first.
func (f *File) Seek(pos int64) error {
	if err := f.check("seek", ModeRead, ModeWrite, ModeAppend); err != nil {
		return err
	}

	if pos < 0 {
		return f.session.fail("seek", f.name, ErrSeek, storage.ErrSeekOutOfRange)
	}

	if f.mode == ModeRead && f.rlen > 0 {
		start := f.stream.Tell() - int64(f.rlen)
		if pos >= start && pos <= start+int64(f.rlen) {
			f.rpos = int(pos - start)

			return nil
		}
		f.rpos, f.rlen = 0, 0
	}

	if err := f.flushWriteBuffer("seek"); err != nil {
		return err
	}

	if err := f.stream.Seek(pos); err != nil {
		return f.session.fail("seek", f.name, ErrSeek, err)
	}

	return nil
}

// Tell returns the current position.
func (f *File) Tell() (int64, error) {
	if err := f.check("tell", ModeRead, ModeWrite, ModeAppend); err != nil {
		return 0, err
	}

	return f.tell(), nil
}

func (f *File) tell() int64 {
	return f.stream.Tell() - int64(f.rlen-f.rpos) + int64(len(f.wbuf))
}

// Length returns the size of the file, or zero if it is closed.
func (f *File) Length() (int64, error) {
	if f.stream == nil {
		return 0, nil
	}

	size, err := f.stream.Length()
	if err != nil {
		return 0, f.session.fail("length", f.name, ErrIO, err)
	}

	if f.mode != ModeRead {
		size = max(size, f.tell())
	}

	return size, nil
}

// EOF reports whether the position is at the end of the file. A closed file
// is always at its end.
func (f *File) EOF() bool {
	if f.stream == nil {
		return true
	}

	if f.rpos < f.rlen {
		return false
	}

	if len(f.wbuf) > 0 {
		size, err := f.Length()

		return err != nil || f.tell() >= size
	}

	return f.stream.EOF()
}

// Flush forces buffered bytes down to the backing store.
func (f *File) Flush() error {
	if err := f.check("flush", ModeWrite, ModeAppend); err != nil {
		return err
	}

	if err := f.flushWriteBuffer("flush"); err != nil {
		return err
	}

	if err := f.stream.Flush(); err != nil {
		return f.session.fail("flush", f.name, ErrIO, err)
	}

	return nil
}

// SetBuffer sets the size of the read-ahead or write-behind buffer, zero
// disables buffering. Pending buffered data is written or discarded first.
func (f *File) SetBuffer(size int) error {
	if err := f.check("setbuffer", ModeRead, ModeWrite, ModeAppend); err != nil {
		return err
	}

	if size < 0 {
		return f.session.fail("setbuffer", f.name, ErrIO, errInvalidCount)
	}

	if err := f.flushWriteBuffer("setbuffer"); err != nil {
		return err
	}

	if f.rpos < f.rlen {
		pos := f.tell()
		f.rpos, f.rlen = 0, 0

		if err := f.stream.Seek(pos); err != nil {
			return f.session.fail("setbuffer", f.name, ErrSeek, err)
		}
	}

	f.setBufferSize(size)

	return nil
}

func (f *File) setBufferSize(size int) {
	f.bufSize = size
	f.rpos, f.rlen = 0, 0

	if size == 0 {
		f.rbuf, f.wbuf = nil, nil

		return
	}

	if f.mode == ModeRead {
		f.rbuf = make([]byte, size)
	} else {
		f.wbuf = make([]byte, 0, size)
	}
}

// Close writes pending buffered bytes and releases the backing stream.
// Closing a closed file is a no-op.
func (f *File) Close() error {
	if f.stream == nil {
		return nil
	}

	flushErr := f.flushWriteBuffer("close")
	closeErr := f.stream.Close()

	f.stream = nil
	f.store = nil
	f.rbuf, f.wbuf = nil, nil
	f.rpos, f.rlen = 0, 0
	f.session.forget(f)

	if flushErr != nil {
		return flushErr
	}

	if closeErr != nil {
		return f.session.fail("close", f.name, ErrIO, closeErr)
	}

	return nil
}
