package vfs

import (
	"errors"

	"github.com/desertwitch/govfs/internal/mount"
)

var (
	// ErrInit occurs when the platform layer fails to start during
	// [Session.Init].
	ErrInit = errors.New("failed to initialize")

	// ErrAlreadyInit occurs when [Session.Init] is called on an initialized
	// session.
	ErrAlreadyInit = errors.New("session is already initialized")

	// ErrNotInitialized occurs when a session is used before [Session.Init]
	// or after [Session.Deinit].
	ErrNotInitialized = errors.New("session is not initialized")

	// ErrMount occurs when a store cannot be opened, validated or mounted.
	ErrMount = errors.New("failed to mount")

	// ErrNotMounted occurs when unmounting or querying a store that is not
	// mounted.
	ErrNotMounted = mount.ErrNotMounted

	// ErrNotFound occurs when no mounted store contains a virtual path.
	ErrNotFound = mount.ErrNotFound

	// ErrBusy occurs when a store still has open files, or the write
	// directory is changed while files are open for writing.
	ErrBusy = errors.New("files are still open")

	// ErrNoWriteDir occurs when a write operation finds no write directory
	// bound and none can be derived from the session's application name.
	ErrNoWriteDir = errors.New("no write directory set")

	// ErrOpen occurs when a backing store fails to open a file.
	ErrOpen = errors.New("failed to open")

	// ErrAlreadyOpen occurs when opening a [File] that is already open.
	ErrAlreadyOpen = errors.New("file is already open")

	// ErrSeek occurs when a position is invalid or unsupported by the store.
	ErrSeek = errors.New("failed to seek")

	// ErrRead occurs when a backing read fails. Reaching the end of a file
	// is not a failure.
	ErrRead = errors.New("failed to read")

	// ErrWrite occurs when a backing write fails or is incomplete.
	ErrWrite = errors.New("failed to write")

	// ErrIO occurs when flushing, closing, stat or directory operations
	// fail, and when fewer bytes than a fixed-width value needs are left.
	ErrIO = errors.New("i/o failure")

	// ErrConfig occurs when a step of [Session.SetSaneConfig] fails.
	ErrConfig = errors.New("failed to configure")

	// ErrNotOpen occurs when operating on a [File] that is not open.
	ErrNotOpen = errors.New("file is not open")

	// ErrBadMode occurs when a [File] operation does not fit its open mode.
	ErrBadMode = errors.New("operation not permitted in open mode")

	// ErrBufferTooSmall occurs when a fixed-size buffer cannot hold the
	// requested amount of objects.
	ErrBufferTooSmall = errors.New("buffer too small")

	errInvalidCount = errors.New("invalid object size or count")
)

// Error is the structured failure of a session or file operation. It
// matches both its Kind and the wrapped backing error with [errors.Is].
type Error struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.Error()

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

func newError(op, path string, kind error, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}
