package vfs

import (
	"encoding/hex"
	"io"
	"path/filepath"

	"github.com/zeebo/blake3"
)

// Dir selects one of the session's real directories.
type Dir int

const (
	// BaseDir is the directory of the running program.
	BaseDir Dir = iota

	// UserDir is the home directory of the user.
	UserDir

	// WriteDir is the write directory.
	WriteDir
)

func (d Dir) String() string {
	switch d {
	case BaseDir:
		return "base"
	case UserDir:
		return "user"
	case WriteDir:
		return "write"
	default:
		return "unknown"
	}
}

// MakeFilePath joins one of the session's real directories with a
// forward-slash separated name, using the host's separator. No I/O is done.
func (s *Session) MakeFilePath(which Dir, name string) (string, error) {
	s.RLock()
	defer s.RUnlock()

	if err := s.checkInit("makefilepath", name); err != nil {
		return "", err
	}

	var dir string

	switch which {
	case BaseDir:
		dir = s.baseDir
	case UserDir:
		dir = s.userDir
	case WriteDir:
		dir = s.writeDir
		if dir == "" {
			return "", s.fail("makefilepath", name, ErrNoWriteDir, nil)
		}
	default:
		return "", s.fail("makefilepath", name, ErrBadMode, nil)
	}

	return filepath.Join(dir, filepath.FromSlash(name)), nil
}

// FindFilePath returns the real path of name within the write directory if
// it exists there, else within the base directory. [ErrNotFound] is
// returned when neither holds it.
func (s *Session) FindFilePath(name string) (string, error) {
	for _, which := range []Dir{WriteDir, BaseDir} {
		p, err := s.MakeFilePath(which, name)
		if err != nil {
			continue
		}

		if _, err := s.osHandler.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", s.fail("findfilepath", name, ErrNotFound, nil)
}

// Checksum returns the hex encoded BLAKE3 digest of a virtual file.
func (s *Session) Checksum(path string) (string, error) {
	f, err := s.OpenRead(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", s.record(err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
