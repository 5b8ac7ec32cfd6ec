// Package pathing implements the virtual path rules shared by the mount table,
// the backing stores and the session. Virtual paths are forward-slash
// separated, carry no leading or trailing slash and the root is the empty
// string.
package pathing

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Normalize converts a caller-supplied virtual path into its canonical form.
// Separators are collapsed, "." and ".." segments are resolved and leading and
// trailing slashes are stripped. A path resolving above the root is rejected
// rather than being clamped.
func Normalize(p string) (string, error) {
	if strings.ContainsRune(p, '\\') {
		return "", fmt.Errorf("(pathing-normalize) %w: %q", ErrBackslash, p)
	}

	if strings.IndexByte(p, 0) >= 0 {
		return "", fmt.Errorf("(pathing-normalize) %w: %q", ErrNulByte, p)
	}

	depth := 0
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			depth--
			if depth < 0 {
				return "", fmt.Errorf("(pathing-normalize) %w: %q", ErrEscapesRoot, p)
			}
		default:
			depth++
		}
	}

	cleaned := path.Clean("/" + p)

	return strings.TrimPrefix(cleaned, "/"), nil
}

// NormalizeMountPoint is [Normalize] for mount points, where an empty string
// or a lone slash both denote the root.
func NormalizeMountPoint(mp string) (string, error) {
	if mp == "" || mp == "/" {
		return "", nil
	}

	return Normalize(mp)
}

// StripPrefix strips a normalized mount point prefix from a normalized virtual
// path. The match respects segment boundaries, so "a/b" is a prefix of "a/b"
// and "a/b/c" but never of "a/bc". The root prefix matches every path.
func StripPrefix(p, prefix string) (string, bool) {
	if prefix == "" {
		return p, true
	}

	if p == prefix {
		return "", true
	}

	if strings.HasPrefix(p, prefix) && p[len(prefix)] == '/' {
		return p[len(prefix)+1:], true
	}

	return "", false
}

// IsAncestor reports whether the normalized path p lies strictly above the
// normalized mount point mp, which makes p an implicit directory.
func IsAncestor(p, mp string) bool {
	if mp == "" || p == mp {
		return false
	}

	_, ok := StripPrefix(mp, p)

	return ok
}

// ChildOf returns the first segment of mp below its ancestor p.
func ChildOf(p, mp string) (string, bool) {
	if !IsAncestor(p, mp) {
		return "", false
	}

	rest, _ := StripPrefix(mp, p)
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}

	return rest, true
}

// Join joins virtual path elements and normalizes the result.
func Join(elem ...string) (string, error) {
	return Normalize(strings.Join(elem, "/"))
}

// ToNative converts a normalized store-relative path into a real path below
// root, using the host platform's separator.
func ToNative(root, rel string) string {
	if rel == "" {
		return filepath.Clean(root)
	}

	return filepath.Join(root, filepath.FromSlash(rel))
}
