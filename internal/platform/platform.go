// Package platform discovers the host directories a virtual file system
// session is configured with: the base directory of the running program,
// the user's home directory, per-application preference directories and
// the mount points of removable media.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvDataHome overrides the parent of all preference directories.
	EnvDataHome = "XDG_DATA_HOME"

	// DefaultDataHome is the parent of all preference directories below the
	// home directory, unless overridden by [EnvDataHome].
	DefaultDataHome = ".local/share"
)

type osProvider interface {
	Executable() (string, error)
	Getenv(key string) string
	ReadFile(name string) ([]byte, error)
}

type homeProvider interface {
	Dir() (string, error)
}

// Handler is the principal implementation for the platform discovery.
type Handler struct {
	osHandler   osProvider
	homeHandler homeProvider
	mountsFile  string
}

// NewHandler returns a pointer to a new platform [Handler].
func NewHandler(osHandler osProvider, homeHandler homeProvider) *Handler {
	return &Handler{
		osHandler:   osHandler,
		homeHandler: homeHandler,
		mountsFile:  MountsFile,
	}
}

// BaseDir returns the directory containing the running executable, with a
// trailing separator.
func (h *Handler) BaseDir() (string, error) {
	exe, err := h.osHandler.Executable()
	if err != nil {
		return "", fmt.Errorf("(platform-basedir) failed to get executable: %w", err)
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return withSeparator(filepath.Dir(exe)), nil
}

// UserDir returns the home directory of the user, with a trailing separator.
func (h *Handler) UserDir() (string, error) {
	home, err := h.homeHandler.Dir()
	if err != nil {
		return "", fmt.Errorf("(platform-userdir) %w: %w", ErrNoHomeDir, err)
	}

	if home == "" {
		return "", fmt.Errorf("(platform-userdir) %w", ErrNoHomeDir)
	}

	return withSeparator(home), nil
}

// PrefDir returns the per-application preference directory, with a trailing
// separator. The organization segment is left out when empty. The directory
// is not created.
func (h *Handler) PrefDir(org, app string) (string, error) {
	if app == "" {
		return "", fmt.Errorf("(platform-prefdir) %w", ErrNoAppName)
	}

	base := h.osHandler.Getenv(EnvDataHome)
	if base == "" {
		home, err := h.UserDir()
		if err != nil {
			return "", fmt.Errorf("(platform-prefdir) %w", err)
		}
		base = filepath.Join(home, filepath.FromSlash(DefaultDataHome))
	}

	if org != "" {
		return withSeparator(filepath.Join(base, org, app)), nil
	}

	return withSeparator(filepath.Join(base, app)), nil
}

func withSeparator(dir string) string {
	if strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir
	}

	return dir + string(os.PathSeparator)
}
