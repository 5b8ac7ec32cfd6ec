package configuration

import (
	"fmt"
	"strings"
)

// Keys of the settings file.
const (
	KeyOrganization  = "GOVFS_ORGANIZATION"
	KeyAppName       = "GOVFS_APP_NAME"
	KeySaneConfig    = "GOVFS_SANE_CONFIG"
	KeyArchiveExt    = "GOVFS_ARCHIVE_EXT"
	KeyIncludeCDRoms = "GOVFS_INCLUDE_CDROMS"
	KeyArchivesFirst = "GOVFS_ARCHIVES_FIRST"
	KeyWriteDir      = "GOVFS_WRITE_DIR"
	KeyMounts        = "GOVFS_MOUNTS"
	KeyBufferSize    = "GOVFS_BUFFER_SIZE"
	KeyCacheEntries  = "GOVFS_CACHE_ENTRIES"
	KeyMinFreeSpace  = "GOVFS_MIN_FREE_SPACE"
)

const (
	// DefaultAppName is the application name used when none is configured.
	DefaultAppName = "govfs"

	// DefaultArchiveExt is the archive extension probed by the sane
	// configuration when none is configured.
	DefaultArchiveExt = "zip"
)

// MountSpec describes a store to mount. It is written as
// "realPath[=mountPoint]", prefixed with "^" to put it at the front of the
// search path.
type MountSpec struct {
	RealPath   string
	MountPoint string
	Append     bool
}

func (m MountSpec) String() string {
	s := m.RealPath
	if m.MountPoint != "" && m.MountPoint != "/" {
		s += "=" + m.MountPoint
	}
	if !m.Append {
		s = "^" + s
	}

	return s
}

// ParseMountSpec parses the textual form of a [MountSpec].
func ParseMountSpec(s string) (MountSpec, error) {
	spec := MountSpec{Append: true, MountPoint: "/"}

	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "^"); ok {
		spec.Append = false
		s = rest
	}

	realPath, mountPoint, hasMountPoint := strings.Cut(s, "=")
	spec.RealPath = strings.TrimSpace(realPath)

	if spec.RealPath == "" {
		return MountSpec{}, fmt.Errorf("(config-mountspec) %w: %q", ErrInvalidMount, s)
	}

	if hasMountPoint {
		spec.MountPoint = strings.TrimSpace(mountPoint)
		if spec.MountPoint == "" {
			return MountSpec{}, fmt.Errorf("(config-mountspec) %w: empty mount point in %q", ErrInvalidMount, s)
		}
	}

	return spec, nil
}

// Settings is the configuration of a session established by the
// command-line tool.
type Settings struct {
	Organization  string
	AppName       string
	SaneConfig    bool
	ArchiveExt    string
	IncludeCDRoms bool
	ArchivesFirst bool
	WriteDir      string
	Mounts        []MountSpec
	BufferSize    int
	CacheEntries  int
	MinFreeSpace  uint64
}

// DefaultSettings returns the [Settings] used for missing keys.
func DefaultSettings() Settings {
	return Settings{
		AppName:    DefaultAppName,
		ArchiveExt: DefaultArchiveExt,
	}
}

// LoadSettings reads the given settings files over [DefaultSettings].
func (c *Handler) LoadSettings(filenames ...string) (Settings, error) {
	envMap, err := c.ReadGeneric(filenames...)
	if err != nil {
		return Settings{}, err
	}

	return c.SettingsFromMap(envMap)
}

// SettingsFromMap converts an already read settings map over
// [DefaultSettings].
func (c *Handler) SettingsFromMap(envMap map[string]string) (Settings, error) {
	settings := DefaultSettings()

	if v := c.MapKeyToString(envMap, KeyOrganization); v != "" {
		settings.Organization = v
	}
	if v := c.MapKeyToString(envMap, KeyAppName); v != "" {
		settings.AppName = v
	}
	if _, exists := envMap[KeyArchiveExt]; exists {
		settings.ArchiveExt = strings.TrimPrefix(c.MapKeyToString(envMap, KeyArchiveExt), ".")
	}

	settings.SaneConfig = c.MapKeyToBool(envMap, KeySaneConfig, settings.SaneConfig)
	settings.IncludeCDRoms = c.MapKeyToBool(envMap, KeyIncludeCDRoms, settings.IncludeCDRoms)
	settings.ArchivesFirst = c.MapKeyToBool(envMap, KeyArchivesFirst, settings.ArchivesFirst)
	settings.WriteDir = c.MapKeyToString(envMap, KeyWriteDir)
	settings.MinFreeSpace = c.MapKeyToUInt64(envMap, KeyMinFreeSpace)

	for _, elem := range c.MapKeyToList(envMap, KeyMounts) {
		spec, err := ParseMountSpec(elem)
		if err != nil {
			return Settings{}, err
		}
		settings.Mounts = append(settings.Mounts, spec)
	}

	if c.MapKeyToString(envMap, KeyBufferSize) != "" {
		size := c.MapKeyToInt(envMap, KeyBufferSize)
		if size < 0 {
			return Settings{}, fmt.Errorf("(config-settings) %w: %s", ErrInvalidValue, KeyBufferSize)
		}
		settings.BufferSize = size
	}

	if c.MapKeyToString(envMap, KeyCacheEntries) != "" {
		entries := c.MapKeyToInt(envMap, KeyCacheEntries)
		if entries < 0 {
			// A literal negative value disables the cache.
			if c.MapKeyToString(envMap, KeyCacheEntries) != "-1" {
				return Settings{}, fmt.Errorf("(config-settings) %w: %s", ErrInvalidValue, KeyCacheEntries)
			}
		}
		settings.CacheEntries = entries
	}

	return settings, nil
}
