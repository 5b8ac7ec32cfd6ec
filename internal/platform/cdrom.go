package platform

import (
	"bufio"
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MountsFile lists the mounted filesystems of the host.
const MountsFile = "/proc/mounts"

// OpticalFSTypes are the filesystem types of removable optical media.
var OpticalFSTypes = []string{"iso9660", "udf"} //nolint:gochecknoglobals

// CDRoms returns the mount points of all mounted optical media, in the order
// the host lists them.
func (h *Handler) CDRoms() ([]string, error) {
	data, err := h.osHandler.ReadFile(h.mountsFile)
	if err != nil {
		return nil, fmt.Errorf("(platform-cdroms) failed to read mounts: %w", err)
	}

	var drives []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 { //nolint:mnd
			continue
		}

		if !slices.Contains(OpticalFSTypes, fields[2]) {
			continue
		}

		drives = append(drives, unescapeMountField(fields[1]))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("(platform-cdroms) failed to parse mounts: %w", err)
	}

	return drives, nil
}

// unescapeMountField decodes the octal escapes (such as \040 for a space) the
// kernel applies to whitespace within mount table fields.
func unescapeMountField(field string) string {
	if !strings.Contains(field, `\`) {
		return field
	}

	var b strings.Builder

	for i := 0; i < len(field); i++ {
		if field[i] == '\\' && i+4 <= len(field) {
			if v, err := strconv.ParseUint(field[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3

				continue
			}
		}
		b.WriteByte(field[i])
	}

	return b.String()
}
