package archive

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Registry holds the known [Decoder] implementations in probing order.
type Registry struct {
	sync.RWMutex
	decoders []Decoder
}

// NewRegistry returns a pointer to a new [Registry] holding the given
// decoders.
func NewRegistry(decoders ...Decoder) *Registry {
	return &Registry{
		decoders: decoders,
	}
}

// DefaultRegistry returns a pointer to a new [Registry] with all formats
// shipped by this package.
func DefaultRegistry() *Registry {
	return NewRegistry(
		&ZipDecoder{},
		&TarDecoder{},
		&TarGzipDecoder{},
		&TarZstdDecoder{},
		&BoltDecoder{},
	)
}

// Register appends a [Decoder] to the probing order. Registering a format
// with a name that is already known replaces the previous decoder.
func (r *Registry) Register(d Decoder) {
	r.Lock()
	defer r.Unlock()

	for i, known := range r.decoders {
		if known.Name() == d.Name() {
			r.decoders[i] = d

			return
		}
	}

	r.decoders = append(r.decoders, d)
}

// Decoders returns a snapshot of the registered decoders.
func (r *Registry) Decoders() []Decoder {
	r.RLock()
	defer r.RUnlock()

	return append([]Decoder(nil), r.decoders...)
}

// ForPath returns the [Decoder] whose extension matches the given file name.
// The comparison is case-insensitive and the longest matching extension wins,
// so ".tar.zst" is preferred over a hypothetical ".zst".
func (r *Registry) ForPath(path string) (Decoder, bool) {
	r.RLock()
	defer r.RUnlock()

	lower := strings.ToLower(path)

	var best Decoder
	bestLen := 0

	for _, d := range r.decoders {
		for _, ext := range d.Extensions() {
			if strings.HasSuffix(lower, ext) && len(ext) > bestLen {
				best = d
				bestLen = len(ext)
			}
		}
	}

	return best, best != nil
}

// Open opens the archive at path. The decoder matching the file extension is
// tried first; without a match every decoder is probed in registration order.
func (r *Registry) Open(path string) (Index, error) {
	if d, ok := r.ForPath(path); ok {
		idx, err := d.Open(path)
		if err != nil {
			return nil, fmt.Errorf("(archive-open) %s: %w", d.Name(), err)
		}

		return idx, nil
	}

	var errs []error

	for _, d := range r.Decoders() {
		idx, err := d.Open(path)
		if err == nil {
			slog.Debug("Archive format detected by probing",
				"path", path,
				"format", d.Name(),
			)

			return idx, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", d.Name(), err))
	}

	return nil, fmt.Errorf("(archive-open) %w: %s: %w", ErrUnsupportedArchive, path, errors.Join(errs...))
}
