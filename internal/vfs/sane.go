package vfs

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/desertwitch/govfs/internal/storage"
	"github.com/panjf2000/ants/v2"
)

// ConfigFlags are the options of [Session.SetSaneConfig].
type ConfigFlags uint8

const (
	// IncludeCDRoms also mounts the media of optical drives.
	IncludeCDRoms ConfigFlags = 1 << iota

	// ArchivesFirst gives archives search priority over the base directory.
	ArchivesFirst
)

// SetSaneConfig is a convenience configuration. It binds the preference
// directory of org and app as the write directory and mounts it at the
// front of the search path, followed by the base directory. Optical media
// are mounted next when [IncludeCDRoms] is set. Finally every archive with
// the extension archiveExt in the base directory is mounted in name order,
// each at the front of the search path when [ArchivesFirst] is set and at
// its end otherwise. Archives failing to open are skipped.
//
// The configuration is not atomic: a failing step returns [ErrConfig] and
// leaves the mounts of the previous steps in place.
func (s *Session) SetSaneConfig(org, app, archiveExt string, flags ConfigFlags) error {
	s.Lock()
	defer s.Unlock()

	if err := s.checkInit("setsaneconfig", app); err != nil {
		return err
	}

	s.org, s.app = org, app

	pref, err := s.platformHandler.PrefDir(org, app)
	if err != nil {
		return s.fail("setsaneconfig", app, ErrConfig, err)
	}

	if err := s.ensureRealDir(pref); err != nil {
		return s.fail("setsaneconfig", pref, ErrConfig, err)
	}

	if err := s.setWriteDir("setsaneconfig", pref); err != nil {
		return s.fail("setsaneconfig", pref, ErrConfig, err)
	}

	if err := s.mount("setsaneconfig", pref, "", false); err != nil {
		return s.fail("setsaneconfig", pref, ErrConfig, err)
	}

	if err := s.mount("setsaneconfig", s.baseDir, "", true); err != nil {
		return s.fail("setsaneconfig", s.baseDir, ErrConfig, err)
	}

	if flags&IncludeCDRoms != 0 {
		drives, err := s.platformHandler.CDRoms()
		if err != nil {
			return s.fail("setsaneconfig", "", ErrConfig, err)
		}

		for _, drive := range drives {
			if err := s.mount("setsaneconfig", drive, "", true); err != nil {
				slog.Warn("Skipped optical drive: failed to mount",
					"drive", drive,
					"err", err,
				)
			}
		}
	}

	if archiveExt == "" {
		return nil
	}

	stores, err := s.probeArchives(archiveExt)
	if err != nil {
		return s.fail("setsaneconfig", s.baseDir, ErrConfig, err)
	}

	for _, store := range stores {
		added, err := s.table.Mount(store, "", flags&ArchivesFirst == 0)
		if err != nil || !added {
			store.Close()
		}
		if err != nil {
			return s.fail("setsaneconfig", store.Root(), ErrConfig, err)
		}
	}

	slog.Debug("Applied sane configuration",
		"writeDir", s.writeDir,
		"searchPath", s.table.SearchPath(),
	)

	return nil
}

// probeArchives opens every archive with the given extension in the base
// directory concurrently. The opened stores are returned sorted by name.
func (s *Session) probeArchives(ext string) ([]storage.Store, error) {
	entries, err := s.osHandler.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("(vfs-probearchives) failed to readdir: %w", err)
	}

	var paths []string

	for _, e := range entries {
		if e.IsDir() || !hasArchiveExt(e.Name(), ext) {
			continue
		}
		paths = append(paths, filepath.Join(s.baseDir, e.Name()))
	}

	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(min(len(paths), runtime.NumCPU()))
	if err != nil {
		return nil, fmt.Errorf("(vfs-probearchives) failed to create pool: %w", err)
	}
	defer pool.Release()

	results := make([]storage.Store, len(paths))

	var (
		wg        sync.WaitGroup
		submitErr error
	)

	for i, p := range paths {
		wg.Add(1)

		err := pool.Submit(func() {
			defer wg.Done()

			store, err := storage.NewArchiveStore(p, s.registry, s.archiveOpts)
			if err != nil {
				slog.Warn("Skipped archive: failed to open",
					"path", p,
					"err", err,
				)

				return
			}
			results[i] = store
		})
		if err != nil {
			wg.Done()
			submitErr = fmt.Errorf("(vfs-probearchives) failed to submit: %w", err)

			break
		}
	}

	wg.Wait()

	if submitErr != nil {
		for _, store := range results {
			if store != nil {
				store.Close()
			}
		}

		return nil, submitErr
	}

	stores := make([]storage.Store, 0, len(results))
	for _, store := range results {
		if store != nil {
			stores = append(stores, store)
		}
	}

	return stores, nil
}
