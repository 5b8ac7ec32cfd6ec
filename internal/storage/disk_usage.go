package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

const (
	// DiskUsageCacherInterval is the updating interval of the disk usage cache.
	DiskUsageCacherInterval = 3 * time.Second
)

type unixStatfsProvider interface {
	Statfs(path string, buf *unix.Statfs_t) error
}

// DiskStats holds disk usage information. It is meant to be passed by value.
type DiskStats struct {
	TotalSize uint64
	FreeSpace uint64
}

// UsedSpace returns the amount of bytes in use.
func (d DiskStats) UsedSpace() uint64 {
	if d.FreeSpace > d.TotalSize {
		return 0
	}

	return d.TotalSize - d.FreeSpace
}

// UsedRatio returns the used fraction of the total size, from 0 to 1.
func (d DiskStats) UsedRatio() float64 {
	if d.TotalSize == 0 {
		return 0
	}

	return float64(d.UsedSpace()) / float64(d.TotalSize)
}

// DiskUsage returns the [DiskStats] of the filesystem the store is rooted on.
func (s *DirStore) DiskUsage() (DiskStats, error) {
	stats, err := diskUsageFromOS(s.unixHandler, s.root)
	if err != nil {
		return DiskStats{}, fmt.Errorf("(storage-diskusage) %w", err)
	}

	return stats, nil
}

// HasEnoughFreeSpace reports whether the store can house fileSize bytes
// without its filesystem dropping below minFree free bytes.
func (s *DirStore) HasEnoughFreeSpace(minFree uint64, fileSize uint64) (bool, error) {
	stats, err := s.DiskUsage()
	if err != nil {
		return false, err
	}

	return hasEnoughFreeSpace(stats, minFree, fileSize), nil
}

func hasEnoughFreeSpace(stats DiskStats, minFree uint64, fileSize uint64) bool {
	requiredFree := minFree
	if minFree <= fileSize {
		requiredFree = fileSize
	}

	return stats.FreeSpace > requiredFree
}

func diskUsageFromOS(unixHandler unixStatfsProvider, path string) (DiskStats, error) {
	var stat unix.Statfs_t
	if err := unixHandler.Statfs(path, &stat); err != nil {
		return DiskStats{}, fmt.Errorf("failed to statfs: %w", err)
	}

	return DiskStats{
		TotalSize: stat.Blocks * handleSize(stat.Bsize),
		FreeSpace: stat.Bavail * handleSize(stat.Bsize),
	}, nil
}

// DiskUsageCacher caches the [DiskStats] of real paths in a thread-safe
// manner, refreshing them periodically once started.
type DiskUsageCacher struct {
	sync.RWMutex
	unixHandler unixStatfsProvider
	cache       map[string]DiskStats
}

// NewDiskUsageCacher returns a pointer to a new [DiskUsageCacher]. The update
// method is started, refreshing the cached data every
// [DiskUsageCacherInterval] until the context is cancelled.
func NewDiskUsageCacher(ctx context.Context, unixHandler unixStatfsProvider) *DiskUsageCacher {
	cacher := &DiskUsageCacher{
		unixHandler: unixHandler,
		cache:       make(map[string]DiskStats),
	}
	go cacher.periodicUpdate(ctx)

	return cacher
}

func (c *DiskUsageCacher) periodicUpdate(ctx context.Context) {
	ticker := time.NewTicker(DiskUsageCacherInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.Update()
		}
	}
}

// Update refreshes all cached paths. Paths failing to refresh are dropped
// from the cache.
func (c *DiskUsageCacher) Update() error {
	c.Lock()
	defer c.Unlock()

	var firstErr error

	for path := range c.cache {
		stats, err := diskUsageFromOS(c.unixHandler, path)
		if err != nil {
			delete(c.cache, path)
			if firstErr == nil {
				firstErr = fmt.Errorf("(storage-diskusage-update) %w", err)
			}

			continue
		}
		c.cache[path] = stats
	}

	return firstErr
}

// GetDiskUsageFresh gets the [DiskStats] of path from the OS and caches them.
func (c *DiskUsageCacher) GetDiskUsageFresh(path string) (DiskStats, error) {
	c.Lock()
	defer c.Unlock()

	stats, err := diskUsageFromOS(c.unixHandler, path)
	if err != nil {
		return DiskStats{}, fmt.Errorf("(storage-diskusage-fresh) %w", err)
	}
	c.cache[path] = stats

	return stats, nil
}

// GetDiskUsage returns the cached [DiskStats] of path, falling back to
// [DiskUsageCacher.GetDiskUsageFresh] when none are cached.
func (c *DiskUsageCacher) GetDiskUsage(path string) (DiskStats, error) {
	c.RLock()
	if stats, exists := c.cache[path]; exists {
		c.RUnlock()

		return stats, nil
	}
	c.RUnlock()

	return c.GetDiskUsageFresh(path)
}

// handleSize converts an int64 size to a uint64 size (with sizes < 0 becoming 0).
func handleSize(size int64) uint64 {
	if size < 0 {
		return 0
	}

	return uint64(size)
}
