package schema

import "time"

// Metadata holds the stat information of a file or directory as reported by
// a backing store. It is meant to be passed by value.
type Metadata struct {
	Size      int64
	ModTime   time.Time
	IsDir     bool
	IsSymlink bool
	ReadOnly  bool
}
