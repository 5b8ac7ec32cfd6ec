package mount

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/govfs/internal/pathing"
	"github.com/desertwitch/govfs/internal/schema"
	"github.com/desertwitch/govfs/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closeCountingStore counts the calls to Close of the wrapped store.
type closeCountingStore struct {
	storage.Store
	closes   int
	closeErr error
}

func (c *closeCountingStore) Close() error {
	c.closes++

	return c.closeErr
}

func newDirStore(t *testing.T, files map[string]string) *storage.DirStore {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}

	s, err := storage.NewDirStore(root, &schema.OS{}, &schema.Unix{})
	require.NoError(t, err)

	return s
}

func TestTable_Mount_Order(t *testing.T) {
	t.Parallel()

	a := newDirStore(t, map[string]string{"cfg.txt": "a"})
	b := newDirStore(t, map[string]string{"cfg.txt": "b"})
	c := newDirStore(t, map[string]string{"cfg.txt": "c"})

	tbl := NewTable()

	_, err := tbl.Mount(a, "/", true)
	require.NoError(t, err)
	_, err = tbl.Mount(b, "", true)
	require.NoError(t, err)
	_, err = tbl.Mount(c, "/", false)
	require.NoError(t, err)

	assert.Equal(t, []string{c.Root(), a.Root(), b.Root()}, tbl.SearchPath())

	res, err := tbl.Resolve("cfg.txt")
	require.NoError(t, err)
	assert.Equal(t, c.Root(), res.Store.Root())
	assert.Equal(t, "cfg.txt", res.RelPath)

	all, err := tbl.ResolveAll("/cfg.txt")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, b.Root(), all[2].Store.Root())
}

func TestTable_Mount_PrependAppendScenario(t *testing.T) {
	t.Parallel()

	dirA := newDirStore(t, map[string]string{"cfg.txt": "from A"})
	dirB := newDirStore(t, map[string]string{"cfg.txt": "from B", "only_b.txt": "b"})

	tbl := NewTable()

	_, err := tbl.Mount(dirA, "/", false)
	require.NoError(t, err)
	_, err = tbl.Mount(dirB, "/", true)
	require.NoError(t, err)

	res, err := tbl.Resolve("cfg.txt")
	require.NoError(t, err)
	assert.Equal(t, dirA.Root(), res.Store.Root())

	res, err = tbl.Resolve("only_b.txt")
	require.NoError(t, err)
	assert.Equal(t, dirB.Root(), res.Store.Root())
}

func TestTable_Mount_Duplicate(t *testing.T) {
	t.Parallel()

	a := newDirStore(t, nil)
	tbl := NewTable()

	added, err := tbl.Mount(a, "/", true)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = tbl.Mount(a, "/other", false)
	require.NoError(t, err)
	assert.False(t, added)

	mp, err := tbl.MountPoint(a.Root())
	require.NoError(t, err)
	assert.Equal(t, "/", mp)
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_Mount_Fail(t *testing.T) {
	t.Parallel()

	tbl := NewTable()

	_, err := tbl.Mount(nil, "/", true)
	require.ErrorIs(t, err, ErrNilStore)

	_, err = tbl.Mount(newDirStore(t, nil), "../up", true)
	require.ErrorIs(t, err, pathing.ErrEscapesRoot)
}

func TestTable_Resolve_StripsPrefix_Table(t *testing.T) {
	t.Parallel()

	s := newDirStore(t, map[string]string{"maps/e1m1.bsp": "x", "readme": "y"})

	testCases := []struct {
		name       string
		mountPoint string
		path       string
		rel        string
		found      bool
	}{
		{"Root", "/", "maps/e1m1.bsp", "maps/e1m1.bsp", true},
		{"Prefix", "/game/data", "/game/data/maps/e1m1.bsp", "maps/e1m1.bsp", true},
		{"PrefixTrailingSlash", "game/data/", "game/data/readme", "readme", true},
		{"PrefixItself", "/game", "game", "", true},
		{"DotSegments", "/game", "game/./maps/../readme", "readme", true},
		{"NoSegmentMatch", "/game", "gamedata/readme", "", false},
		{"OutsidePrefix", "/game", "readme", "", false},
		{"Missing", "/", "missing", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tbl := NewTable()
			_, err := tbl.Mount(&closeCountingStore{Store: s}, tc.mountPoint, true)
			require.NoError(t, err)

			res, err := tbl.Resolve(tc.path)
			if !tc.found {
				require.ErrorIs(t, err, ErrNotFound)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.rel, res.RelPath)
		})
	}
}

func TestTable_Unmount(t *testing.T) {
	t.Parallel()

	a := &closeCountingStore{Store: newDirStore(t, map[string]string{"f": "a"})}
	b := &closeCountingStore{Store: newDirStore(t, map[string]string{"f": "b"})}

	tbl := NewTable()
	_, err := tbl.Mount(a, "/", true)
	require.NoError(t, err)
	_, err = tbl.Mount(b, "/", true)
	require.NoError(t, err)

	require.NoError(t, tbl.Unmount(a.Root()))
	assert.Equal(t, 1, a.closes)
	assert.Equal(t, []string{b.Root()}, tbl.SearchPath())

	res, err := tbl.Resolve("f")
	require.NoError(t, err)
	assert.Equal(t, b.Root(), res.Store.Root())

	require.ErrorIs(t, tbl.Unmount(a.Root()), ErrNotMounted)

	_, err = tbl.MountPoint(a.Root())
	require.ErrorIs(t, err, ErrNotMounted)

	_, ok := tbl.Lookup(a.Root())
	assert.False(t, ok)
}

func TestTable_Unmount_Fail_Close(t *testing.T) {
	t.Parallel()

	closeErr := errors.New("close failure")
	a := &closeCountingStore{Store: newDirStore(t, nil), closeErr: closeErr}

	tbl := NewTable()
	_, err := tbl.Mount(a, "/", true)
	require.NoError(t, err)

	require.ErrorIs(t, tbl.Unmount(a.Root()), closeErr)
	assert.Equal(t, 0, tbl.Len())
}

func TestTable_MountPointChildren(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	_, err := tbl.Mount(newDirStore(t, nil), "/game/data", true)
	require.NoError(t, err)
	_, err = tbl.Mount(newDirStore(t, nil), "/game/mods/x", true)
	require.NoError(t, err)
	_, err = tbl.Mount(newDirStore(t, nil), "/game/data", true)
	require.NoError(t, err)

	assert.Equal(t, []string{"game"}, tbl.MountPointChildren(""))
	assert.Equal(t, []string{"data", "mods"}, tbl.MountPointChildren("game"))
	assert.Nil(t, tbl.MountPointChildren("game/data"))
}

func TestTable_Clear(t *testing.T) {
	t.Parallel()

	a := &closeCountingStore{Store: newDirStore(t, nil)}
	b := &closeCountingStore{Store: newDirStore(t, nil), closeErr: errors.New("boom")}

	tbl := NewTable()
	_, err := tbl.Mount(a, "/", true)
	require.NoError(t, err)
	_, err = tbl.Mount(b, "/", true)
	require.NoError(t, err)

	entries := tbl.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "", entries[0].MountPoint)

	require.Error(t, tbl.Clear())
	assert.Equal(t, 1, a.closes)
	assert.Equal(t, 1, b.closes)
	assert.Empty(t, tbl.SearchPath())

	require.NoError(t, tbl.Clear())
}
