// Package archivetest builds archive fixtures for tests of the packages that
// consume archives.
package archivetest

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

// FixedTime is the modification time stamped on all fixture entries.
var FixedTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC) //nolint:gochecknoglobals

func sortedNames(files map[string]string) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// WriteZip writes a deflate-compressed zip archive with the given entries
// into dir and returns its path.
func WriteZip(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, n := range sortedNames(files) {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     n,
			Method:   zip.Deflate,
			Modified: FixedTime,
		})
		require.NoError(t, err)

		_, err = io.WriteString(w, files[n])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	return path
}

func tarBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	for _, n := range sortedNames(files) {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     n,
			Mode:     0o644,
			Size:     int64(len(files[n])),
			ModTime:  FixedTime,
			Typeflag: tar.TypeReg,
		}))

		_, err := io.WriteString(tw, files[n])
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())

	return buf.Bytes()
}

// WriteTar writes an uncompressed tar archive into dir and returns its path.
func WriteTar(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, tarBytes(t, files), 0o644))

	return path
}

// WriteTarGzip writes a gzip-compressed tar archive into dir and returns its
// path.
func WriteTarGzip(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)

	_, err := gw.Write(tarBytes(t, files))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	return path
}

// WriteTarZstd writes a zstd-compressed tar archive into dir and returns its
// path.
func WriteTarZstd(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)

	_, err = enc.Write(tarBytes(t, files))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	return path
}

// WriteBolt writes a bolt archive into dir and returns its path.
func WriteBolt(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	require.NoError(t, err)

	err = db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte("files"))
		if err != nil {
			return err
		}

		for _, n := range sortedNames(files) {
			if err := b.Put([]byte(n), []byte(files[n])); err != nil {
				return err
			}
		}

		return nil
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	return path
}
