package vfs

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndian_ByteLayout(t *testing.T) {
	t.Parallel()

	s, w := newWritableSession(t)

	f, err := s.OpenWrite("layout.bin")
	require.NoError(t, err)

	require.NoError(t, WriteBE(f, uint16(0x0102)))
	require.NoError(t, WriteLE(f, uint16(0x0102)))
	require.NoError(t, WriteBE(f, uint32(0x01020304)))
	require.NoError(t, WriteLE(f, int64(-2)))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(filepath.Join(w, "layout.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x01, 0x02,
		0x02, 0x01,
		0x01, 0x02, 0x03, 0x04,
		0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}, data)
}

func TestEndian_RoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newWritableSession(t, WithBufferSize(7))

	f, err := s.OpenWrite("values.bin")
	require.NoError(t, err)

	require.NoError(t, WriteLE(f, int16(math.MinInt16)))
	require.NoError(t, WriteBE(f, int16(-1234)))
	require.NoError(t, WriteLE(f, uint16(math.MaxUint16)))
	require.NoError(t, WriteBE(f, uint16(0xbeef)))
	require.NoError(t, WriteLE(f, int32(math.MinInt32)))
	require.NoError(t, WriteBE(f, int32(123456789)))
	require.NoError(t, WriteLE(f, uint32(math.MaxUint32)))
	require.NoError(t, WriteBE(f, uint32(0xdeadbeef)))
	require.NoError(t, WriteLE(f, int64(math.MinInt64)))
	require.NoError(t, WriteBE(f, int64(-987654321012)))
	require.NoError(t, WriteLE(f, uint64(math.MaxUint64)))
	require.NoError(t, WriteBE(f, uint64(0x0102030405060708)))
	require.NoError(t, f.Close())

	f, err = s.OpenRead("values.bin")
	require.NoError(t, err)
	defer f.Close()

	i16, err := ReadLE[int16](f)
	require.NoError(t, err)
	assert.Equal(t, int16(math.MinInt16), i16)

	i16, err = ReadBE[int16](f)
	require.NoError(t, err)
	assert.Equal(t, int16(-1234), i16)

	u16, err := ReadLE[uint16](f)
	require.NoError(t, err)
	assert.Equal(t, uint16(math.MaxUint16), u16)

	u16, err = ReadBE[uint16](f)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xbeef), u16)

	i32, err := ReadLE[int32](f)
	require.NoError(t, err)
	assert.Equal(t, int32(math.MinInt32), i32)

	i32, err = ReadBE[int32](f)
	require.NoError(t, err)
	assert.Equal(t, int32(123456789), i32)

	u32, err := ReadLE[uint32](f)
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), u32)

	u32, err = ReadBE[uint32](f)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), u32)

	i64, err := ReadLE[int64](f)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), i64)

	i64, err = ReadBE[int64](f)
	require.NoError(t, err)
	assert.Equal(t, int64(-987654321012), i64)

	u64, err := ReadLE[uint64](f)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), u64)

	u64, err = ReadBE[uint64](f)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), u64)

	assert.True(t, f.EOF())
}

func TestEndian_Fail_Short(t *testing.T) {
	t.Parallel()

	s, w := newWritableSession(t)
	require.NoError(t, os.WriteFile(filepath.Join(w, "short.bin"), []byte{1, 2, 3}, 0o600))

	f, err := s.OpenRead("short.bin")
	require.NoError(t, err)
	defer f.Close()

	_, err = ReadBE[uint32](f)
	require.ErrorIs(t, err, ErrIO)

	err = WriteLE(f, uint16(1))
	require.ErrorIs(t, err, ErrBadMode)
}
