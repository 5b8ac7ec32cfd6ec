package vfs

import (
	"encoding/binary"
	"io"
	"unsafe"
)

// Integer is the set of fixed-width integers transferable with an explicit
// byte order.
type Integer interface {
	~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// ReadLE reads a little-endian integer of the width of T.
func ReadLE[T Integer](f *File) (T, error) {
	return readInt[T](f, binary.LittleEndian)
}

// ReadBE reads a big-endian integer of the width of T.
func ReadBE[T Integer](f *File) (T, error) {
	return readInt[T](f, binary.BigEndian)
}

// WriteLE writes v as a little-endian integer of the width of T.
func WriteLE[T Integer](f *File, v T) error {
	return writeInt(f, binary.LittleEndian, v)
}

// WriteBE writes v as a big-endian integer of the width of T.
func WriteBE[T Integer](f *File, v T) error {
	return writeInt(f, binary.BigEndian, v)
}

func readInt[T Integer](f *File, order binary.ByteOrder) (T, error) {
	var (
		v   T
		buf [8]byte
	)

	size := int(unsafe.Sizeof(v))

	n, err := f.ReadInto(buf[:size], size, 1)
	if err != nil {
		return 0, err
	}

	if n < size {
		return 0, f.session.fail("read", f.name, ErrIO, io.ErrUnexpectedEOF)
	}

	switch size {
	case 2: //nolint:mnd
		return T(order.Uint16(buf[:size])), nil
	case 4: //nolint:mnd
		return T(order.Uint32(buf[:size])), nil
	default:
		return T(order.Uint64(buf[:size])), nil
	}
}

func writeInt[T Integer](f *File, order binary.ByteOrder, v T) error {
	var buf [8]byte

	size := int(unsafe.Sizeof(v))

	switch size {
	case 2: //nolint:mnd
		order.PutUint16(buf[:size], uint16(v))
	case 4: //nolint:mnd
		order.PutUint32(buf[:size], uint32(v))
	default:
		order.PutUint64(buf[:size], uint64(v))
	}

	_, err := f.WriteObjects(buf[:size], size, 1)

	return err
}
