// Package binaryserializer reads and writes the little endian fixed width
// integers molecule encodings are built from.
package binaryserializer

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// ErrShortBuffer is returned when a fixed width integer is read past the
// end of the input.
var ErrShortBuffer = errors.New("buffer too short")

func window(data []byte, offset int, width int) ([]byte, error) {
	if offset < 0 || len(data) < offset+width {
		return nil, errors.Wrapf(ErrShortBuffer, "reading %d bytes at offset %d of a %d byte buffer",
			width, offset, len(data))
	}
	return data[offset : offset+width], nil
}

// Uint32At decodes a little endian uint32 starting at offset.
func Uint32At(data []byte, offset int) (uint32, error) {
	field, err := window(data, offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(field), nil
}

// Uint64At decodes a little endian uint64 starting at offset.
func Uint64At(data []byte, offset int) (uint64, error) {
	field, err := window(data, offset, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(field), nil
}

// PutUint32 writes val to w as four little endian bytes.
func PutUint32(w io.Writer, val uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

// PutUint64 writes val to w as eight little endian bytes.
func PutUint64(w io.Writer, val uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}
