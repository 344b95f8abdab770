package core

import (
	"errors"
	"fmt"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// ErrOutOfRange is returned when a read extends past the end of the buffer.
var ErrOutOfRange = errors.New("read out of range")

// Reader reads little-endian values from a byte buffer at arbitrary
// offsets. The buffer is never modified.
type Reader struct {
	data []byte
}

// NewReader wraps a byte buffer.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the buffer length.
func (r *Reader) Len() int {
	return len(r.data)
}

// check validates that [off, off+n) lies inside the buffer.
func (r *Reader) check(off, n int) error {
	if off < 0 || n < 0 || off+n > len(r.data) || off+n < off {
		return fmt.Errorf("%w: offset %d length %d in buffer of %d", ErrOutOfRange, off, n, len(r.data))
	}
	return nil
}

// Bytes returns the n bytes starting at off. The returned slice aliases the
// underlying buffer and must not be modified.
func (r *Reader) Bytes(off, n int) ([]byte, error) {
	if err := r.check(off, n); err != nil {
		return nil, err
	}
	return r.data[off : off+n], nil
}

// U8 reads an unsigned byte at off.
func (r *Reader) U8(off int) (uint8, error) {
	if err := r.check(off, 1); err != nil {
		return 0, err
	}
	return r.data[off], nil
}

// U16 reads a little-endian uint16 at off.
func (r *Reader) U16(off int) (uint16, error) {
	if err := r.check(off, 2); err != nil {
		return 0, err
	}
	return uint16(r.data[off]) | uint16(r.data[off+1])<<8, nil
}

// U32 reads a little-endian uint32 at off.
func (r *Reader) U32(off int) (uint32, error) {
	if err := r.check(off, 4); err != nil {
		return 0, err
	}
	return uint32(r.data[off]) | uint32(r.data[off+1])<<8 |
		uint32(r.data[off+2])<<16 | uint32(r.data[off+3])<<24, nil
}

// I16 reads a little-endian int16 at off.
func (r *Reader) I16(off int) (int16, error) {
	v, err := r.U16(off)
	return int16(v), err
}

// I32 reads a little-endian int32 at off.
func (r *Reader) I32(off int) (int32, error) {
	v, err := r.U32(off)
	return int32(v), err
}

// UTF16String reads n 16-bit code units at off and decodes them as
// UTF-16LE.
func (r *Reader) UTF16String(off, n int) (string, error) {
	raw, err := r.Bytes(off, n*2)
	if err != nil {
		return "", err
	}
	return DecodeUTF16(raw), nil
}

// CodepageString reads n bytes at off and decodes them as Windows-1252.
func (r *Reader) CodepageString(off, n int) (string, error) {
	raw, err := r.Bytes(off, n)
	if err != nil {
		return "", err
	}
	return DecodeCodepage(raw), nil
}

// DecodeUTF16 decodes a UTF-16LE byte sequence. A trailing odd byte is
// ignored.
func DecodeUTF16(raw []byte) string {
	units := make([]uint16, len(raw)/2)
	for i := range units {
		units[i] = uint16(raw[2*i]) | uint16(raw[2*i+1])<<8
	}
	return string(utf16.Decode(units))
}

// DecodeCodepage decodes a Windows-1252 byte sequence. The single-byte text
// storage of the format carries this codepage.
func DecodeCodepage(raw []byte) string {
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		// Windows-1252 decoding maps every byte; kept for interface parity.
		return string(raw)
	}
	return string(out)
}
