package core

import (
	"errors"
	"testing"
)

func TestReaderScalars(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0xFF, 0xFF})

	if v, err := r.U8(0); err != nil || v != 0x01 {
		t.Errorf("U8(0) = %v, %v", v, err)
	}
	if v, err := r.U16(0); err != nil || v != 0x0201 {
		t.Errorf("U16(0) = 0x%04X, %v", v, err)
	}
	if v, err := r.U32(0); err != nil || v != 0x04030201 {
		t.Errorf("U32(0) = 0x%08X, %v", v, err)
	}
	if v, err := r.I16(4); err != nil || v != -1 {
		t.Errorf("I16(4) = %v, %v", v, err)
	}
}

func TestReaderOutOfRange(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})

	if _, err := r.U32(0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("U32 past end: got %v, want ErrOutOfRange", err)
	}
	if _, err := r.U8(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("negative offset: got %v, want ErrOutOfRange", err)
	}
	if _, err := r.Bytes(1, 5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Bytes past end: got %v, want ErrOutOfRange", err)
	}
	if _, err := r.Bytes(2, 0); err != nil {
		t.Errorf("empty read at end should succeed: %v", err)
	}
}

func TestBytesAliasesBuffer(t *testing.T) {
	buf := []byte{10, 20, 30}
	r := NewReader(buf)
	b, err := r.Bytes(1, 2)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if len(b) != 2 || b[0] != 20 || b[1] != 30 {
		t.Errorf("Bytes(1, 2) = %v", b)
	}
}

func TestUTF16String(t *testing.T) {
	// "Hé" in UTF-16LE
	r := NewReader([]byte{0x48, 0x00, 0xE9, 0x00})
	s, err := r.UTF16String(0, 2)
	if err != nil {
		t.Fatalf("UTF16String: %v", err)
	}
	if s != "Hé" {
		t.Errorf("got %q, want %q", s, "Hé")
	}
}

func TestCodepageString(t *testing.T) {
	// 0x93/0x94 are curly quotes in Windows-1252, not control characters.
	r := NewReader([]byte{0x93, 0x48, 0x69, 0x94})
	s, err := r.CodepageString(0, 4)
	if err != nil {
		t.Fatalf("CodepageString: %v", err)
	}
	if s != "“Hi”" {
		t.Errorf("got %q, want %q", s, "“Hi”")
	}
}

func TestDecodeUTF16OddTrailingByte(t *testing.T) {
	if s := DecodeUTF16([]byte{0x41, 0x00, 0x42}); s != "A" {
		t.Errorf("got %q, want %q", s, "A")
	}
}
