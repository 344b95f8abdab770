package pieces

import (
	"fmt"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// Text is the document's logical character sequence, indexed by CP. One
// element corresponds to exactly one CP, so positions computed from the
// piece table stay valid regardless of what the characters decode to.
type Text struct {
	units []uint16
}

// Retrieve extracts the full logical text from the WordDocument stream
// using the piece table. Compressed pieces decode through the single-byte
// codepage; uncompressed pieces are UTF-16LE.
func (t *Table) Retrieve(word []byte) (*Text, error) {
	units := make([]uint16, t.TotalCP())
	for i := range t.Pieces {
		p := &t.Pieces[i]
		start, end := int(p.FC), int(p.FC)+p.ByteLen()
		if start > len(word) || end > len(word) {
			return nil, fmt.Errorf("piece %d: byte range [%d, %d) outside stream of %d bytes", i, start, end, len(word))
		}
		raw := word[start:end]
		if p.Compressed {
			for j, b := range raw {
				units[p.CPStart+j] = codepageUnit(b)
			}
		} else {
			for j := 0; j+1 < len(raw); j += 2 {
				units[p.CPStart+j/2] = uint16(raw[j]) | uint16(raw[j+1])<<8
			}
		}
	}
	return &Text{units: units}, nil
}

// codepageUnit maps one Windows-1252 byte to its UTF-16 code unit.
func codepageUnit(b byte) uint16 {
	r := charmap.Windows1252.DecodeByte(b)
	if r > 0xFFFF {
		// Windows-1252 maps inside the BMP; kept for safety.
		return uint16('?')
	}
	return uint16(r)
}

// Len returns the total character count.
func (t *Text) Len() int {
	return len(t.units)
}

// Unit returns the raw 16-bit unit at cp, or 0 when out of range. Control
// characters of the format (paragraph marks, field boundaries, anchors)
// appear here unfiltered.
func (t *Text) Unit(cp int) uint16 {
	if cp < 0 || cp >= len(t.units) {
		return 0
	}
	return t.units[cp]
}

// Slice returns the [start, end) CP range decoded to a string. The range is
// clamped to the text bounds.
func (t *Text) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(t.units) {
		end = len(t.units)
	}
	if start >= end {
		return ""
	}
	return string(utf16.Decode(t.units[start:end]))
}
