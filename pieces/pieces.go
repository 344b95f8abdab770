package pieces

import (
	"errors"
	"fmt"

	"github.com/tsawler/worddoc/core"
)

// ErrNoPieceTable is returned when the clx holds no piece table block.
var ErrNoPieceTable = errors.New("no piece table in clx")

// clx block tags.
const (
	clxGrpprl = 0x01 // property modifier block, skipped
	clxPieces = 0x02 // the piece table itself
)

// compressed-offset encoding in the raw piece descriptor word.
const (
	fcCompressedFlag = 0x40000000
	fcOffsetMask     = 0x3FFFFFFF
)

// Piece maps one contiguous CP range to a contiguous byte range of the
// WordDocument stream. Compressed pieces store one byte per character
// (codepage text); uncompressed pieces store two (UTF-16LE).
type Piece struct {
	CPStart    int
	CPEnd      int
	FC         uint32
	Compressed bool
}

// ByteLen returns the byte length of the piece's text storage.
func (p *Piece) ByteLen() int {
	n := p.CPEnd - p.CPStart
	if p.Compressed {
		return n
	}
	return n * 2
}

// Contains reports whether cp falls inside the piece's CP range.
func (p *Piece) Contains(cp int) bool {
	return cp >= p.CPStart && cp < p.CPEnd
}

// CPToFC converts a character position inside this piece to its file
// offset.
func (p *Piece) CPToFC(cp int) uint32 {
	if p.Compressed {
		return p.FC + uint32(cp-p.CPStart)
	}
	return p.FC + uint32(cp-p.CPStart)*2
}

// FCToCP converts a file offset inside this piece back to a character
// position. The offset must come from the same piece that produced it;
// converting through a different piece silently corrupts positions.
func (p *Piece) FCToCP(fc uint32) int {
	if p.Compressed {
		return p.CPStart + int(fc-p.FC)
	}
	return p.CPStart + int(fc-p.FC)/2
}

// ContainsFC reports whether fc falls inside the piece's byte range.
func (p *Piece) ContainsFC(fc uint32) bool {
	return fc >= p.FC && fc < p.FC+uint32(p.ByteLen())
}

// Table is the decoded piece table.
type Table struct {
	Pieces []Piece
}

// Parse decodes the clx structure: grpprl blocks are skipped, and the piece
// table block supplies the n+1 CP array and the n piece descriptors.
func Parse(clx []byte) (*Table, error) {
	r := core.NewReader(clx)
	i := 0
	for i < len(clx) {
		tag, err := r.U8(i)
		if err != nil {
			return nil, err
		}
		switch tag {
		case clxGrpprl:
			cb, err := r.U16(i + 1)
			if err != nil {
				return nil, fmt.Errorf("reading clx grpprl size: %w", err)
			}
			i += 3 + int(cb)
		case clxPieces:
			lcb, err := r.U32(i + 1)
			if err != nil {
				return nil, fmt.Errorf("reading piece table size: %w", err)
			}
			body, err := r.Bytes(i+5, int(lcb))
			if err != nil {
				return nil, fmt.Errorf("reading piece table: %w", err)
			}
			return parsePlcPcd(body)
		default:
			return nil, fmt.Errorf("unrecognized clx block tag 0x%02X at %d", tag, i)
		}
	}
	return nil, ErrNoPieceTable
}

// parsePlcPcd decodes the position list holding the CP array and the
// fixed-size piece descriptors. The descriptor's raw offset word carries
// the encoding flag: when set, the text is single-byte storage addressed at
// half the represented offset.
func parsePlcPcd(body []byte) (*Table, error) {
	const cpSize, pcdSize = 4, 8
	if len(body) < cpSize {
		return nil, fmt.Errorf("piece table of %d bytes is too short", len(body))
	}
	n := (len(body) - cpSize) / (cpSize + pcdSize)
	if n < 1 {
		return nil, fmt.Errorf("piece table with no pieces")
	}
	r := core.NewReader(body)

	cps := make([]int, n+1)
	for i := range cps {
		v, err := r.U32(i * cpSize)
		if err != nil {
			return nil, err
		}
		cps[i] = int(v)
		if i > 0 && cps[i] < cps[i-1] {
			return nil, fmt.Errorf("piece table CP array descends at entry %d (%d after %d)", i, cps[i], cps[i-1])
		}
	}

	pcdBase := (n + 1) * cpSize
	t := &Table{Pieces: make([]Piece, n)}
	for i := 0; i < n; i++ {
		fc, err := r.U32(pcdBase + i*pcdSize + 2)
		if err != nil {
			return nil, err
		}
		p := Piece{CPStart: cps[i], CPEnd: cps[i+1], FC: fc}
		if fc&fcCompressedFlag != 0 {
			p.Compressed = true
			p.FC = (fc & fcOffsetMask) / 2
		}
		t.Pieces[i] = p
	}
	return t, nil
}

// TotalCP returns the CP limit of the final piece.
func (t *Table) TotalCP() int {
	if len(t.Pieces) == 0 {
		return 0
	}
	return t.Pieces[len(t.Pieces)-1].CPEnd
}

// PieceFor returns the piece covering cp, or nil when no piece does. The
// scan is linear: piece counts are small and the pieces may appear in any
// file order.
func (t *Table) PieceFor(cp int) *Piece {
	for i := range t.Pieces {
		if t.Pieces[i].Contains(cp) {
			return &t.Pieces[i]
		}
	}
	return nil
}

// PieceForFC returns the piece whose byte range covers fc, or nil.
func (t *Table) PieceForFC(fc uint32) *Piece {
	for i := range t.Pieces {
		if t.Pieces[i].ContainsFC(fc) {
			return &t.Pieces[i]
		}
	}
	return nil
}
