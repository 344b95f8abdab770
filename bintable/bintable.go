package bintable

import (
	"fmt"
	"sort"

	"github.com/tsawler/worddoc/core"
)

// Kind selects which property system a locator serves.
type Kind int

const (
	// Character locates character (CHPX) opcode runs.
	Character Kind = iota
	// Paragraph locates paragraph (PAPX) opcode runs.
	Paragraph
)

const pageSize = 512

// Run is one opcode run covering a file-offset range. Istd is the
// paragraph style index for paragraph runs and -1 for character runs.
type Run struct {
	FCStart uint32
	FCLim   uint32
	Istd    int
	Grpprl  []byte
}

// Contains reports whether fc falls inside the run's range.
func (r *Run) Contains(fc uint32) bool {
	return fc >= r.FCStart && fc < r.FCLim
}

// Locator resolves file offsets to opcode runs through the two-level bin
// table.
type Locator struct {
	kind Kind
	word []byte

	fcs   []uint32 // n+1 file offsets bounding each page's coverage
	pages []uint32 // n page numbers into the WordDocument stream

	cache map[uint32][]Run
}

// New parses a bin table page index from its slice of the table stream. An
// empty slice yields a locator that resolves nothing.
func New(kind Kind, word, binTable []byte) (*Locator, error) {
	l := &Locator{kind: kind, word: word, cache: make(map[uint32][]Run)}
	if len(binTable) == 0 {
		return l, nil
	}

	const entrySize = 4
	n := (len(binTable) - entrySize) / (entrySize * 2)
	if n < 1 {
		return nil, fmt.Errorf("bin table of %d bytes holds no entries", len(binTable))
	}
	r := core.NewReader(binTable)
	l.fcs = make([]uint32, n+1)
	for i := range l.fcs {
		v, err := r.U32(i * entrySize)
		if err != nil {
			return nil, err
		}
		l.fcs[i] = v
	}
	l.pages = make([]uint32, n)
	for i := range l.pages {
		v, err := r.U32((n + 1 + i) * entrySize)
		if err != nil {
			return nil, err
		}
		l.pages[i] = v & 0x3FFFFF
	}
	return l, nil
}

// RunAt returns the opcode run covering exactly the given file offset, or
// nil when no run covers it.
func (l *Locator) RunAt(fc uint32) *Run {
	page := l.pageFor(fc)
	if page < 0 {
		return nil
	}
	runs, err := l.pageRuns(l.pages[page])
	if err != nil {
		return nil
	}
	for i := range runs {
		if runs[i].Contains(fc) {
			return &runs[i]
		}
	}
	return nil
}

// RunsOverlapping returns all opcode runs overlapping [fcFirst, fcLim), in
// file-offset order. Used when a paragraph spans multiple property runs.
func (l *Locator) RunsOverlapping(fcFirst, fcLim uint32) []Run {
	if fcLim <= fcFirst || len(l.pages) == 0 {
		return nil
	}
	var out []Run
	first := l.pageFor(fcFirst)
	if first < 0 {
		first = 0
	}
	for i := first; i < len(l.pages) && l.fcs[i] < fcLim; i++ {
		runs, err := l.pageRuns(l.pages[i])
		if err != nil {
			continue
		}
		for _, run := range runs {
			if run.FCStart < fcLim && run.FCLim > fcFirst {
				out = append(out, run)
			}
		}
	}
	return out
}

// pageFor finds the page-table index whose range covers fc, or -1.
func (l *Locator) pageFor(fc uint32) int {
	n := len(l.pages)
	if n == 0 || fc < l.fcs[0] || fc >= l.fcs[n] {
		return -1
	}
	i := sort.Search(n, func(i int) bool { return l.fcs[i+1] > fc })
	if i == n {
		return -1
	}
	return i
}

// pageRuns decodes one formatted page, memoized by page number.
func (l *Locator) pageRuns(pn uint32) ([]Run, error) {
	if runs, ok := l.cache[pn]; ok {
		return runs, nil
	}
	off := int(pn) * pageSize
	if off+pageSize > len(l.word) {
		return nil, fmt.Errorf("page %d outside WordDocument stream", pn)
	}
	page := l.word[off : off+pageSize]

	var runs []Run
	var err error
	if l.kind == Character {
		runs, err = decodeCharacterPage(page)
	} else {
		runs, err = decodeParagraphPage(page)
	}
	if err != nil {
		return nil, err
	}
	l.cache[pn] = runs
	return runs, nil
}

// decodeCharacterPage decodes a character-run page: a run count in the
// final byte, the bounding offsets, then one byte per run pointing at its
// opcode run inside the page. A zero pointer means "no direct formatting".
func decodeCharacterPage(page []byte) ([]Run, error) {
	r := core.NewReader(page)
	crun := int(page[pageSize-1])
	if crun == 0 || (crun+1)*4+crun > pageSize-1 {
		return nil, fmt.Errorf("character page with invalid run count %d", crun)
	}

	runs := make([]Run, 0, crun)
	for i := 0; i < crun; i++ {
		fcStart, _ := r.U32(i * 4)
		fcLim, _ := r.U32((i + 1) * 4)
		run := Run{FCStart: fcStart, FCLim: fcLim, Istd: -1}

		b := page[(crun+1)*4+i]
		if b != 0 {
			at := int(b) * 2
			cb, err := r.U8(at)
			if err != nil {
				return nil, err
			}
			grpprl, err := r.Bytes(at+1, int(cb))
			if err != nil {
				return nil, fmt.Errorf("character run %d: truncated opcodes: %w", i, err)
			}
			run.Grpprl = grpprl
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// decodeParagraphPage decodes a paragraph-run page: like the character page
// but each run entry is a 13-byte descriptor whose first byte points at the
// paragraph's opcode run, which in turn starts with a 2-byte style index.
func decodeParagraphPage(page []byte) ([]Run, error) {
	const bxSize = 13
	r := core.NewReader(page)
	crun := int(page[pageSize-1])
	if crun == 0 || (crun+1)*4+crun*bxSize > pageSize-1 {
		return nil, fmt.Errorf("paragraph page with invalid run count %d", crun)
	}

	runs := make([]Run, 0, crun)
	for i := 0; i < crun; i++ {
		fcStart, _ := r.U32(i * 4)
		fcLim, _ := r.U32((i + 1) * 4)
		run := Run{FCStart: fcStart, FCLim: fcLim, Istd: -1}

		b := page[(crun+1)*4+i*bxSize]
		if b != 0 {
			at := int(b) * 2
			cb, err := r.U8(at)
			if err != nil {
				return nil, err
			}
			var body []byte
			if cb == 0 {
				// escape for long runs: real length word follows
				cb2, err := r.U8(at + 1)
				if err != nil {
					return nil, err
				}
				body, err = r.Bytes(at+2, int(cb2)*2)
				if err != nil {
					return nil, fmt.Errorf("paragraph run %d: truncated opcodes: %w", i, err)
				}
			} else {
				body, err = r.Bytes(at+1, int(cb)*2-1)
				if err != nil {
					return nil, fmt.Errorf("paragraph run %d: truncated opcodes: %w", i, err)
				}
			}
			if len(body) >= 2 {
				run.Istd = int(uint16(body[0]) | uint16(body[1])<<8)
				run.Grpprl = body[2:]
			}
		}
		runs = append(runs, run)
	}
	return runs, nil
}
