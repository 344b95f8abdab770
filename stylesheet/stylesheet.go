package stylesheet

import (
	"fmt"

	"github.com/tsawler/worddoc/core"
	"github.com/tsawler/worddoc/model"
	"github.com/tsawler/worddoc/props"
	"github.com/tsawler/worddoc/sprm"
)

// sentinel basedOn/next value meaning "none".
const istdNil = 0xFFF

// Style is one raw style sheet record. Papx and Chpx hold the style's own
// opcode runs, not yet expanded through the inheritance chain.
type Style struct {
	Index   int
	Type    model.StyleType
	BasedOn int // -1 when the style has no base
	Next    int
	Name    string
	Papx    []byte
	Chpx    []byte

	present bool
}

// Sheet is the decoded style table.
type Sheet struct {
	styles []Style

	papxCache map[int][]sprm.Record
	chpxCache map[int][]sprm.Record
}

// Empty returns a sheet with no styles, used when the style table is
// absent or failed to decode.
func Empty() *Sheet {
	return &Sheet{
		papxCache: make(map[int][]sprm.Record),
		chpxCache: make(map[int][]sprm.Record),
	}
}

// Parse decodes the style table from its slice of the table stream. A
// truncated or malformed table is an error; callers degrade that to an
// absent style sheet.
func Parse(data []byte) (*Sheet, error) {
	r := core.NewReader(data)

	cbStshi, err := r.U16(0)
	if err != nil {
		return nil, fmt.Errorf("reading style sheet prologue size: %w", err)
	}
	cstd, err := r.U16(2)
	if err != nil {
		return nil, fmt.Errorf("reading style count: %w", err)
	}
	cbBase, err := r.U16(4)
	if err != nil {
		return nil, fmt.Errorf("reading style record base size: %w", err)
	}
	if cbBase < 8 {
		return nil, fmt.Errorf("style record base size %d is too small", cbBase)
	}

	sheet := Empty()
	sheet.styles = make([]Style, cstd)

	off := 2 + int(cbStshi)
	for i := 0; i < int(cstd); i++ {
		cbStd, err := r.U16(off)
		if err != nil {
			return nil, fmt.Errorf("style %d: reading record size: %w", i, err)
		}
		off += 2
		if cbStd == 0 {
			// empty slot; the index is still occupied
			continue
		}
		record, err := r.Bytes(off, int(cbStd))
		if err != nil {
			return nil, fmt.Errorf("style %d: truncated record: %w", i, err)
		}
		st, err := parseRecord(i, record, int(cbBase))
		if err != nil {
			return nil, fmt.Errorf("style %d: %w", i, err)
		}
		sheet.styles[i] = st
		off += int(cbStd)
	}
	return sheet, nil
}

// parseRecord decodes one style record. The name lives at a fixed offset
// from the record start (the base-part size), followed by the UPX property
// entries.
func parseRecord(index int, record []byte, cbBase int) (Style, error) {
	r := core.NewReader(record)

	b, err := r.U16(2)
	if err != nil {
		return Style{}, fmt.Errorf("reading type word: %w", err)
	}
	c, err := r.U16(4)
	if err != nil {
		return Style{}, fmt.Errorf("reading chain word: %w", err)
	}

	st := Style{
		Index:   index,
		Type:    model.StyleType(b & 0xF),
		BasedOn: int(b >> 4),
		Next:    int(c >> 4),
		present: true,
	}
	cupx := int(c & 0xF)
	if st.BasedOn == istdNil {
		st.BasedOn = -1
	}
	if st.Next == istdNil {
		st.Next = -1
	}

	// Name: UTF-16 with a 16-bit length in the modern variant (base part of
	// 10+ bytes), single-byte codepage with a byte length in the legacy one.
	nameOff := cbBase
	var nameEnd int
	if cbBase >= 10 {
		cch, err := r.U16(nameOff)
		if err != nil {
			return Style{}, fmt.Errorf("reading name length: %w", err)
		}
		st.Name, err = r.UTF16String(nameOff+2, int(cch))
		if err != nil {
			return Style{}, fmt.Errorf("reading name: %w", err)
		}
		nameEnd = nameOff + 2 + int(cch)*2 + 2 // includes the terminator
	} else {
		cch, err := r.U8(nameOff)
		if err != nil {
			return Style{}, fmt.Errorf("reading name length: %w", err)
		}
		st.Name, err = r.CodepageString(nameOff+1, int(cch))
		if err != nil {
			return Style{}, fmt.Errorf("reading name: %w", err)
		}
		nameEnd = nameOff + 1 + int(cch) + 1
	}

	// UPX entries follow the name, each with its own byte length and padded
	// to an even boundary relative to the record start.
	off := nameEnd
	for u := 0; u < cupx; u++ {
		if off%2 != 0 {
			off++
		}
		cb, err := r.U16(off)
		if err != nil {
			return Style{}, fmt.Errorf("upx %d: reading length: %w", u, err)
		}
		body, err := r.Bytes(off+2, int(cb))
		if err != nil {
			return Style{}, fmt.Errorf("upx %d: truncated body: %w", u, err)
		}
		off += 2 + int(cb)

		switch {
		case st.Type == model.StyleParagraph && u == 0:
			// paragraph opcodes carry a leading 2-byte style index to skip
			if len(body) >= 2 {
				st.Papx = body[2:]
			}
		case st.Type == model.StyleParagraph && u == 1:
			st.Chpx = body
		case st.Type == model.StyleCharacter && u == 0:
			st.Chpx = body
		}
	}
	return st, nil
}

// Count returns the number of style slots, including empty ones.
func (s *Sheet) Count() int {
	return len(s.styles)
}

// ByIndex returns the style at index, or nil for empty or out-of-range
// slots.
func (s *Sheet) ByIndex(index int) *Style {
	if index < 0 || index >= len(s.styles) || !s.styles[index].present {
		return nil
	}
	return &s.styles[index]
}

// chain gathers the basedOn ancestry of a style, root first. A visited set
// breaks cycles: resolution stops at the first revisited index and keeps
// the chain gathered so far.
func (s *Sheet) chain(index int) []*Style {
	var reversed []*Style
	visited := make(map[int]bool)
	for index >= 0 && !visited[index] {
		visited[index] = true
		st := s.ByIndex(index)
		if st == nil {
			break
		}
		reversed = append(reversed, st)
		index = st.BasedOn
	}
	chain := make([]*Style, len(reversed))
	for i, st := range reversed {
		chain[len(reversed)-1-i] = st
	}
	return chain
}

// ParagraphChain returns the decoded paragraph opcodes of a style's full
// inheritance chain, root first. Results are cached per style index.
func (s *Sheet) ParagraphChain(index int) []sprm.Record {
	if cached, ok := s.papxCache[index]; ok {
		return cached
	}
	var records []sprm.Record
	for _, st := range s.chain(index) {
		records = append(records, sprm.Decode(st.Papx)...)
	}
	s.papxCache[index] = records
	return records
}

// CharacterChain returns the decoded character opcodes of a style's full
// inheritance chain, root first. Results are cached per style index.
func (s *Sheet) CharacterChain(index int) []sprm.Record {
	if cached, ok := s.chpxCache[index]; ok {
		return cached
	}
	var records []sprm.Record
	for _, st := range s.chain(index) {
		records = append(records, sprm.Decode(st.Chpx)...)
	}
	s.chpxCache[index] = records
	return records
}

// Styles converts the sheet into resolved model styles: each style's
// properties are its expanded inheritance chain applied to zero values.
func (s *Sheet) Styles() []model.Style {
	var out []model.Style
	for i := range s.styles {
		st := &s.styles[i]
		if !st.present {
			continue
		}
		out = append(out, model.Style{
			Index:     st.Index,
			Type:      st.Type,
			BasedOn:   st.BasedOn,
			Next:      st.Next,
			Name:      st.Name,
			Paragraph: props.ResolveParagraph(model.ParagraphProperties{}, s.ParagraphChain(st.Index)),
			Character: props.ResolveCharacter(model.CharacterProperties{}, s.CharacterChain(st.Index)),
		})
	}
	return out
}
