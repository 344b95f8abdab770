package plc

import (
	"fmt"

	"github.com/tsawler/worddoc/core"
)

// PLC is a decoded position list: n+1 character positions bounding n
// ranges, each with a fixed-size payload record.
type PLC struct {
	CPs  []int
	Data [][]byte
}

// Parse decodes a position list whose payload records are cbEntry bytes
// each. cbEntry may be zero for lists that carry positions only.
func Parse(data []byte, cbEntry int) (*PLC, error) {
	const cpSize = 4
	if len(data) < cpSize {
		return nil, fmt.Errorf("position list of %d bytes is too short", len(data))
	}
	n := (len(data) - cpSize) / (cpSize + cbEntry)
	if n < 0 || (n+1)*cpSize+n*cbEntry > len(data) {
		return nil, fmt.Errorf("position list of %d bytes is inconsistent with entry size %d", len(data), cbEntry)
	}

	r := core.NewReader(data)
	p := &PLC{CPs: make([]int, n+1), Data: make([][]byte, n)}
	for i := range p.CPs {
		v, err := r.U32(i * cpSize)
		if err != nil {
			return nil, err
		}
		p.CPs[i] = int(v)
	}
	base := (n + 1) * cpSize
	for i := range p.Data {
		body, err := r.Bytes(base+i*cbEntry, cbEntry)
		if err != nil {
			return nil, err
		}
		p.Data[i] = body
	}
	return p, nil
}

// Count returns the number of ranges in the list.
func (p *PLC) Count() int {
	return len(p.Data)
}

// Range returns the [start, end) CP range of entry i.
func (p *PLC) Range(i int) (int, int) {
	return p.CPs[i], p.CPs[i+1]
}

// ParseStrings decodes a string table. A leading 0xFFFF marker selects the
// extended variant with 16-bit lengths and UTF-16 strings; otherwise the
// legacy variant uses byte lengths and codepage strings.
func ParseStrings(data []byte) ([]string, error) {
	r := core.NewReader(data)
	marker, err := r.U16(0)
	if err != nil {
		return nil, fmt.Errorf("reading string table marker: %w", err)
	}

	if marker == 0xFFFF {
		count, err := r.U16(2)
		if err != nil {
			return nil, err
		}
		cbExtra, err := r.U16(4)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, count)
		off := 6
		for i := 0; i < int(count); i++ {
			cch, err := r.U16(off)
			if err != nil {
				return nil, fmt.Errorf("string %d: %w", i, err)
			}
			s, err := r.UTF16String(off+2, int(cch))
			if err != nil {
				return nil, fmt.Errorf("string %d: %w", i, err)
			}
			out = append(out, s)
			off += 2 + int(cch)*2 + int(cbExtra)
		}
		return out, nil
	}

	count := int(marker)
	cbExtra, err := r.U16(2)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, count)
	off := 4
	for i := 0; i < count; i++ {
		cch, err := r.U8(off)
		if err != nil {
			return nil, fmt.Errorf("string %d: %w", i, err)
		}
		s, err := r.CodepageString(off+1, int(cch))
		if err != nil {
			return nil, fmt.Errorf("string %d: %w", i, err)
		}
		out = append(out, s)
		off += 1 + int(cch) + int(cbExtra)
	}
	return out, nil
}
