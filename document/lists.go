package document

import (
	"github.com/tsawler/worddoc/core"
	"github.com/tsawler/worddoc/fib"
	"github.com/tsawler/worddoc/model"
)

// list table record sizes and offsets.
const (
	lstfSize    = 28
	lstfLsid    = 0  // i32 list identifier
	lstfFlags   = 26 // bit 0: single-level list
	lvlfSize    = 28
	lvlfStartAt = 0  // i32
	lvlfFormat  = 4  // u8 numbering format
	lvlfCbPapx  = 25 // u8, paragraph opcode bytes following the fixed part
	lvlfCbChpx  = 24 // u8, character opcode bytes following those
	lfoSize     = 16
	lfoLsid     = 0 // i32 list identifier the override points at
)

// listDefinitions decodes the list table: a count, the fixed-size list
// records, then each list's level records in list order. Single-level
// lists carry one level, the rest nine.
func (d *decoder) listDefinitions() []model.ListDefinition {
	raw := d.slice(fib.EntryPlcfLst, "list_table")
	if raw == nil {
		return nil
	}
	r := core.NewReader(raw)

	count, err := r.U16(0)
	if err != nil {
		d.warnf("list_table", "%v", err)
		return nil
	}

	lists := make([]model.ListDefinition, 0, count)
	off := 2
	for i := 0; i < int(count); i++ {
		body, err := r.Bytes(off, lstfSize)
		if err != nil {
			d.warnf("list_table", "list %d: %v", i, err)
			return nil
		}
		br := core.NewReader(body)
		lsid, _ := br.I32(lstfLsid)
		flags, _ := br.U8(lstfFlags)
		lists = append(lists, model.ListDefinition{
			ID:     lsid,
			Simple: flags&0x01 != 0,
		})
		off += lstfSize
	}

	for i := range lists {
		levels := 9
		if lists[i].Simple {
			levels = 1
		}
		for lvl := 0; lvl < levels; lvl++ {
			level, next, err := decodeLevel(r, off)
			if err != nil {
				d.warnf("list_table", "list %d level %d: %v", i, lvl, err)
				return lists
			}
			lists[i].Levels = append(lists[i].Levels, level)
			off = next
		}
	}
	return lists
}

// decodeLevel decodes one level record: the fixed part, the two opcode
// blocks, and the length-prefixed number text. Returns the offset of the
// next record.
func decodeLevel(r *core.Reader, off int) (model.ListLevel, int, error) {
	startAt, err := r.I32(off + lvlfStartAt)
	if err != nil {
		return model.ListLevel{}, 0, err
	}
	format, _ := r.U8(off + lvlfFormat)
	cbPapx, _ := r.U8(off + lvlfCbPapx)
	cbChpx, _ := r.U8(off + lvlfCbChpx)

	off += lvlfSize + int(cbPapx) + int(cbChpx)
	cch, err := r.U16(off)
	if err != nil {
		return model.ListLevel{}, 0, err
	}
	off += 2 + int(cch)*2

	return model.ListLevel{StartAt: int(startAt), NumberFormat: int(format)}, off, nil
}

// listOverrides decodes the override table down to the list identifier
// each override selects. Overrides are referenced 1-based from paragraph
// properties.
func (d *decoder) listOverrides() []int32 {
	raw := d.slice(fib.EntryPlfLfo, "list_overrides")
	if raw == nil {
		return nil
	}
	r := core.NewReader(raw)

	count, err := r.I32(0)
	if err != nil || count < 0 {
		d.warnf("list_overrides", "unreadable override count")
		return nil
	}

	lsids := make([]int32, 0, count)
	off := 4
	for i := 0; i < int(count); i++ {
		lsid, err := r.I32(off + lfoLsid)
		if err != nil {
			d.warnf("list_overrides", "override %d: %v", i, err)
			return nil
		}
		lsids = append(lsids, lsid)
		off += lfoSize
	}
	return lsids
}
