package props

import (
	"github.com/tsawler/worddoc/model"
	"github.com/tsawler/worddoc/sprm"
)

// Paragraph property opcodes.
const (
	sprmPIstd            = 0x4600
	sprmPJc              = 0x2403
	sprmPFKeep           = 0x2405
	sprmPFKeepFollow     = 0x2406
	sprmPFPageBreakBefore = 0x2407
	sprmPIlvl            = 0x260A
	sprmPIlfo            = 0x460B
	sprmPFInTable        = 0x2416
	sprmPFTtp            = 0x2417
	sprmPDxaRight        = 0x840E
	sprmPDxaLeft         = 0x840F
	sprmPDxaLeft1        = 0x8411
	sprmPDyaLine         = 0x6412
	sprmPDyaBefore       = 0xA413
	sprmPDyaAfter        = 0xA414
	sprmPChgTabs         = 0xC60D
	sprmPShd80           = 0x442D
	sprmPShd             = 0xC64D
	sprmPBrcTop80        = 0x6424
	sprmPBrcLeft80       = 0x6425
	sprmPBrcBottom80     = 0x6426
	sprmPBrcRight80      = 0x6427
	sprmPBrcTop          = 0xC64E
	sprmPBrcLeft         = 0xC64F
	sprmPBrcBottom       = 0xC650
	sprmPBrcRight        = 0xC651
	sprmPOutLvl          = 0x2640
)

// ResolveParagraph folds an opcode sequence over a starting set of
// paragraph properties and returns the resolved properties. Unrecognized
// opcodes are ignored.
func ResolveParagraph(base model.ParagraphProperties, records []sprm.Record) model.ParagraphProperties {
	p := base
	for _, rec := range records {
		switch rec.Opcode {
		case sprmPJc:
			switch rec.U8() {
			case 1:
				p.Alignment = model.AlignCenter
			case 2:
				p.Alignment = model.AlignRight
			case 3:
				p.Alignment = model.AlignJustify
			default:
				p.Alignment = model.AlignLeft
			}
		case sprmPFKeep:
			p.Keep = rec.Bool()
		case sprmPFKeepFollow:
			p.KeepWithNext = rec.Bool()
		case sprmPFPageBreakBefore:
			p.PageBreakBefore = rec.Bool()
		case sprmPDxaLeft:
			p.LeftIndentTwips = int(rec.I16())
		case sprmPDxaRight:
			p.RightIndentTwips = int(rec.I16())
		case sprmPDxaLeft1:
			p.FirstLineIndentTwips = int(rec.I16())
		case sprmPDyaBefore:
			p.SpaceBeforeTwips = int(rec.U16())
		case sprmPDyaAfter:
			p.SpaceAfterTwips = int(rec.U16())
		case sprmPDyaLine:
			// line spacing descriptor: dyaLine followed by a multiple flag
			p.LineSpacingTwips = int(rec.I16())
		case sprmPOutLvl:
			p.OutlineLevel = int(rec.U8())
		case sprmPIlvl:
			ref := listRef(p.List)
			ref.Level = int(rec.U8())
			p.List = &ref
		case sprmPIlfo:
			if v := rec.U16(); v == 0 {
				p.List = nil
			} else {
				ref := listRef(p.List)
				// carries the list-format-override index; the assembler
				// remaps it to the list definition ID
				ref.ListID = int32(v)
				p.List = &ref
			}
		case sprmPFInTable:
			p.InTable = rec.Bool()
		case sprmPFTtp:
			p.TableRowEnd = rec.Bool()
		case sprmPShd80:
			p.Shading = legacyShading(rec.U16())
		case sprmPShd:
			p.Shading = modernShading(rec.Operand)
		case sprmPBrcTop80:
			p.Borders.Top = legacyBorder(rec.Operand)
		case sprmPBrcLeft80:
			p.Borders.Left = legacyBorder(rec.Operand)
		case sprmPBrcBottom80:
			p.Borders.Bottom = legacyBorder(rec.Operand)
		case sprmPBrcRight80:
			p.Borders.Right = legacyBorder(rec.Operand)
		case sprmPBrcTop:
			p.Borders.Top = modernBorder(rec.Operand)
		case sprmPBrcLeft:
			p.Borders.Left = modernBorder(rec.Operand)
		case sprmPBrcBottom:
			p.Borders.Bottom = modernBorder(rec.Operand)
		case sprmPBrcRight:
			p.Borders.Right = modernBorder(rec.Operand)
		case sprmPChgTabs:
			p.Tabs = applyTabChange(p.Tabs, rec.Operand)
		}
	}
	return p
}

// ParagraphStyleIndex scans an opcode sequence for a paragraph style
// reference. Returns -1 when the sequence carries none.
func ParagraphStyleIndex(records []sprm.Record) int {
	istd := -1
	for _, rec := range records {
		if rec.Opcode == sprmPIstd {
			istd = int(rec.U16())
		}
	}
	return istd
}

func listRef(cur *model.ListRef) model.ListRef {
	if cur != nil {
		return *cur
	}
	return model.ListRef{}
}

// applyTabChange decodes a tab-change operand: a count of deleted tab
// positions with the positions, then a count of added tabs with their
// positions and 1-byte descriptors. Truncated operands keep whatever was
// decoded up to the truncation.
func applyTabChange(tabs []model.TabStop, operand []byte) []model.TabStop {
	if len(operand) < 1 {
		return tabs
	}
	i := 0
	cDel := int(operand[i])
	i++
	deleted := make(map[int]bool, cDel)
	for j := 0; j < cDel && i+2 <= len(operand); j++ {
		pos := int(int16(uint16(operand[i]) | uint16(operand[i+1])<<8))
		deleted[pos] = true
		i += 2
	}

	var out []model.TabStop
	for _, t := range tabs {
		if !deleted[t.PositionTwips] {
			out = append(out, t)
		}
	}

	if i >= len(operand) {
		return out
	}
	cAdd := int(operand[i])
	i++
	positions := make([]int, 0, cAdd)
	for j := 0; j < cAdd && i+2 <= len(operand); j++ {
		positions = append(positions, int(int16(uint16(operand[i])|uint16(operand[i+1])<<8)))
		i += 2
	}
	for j, pos := range positions {
		kind := 0
		if i+j < len(operand) {
			kind = int(operand[i+j]) & 0x07
		}
		out = append(out, model.TabStop{PositionTwips: pos, Kind: kind})
	}
	return out
}
