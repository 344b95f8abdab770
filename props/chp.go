package props

import (
	"github.com/tsawler/worddoc/model"
	"github.com/tsawler/worddoc/sprm"
)

// Character property opcodes.
const (
	sprmCFBold        = 0x0835
	sprmCFItalic      = 0x0836
	sprmCFStrike      = 0x0837
	sprmCFSmallCaps   = 0x083A
	sprmCFCaps        = 0x083B
	sprmCFVanish      = 0x083C
	sprmCFSpec        = 0x0855
	sprmCHighlight    = 0x2A0C
	sprmCKul          = 0x2A3E
	sprmCIco          = 0x2A42
	sprmCIss          = 0x2A48
	sprmCFDStrike     = 0x2A53
	sprmCIstd         = 0x4A30
	sprmCHps          = 0x4A43
	sprmCRgFtc0       = 0x4A4F
	sprmCPicLocation  = 0x6A03
	sprmCCv           = 0x6870
)

// toggle applies a 1-byte toggle operand. Values above 1 mean "match the
// style value" or "opposite of it" and are resolved against the value
// already in place.
func toggle(current bool, rec sprm.Record) bool {
	switch rec.U8() {
	case 0:
		return false
	case 1:
		return true
	case 0x81:
		return !current
	default: // 0x80: keep the style value
		return current
	}
}

// ResolveCharacter folds an opcode sequence over a starting set of
// character properties (the style chain result, or zero values) and
// returns the resolved properties. Unrecognized opcodes are ignored.
func ResolveCharacter(base model.CharacterProperties, records []sprm.Record) model.CharacterProperties {
	p := base
	for _, rec := range records {
		switch rec.Opcode {
		case sprmCFBold:
			p.Bold = toggle(p.Bold, rec)
		case sprmCFItalic:
			p.Italic = toggle(p.Italic, rec)
		case sprmCFStrike:
			p.Strike = toggle(p.Strike, rec)
		case sprmCFDStrike:
			p.DoubleStrike = rec.Bool()
		case sprmCFSmallCaps:
			p.SmallCaps = toggle(p.SmallCaps, rec)
		case sprmCFCaps:
			p.Caps = toggle(p.Caps, rec)
		case sprmCFVanish:
			p.Hidden = toggle(p.Hidden, rec)
		case sprmCKul:
			p.Underline = int(rec.U8())
		case sprmCHps:
			p.SizeHalfPoints = int(rec.U16())
		case sprmCRgFtc0:
			p.FontIndex = int(rec.U16())
		case sprmCIco:
			p.Color = paletteColor(int(rec.U8()))
		case sprmCCv:
			p.Color = directColor(rec.Operand)
		case sprmCHighlight:
			p.Highlight = int(rec.U8())
		case sprmCIss:
			switch rec.U8() {
			case 1:
				p.Position = model.PositionSuperscript
			case 2:
				p.Position = model.PositionSubscript
			default:
				p.Position = model.PositionNormal
			}
		case sprmCFSpec:
			p.Special = rec.Bool()
		case sprmCPicLocation:
			p.Special = true
			p.PicOffset = int(rec.I32())
		}
	}
	return p
}

// CharacterStyleIndex scans an opcode sequence for a character style
// reference. Returns -1 when the sequence carries none.
func CharacterStyleIndex(records []sprm.Record) int {
	istd := -1
	for _, rec := range records {
		if rec.Opcode == sprmCIstd {
			istd = int(rec.U16())
		}
	}
	return istd
}
