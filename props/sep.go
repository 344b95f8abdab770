package props

import (
	"github.com/tsawler/worddoc/model"
	"github.com/tsawler/worddoc/sprm"
)

// Section property opcodes.
const (
	sprmSBkc          = 0x3009
	sprmSFTitlePage   = 0x300A
	sprmSCcolumns     = 0x500B
	sprmSDxaColumns   = 0x900C
	sprmSNfcPgn       = 0x300E
	sprmSFPgnRestart  = 0x3011
	sprmSNLnnMod      = 0x5015
	sprmSDyaHdrTop    = 0xB017
	sprmSDyaHdrBottom = 0xB018
	sprmSPgnStart     = 0x501C
	sprmSBOrientation = 0x301D
	sprmSXaPage       = 0xB01F
	sprmSYaPage       = 0xB020
	sprmSDxaLeft      = 0xB021
	sprmSDxaRight     = 0xB022
	sprmSDyaTop       = 0x9023
	sprmSDyaBottom    = 0x9024
	sprmSVjc          = 0x3025
)

// DefaultSection returns the section properties a section has before any
// opcodes apply: US Letter portrait with one-inch margins, one column, a
// new-page break.
func DefaultSection() model.SectionProperties {
	return model.SectionProperties{
		Break:               model.BreakNewPage,
		PageWidthTwips:      12240,
		PageHeightTwips:     15840,
		MarginLeftTwips:     1800,
		MarginRightTwips:    1800,
		MarginTopTwips:      1440,
		MarginBottomTwips:   1440,
		Columns:             1,
		ColumnSpacingTwips:  720,
		PageNumberStart:     1,
		HeaderDistanceTwips: 720,
		FooterDistanceTwips: 720,
	}
}

// ResolveSection folds an opcode sequence over a starting set of section
// properties and returns the resolved properties. Out-of-range enumeration
// codes fall back to their explicit defaults; unrecognized opcodes are
// ignored.
func ResolveSection(base model.SectionProperties, records []sprm.Record) model.SectionProperties {
	p := base
	for _, rec := range records {
		switch rec.Opcode {
		case sprmSBkc:
			switch rec.U8() {
			case 0:
				p.Break = model.BreakContinuous
			case 1:
				p.Break = model.BreakNewColumn
			case 3:
				p.Break = model.BreakEvenPage
			case 4:
				p.Break = model.BreakOddPage
			default:
				p.Break = model.BreakNewPage
			}
		case sprmSFTitlePage:
			p.TitlePage = rec.Bool()
		case sprmSCcolumns:
			// operand holds the column count minus one
			p.Columns = int(rec.U16()) + 1
		case sprmSDxaColumns:
			p.ColumnSpacingTwips = int(rec.U16())
		case sprmSNfcPgn:
			switch rec.U8() {
			case 1:
				p.PageNumberFormat = model.PageNumberRomanUpper
			case 2:
				p.PageNumberFormat = model.PageNumberRomanLower
			case 3:
				p.PageNumberFormat = model.PageNumberLetterUpper
			case 4:
				p.PageNumberFormat = model.PageNumberLetterLower
			default:
				p.PageNumberFormat = model.PageNumberArabic
			}
		case sprmSFPgnRestart:
			p.RestartPageNumber = rec.Bool()
		case sprmSPgnStart:
			p.PageNumberStart = int(rec.U16())
		case sprmSNLnnMod:
			p.LineNumberModulus = int(rec.U16())
			p.LineNumbering = p.LineNumberModulus > 0
		case sprmSDyaHdrTop:
			p.HeaderDistanceTwips = int(rec.U16())
		case sprmSDyaHdrBottom:
			p.FooterDistanceTwips = int(rec.U16())
		case sprmSBOrientation:
			p.Landscape = rec.U8() == 2
		case sprmSXaPage:
			p.PageWidthTwips = int(rec.U16())
		case sprmSYaPage:
			p.PageHeightTwips = int(rec.U16())
		case sprmSDxaLeft:
			p.MarginLeftTwips = int(rec.U16())
		case sprmSDxaRight:
			p.MarginRightTwips = int(rec.U16())
		case sprmSDyaTop:
			p.MarginTopTwips = int(rec.I16())
		case sprmSDyaBottom:
			p.MarginBottomTwips = int(rec.I16())
		case sprmSVjc:
			switch rec.U8() {
			case 1:
				p.VerticalAlignment = model.VerticalCenter
			case 2:
				p.VerticalAlignment = model.VerticalJustify
			case 3:
				p.VerticalAlignment = model.VerticalBottom
			default:
				p.VerticalAlignment = model.VerticalTop
			}
		}
	}
	return p
}
