package props

import (
	"testing"

	"github.com/tsawler/worddoc/model"
	"github.com/tsawler/worddoc/sprm"
)

func TestDefaultSection(t *testing.T) {
	s := DefaultSection()
	if s.PageWidthTwips != 12240 || s.PageHeightTwips != 15840 {
		t.Errorf("page = %dx%d", s.PageWidthTwips, s.PageHeightTwips)
	}
	if s.Break != model.BreakNewPage {
		t.Errorf("Break = %v", s.Break)
	}
	if s.Columns != 1 {
		t.Errorf("Columns = %d", s.Columns)
	}
}

func TestResolveSection(t *testing.T) {
	got := ResolveSection(DefaultSection(), []sprm.Record{
		rec(sprmSBkc, 0),
		rec(sprmSBOrientation, 2),
		rec(sprmSCcolumns, 1, 0), // stored as count minus one
		rec(sprmSXaPage, 0xE0, 0x3D), // 15840
		rec(sprmSYaPage, 0xD0, 0x2F), // 12240
		rec(sprmSFTitlePage, 1),
		rec(sprmSPgnStart, 5, 0),
		rec(sprmSNfcPgn, 2),
	})
	if got.Break != model.BreakContinuous {
		t.Errorf("Break = %v", got.Break)
	}
	if !got.Landscape {
		t.Error("Landscape not set")
	}
	if got.Columns != 2 {
		t.Errorf("Columns = %d, want 2", got.Columns)
	}
	if got.PageWidthTwips != 15840 || got.PageHeightTwips != 12240 {
		t.Errorf("page = %dx%d", got.PageWidthTwips, got.PageHeightTwips)
	}
	if !got.TitlePage {
		t.Error("TitlePage not set")
	}
	if got.PageNumberStart != 5 || got.PageNumberFormat != model.PageNumberRomanLower {
		t.Errorf("page numbering = %d/%v", got.PageNumberStart, got.PageNumberFormat)
	}
}

func TestResolveSectionEnumFallback(t *testing.T) {
	got := ResolveSection(DefaultSection(), []sprm.Record{
		rec(sprmSBkc, 99),
		rec(sprmSNfcPgn, 99),
		rec(sprmSVjc, 99),
	})
	if got.Break != model.BreakNewPage {
		t.Errorf("Break fallback = %v", got.Break)
	}
	if got.PageNumberFormat != model.PageNumberArabic {
		t.Errorf("format fallback = %v", got.PageNumberFormat)
	}
	if got.VerticalAlignment != model.VerticalTop {
		t.Errorf("alignment fallback = %v", got.VerticalAlignment)
	}
}
