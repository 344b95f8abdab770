package model

import "strings"

// Alignment represents paragraph justification.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// String returns the string representation of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// Color is an explicit RGB color. Absent colors (automatic color in the
// source format) are represented as nil *Color values throughout the model.
type Color struct {
	R, G, B uint8
}

// Border describes one border edge. A nil *Border means no border.
type Border struct {
	Style        int // border style code from the source format
	WidthEighths int // line width in eighths of a point
	Color        *Color
}

// Borders holds the six border edges used by paragraphs and table cells.
type Borders struct {
	Top     *Border
	Left    *Border
	Bottom  *Border
	Right   *Border
	InsideH *Border
	InsideV *Border
}

// Shading is a background fill. A nil *Shading means no shading.
type Shading struct {
	Fill *Color
}

// TabStop is a single tab stop position.
type TabStop struct {
	PositionTwips int
	Kind          int // 0=left, 1=center, 2=right, 3=decimal, 4=bar
}

// ListRef ties a paragraph to a list definition and level.
type ListRef struct {
	ListID int32
	Level  int
}

// ParagraphProperties holds resolved paragraph-level formatting.
type ParagraphProperties struct {
	Alignment Alignment

	LeftIndentTwips      int
	RightIndentTwips     int
	FirstLineIndentTwips int

	SpaceBeforeTwips int
	SpaceAfterTwips  int
	LineSpacingTwips int

	OutlineLevel int // 0-8 for outline levels, 9 for body text

	Keep            bool
	KeepWithNext    bool
	PageBreakBefore bool

	Borders Borders
	Shading *Shading
	Tabs    []TabStop

	List *ListRef

	InTable     bool
	TableRowEnd bool
}

// VerticalPosition represents run baseline placement.
type VerticalPosition int

const (
	PositionNormal VerticalPosition = iota
	PositionSuperscript
	PositionSubscript
)

// CharacterProperties holds resolved run-level formatting.
type CharacterProperties struct {
	Bold           bool
	Italic         bool
	Underline      int // underline style code, 0 = none
	Strike         bool
	DoubleStrike   bool
	SmallCaps      bool
	Caps           bool
	Hidden         bool
	SizeHalfPoints int
	FontIndex      int
	Color          *Color
	Highlight      int // highlight color index, 0 = none
	Position       VerticalPosition

	// Special marks the run as containing special characters such as
	// inline picture anchors. PicOffset is the picture data offset carried
	// by the run when Special is set by a picture-location opcode.
	Special   bool
	PicOffset int
}

// Run is a maximal span of paragraph text sharing one set of resolved
// character properties.
type Run struct {
	Text       string
	Properties CharacterProperties
}

// Paragraph is an ordered sequence of runs plus resolved paragraph
// properties. CPStart and CPEnd give the paragraph's character-position
// range in the document-wide text sequence (CPEnd includes the paragraph
// mark).
type Paragraph struct {
	Runs       []Run
	Properties ParagraphProperties
	StyleIndex int
	CPStart    int
	CPEnd      int
}

// Text returns the concatenated run text of the paragraph.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
