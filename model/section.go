package model

// SectionBreak is the break type that starts a section.
type SectionBreak int

const (
	BreakContinuous SectionBreak = iota
	BreakNewColumn
	BreakNewPage
	BreakEvenPage
	BreakOddPage
)

// PageNumberFormat is the numbering style for page numbers in a section.
type PageNumberFormat int

const (
	PageNumberArabic PageNumberFormat = iota
	PageNumberRomanUpper
	PageNumberRomanLower
	PageNumberLetterUpper
	PageNumberLetterLower
)

// VerticalAlignment is the vertical text alignment of a section or cell.
type VerticalAlignment int

const (
	VerticalTop VerticalAlignment = iota
	VerticalCenter
	VerticalJustify
	VerticalBottom
)

// SectionProperties holds resolved section-level formatting.
type SectionProperties struct {
	Break SectionBreak

	PageWidthTwips  int
	PageHeightTwips int
	Landscape       bool

	MarginLeftTwips   int
	MarginRightTwips  int
	MarginTopTwips    int
	MarginBottomTwips int

	Columns             int
	ColumnSpacingTwips  int

	PageNumberFormat  PageNumberFormat
	PageNumberStart   int
	RestartPageNumber bool

	LineNumbering     bool
	LineNumberModulus int

	VerticalAlignment VerticalAlignment
	TitlePage         bool

	HeaderDistanceTwips int
	FooterDistanceTwips int
}

// Section is a contiguous slice of the document's paragraphs sharing one
// page geometry. Tables holds the structured view of the section's in-table
// paragraphs; those paragraphs also appear in Paragraphs in document order.
type Section struct {
	Properties SectionProperties
	Paragraphs []Paragraph
	Tables     []Table
}
