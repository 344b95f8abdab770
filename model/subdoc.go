package model

import "strings"

// HeaderFooterKind identifies which header or footer slot an entry fills.
type HeaderFooterKind int

const (
	HeaderEven HeaderFooterKind = iota
	HeaderOdd
	FooterEven
	FooterOdd
	HeaderFirst
	FooterFirst
)

// HeaderFooter is one header or footer story.
type HeaderFooter struct {
	Kind       HeaderFooterKind
	Section    int // 0-based section index the entry belongs to
	Paragraphs []Paragraph
}

// Note is a footnote or endnote: the CP of its reference mark in the main
// text plus its own paragraphs.
type Note struct {
	CP         int
	Paragraphs []Paragraph
}

// Comment is an annotation attached to the main text.
type Comment struct {
	CP         int
	Initials   string
	Paragraphs []Paragraph
}

// Bookmark is a named CP range in the main text.
type Bookmark struct {
	Name  string
	Start int
	End   int
}

// FieldType classifies a document field.
type FieldType int

const (
	FieldUnknown FieldType = iota
	FieldHyperlink
	FieldFormText
	FieldFormCheckbox
	FieldFormDropdown
)

// Field is one field: its CP range, raw instruction, visible result text,
// and the URL for hyperlink fields.
type Field struct {
	Type        FieldType
	CPStart     int
	CPEnd       int
	Instruction string
	Result      string
	URL         string
}

// FormField is a fill-in form element derived from a form field.
type FormField struct {
	Type FieldType
	CP   int
}

// TextBox is one text box story.
type TextBox struct {
	Paragraphs []Paragraph
}

// Text returns the text box's plain text.
func (t *TextBox) Text() string {
	var sb strings.Builder
	for i := range t.Paragraphs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(t.Paragraphs[i].Text())
	}
	return sb.String()
}

// ShapeAnchor marks the CP where a floating shape is anchored in the main
// text.
type ShapeAnchor struct {
	CP      int
	ShapeID int32
}
