package model

import "strings"

// Document represents a complete decoded Word binary document.
//
// Sections hold the main body content in order. The remaining fields are
// sub-documents and document-wide tables; each is populated only when the
// corresponding structure was present in the source file.
type Document struct {
	Metadata Metadata
	Sections []Section

	Styles []Style
	Fonts  []Font
	Lists  []ListDefinition

	Headers      []HeaderFooter
	Footnotes    []Note
	Endnotes     []Note
	Comments     []Comment
	Bookmarks    []Bookmark
	Fields       []Field
	FormFields   []FormField
	TextBoxes    []TextBox
	Images       []Image
	ShapeAnchors []ShapeAnchor
}

// Metadata contains document-level information from the associated-strings
// table.
type Metadata struct {
	Title       string
	Subject     string
	Keywords    []string
	Author      string
	LastSavedBy string
}

// Paragraphs returns all body paragraphs across all sections, in document
// order.
func (d *Document) Paragraphs() []Paragraph {
	var paras []Paragraph
	for _, sec := range d.Sections {
		paras = append(paras, sec.Paragraphs...)
	}
	return paras
}

// Tables returns all tables across all sections, in document order.
func (d *Document) Tables() []Table {
	var tables []Table
	for _, sec := range d.Sections {
		tables = append(tables, sec.Tables...)
	}
	return tables
}

// Text returns the plain text of the main document body. Paragraphs are
// separated by newlines.
func (d *Document) Text() string {
	var sb strings.Builder
	first := true
	for _, sec := range d.Sections {
		for _, p := range sec.Paragraphs {
			if !first {
				sb.WriteString("\n")
			}
			sb.WriteString(p.Text())
			first = false
		}
	}
	return sb.String()
}

// StyleByIndex returns the style with the given index, or nil if no such
// style exists.
func (d *Document) StyleByIndex(index int) *Style {
	for i := range d.Styles {
		if d.Styles[i].Index == index {
			return &d.Styles[i]
		}
	}
	return nil
}

// FontName resolves a font index from a run's character properties to the
// font's name. Returns "" for unknown indices.
func (d *Document) FontName(index int) string {
	if index < 0 || index >= len(d.Fonts) {
		return ""
	}
	return d.Fonts[index].Name
}
