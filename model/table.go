package model

// VerticalMerge is the vertical merge state of a table cell.
type VerticalMerge int

const (
	MergeNone VerticalMerge = iota
	MergeRestart
	MergeContinue
)

// String returns the string representation of the merge state.
func (m VerticalMerge) String() string {
	switch m {
	case MergeRestart:
		return "restart"
	case MergeContinue:
		return "continue"
	default:
		return "none"
	}
}

// CellProperties holds resolved per-cell formatting.
type CellProperties struct {
	WidthTwips        int
	VerticalMerge     VerticalMerge
	HorizontalMerge   VerticalMerge // same restart/continue states as vertical
	VerticalAlignment VerticalAlignment
	Borders           Borders
	Shading           *Shading
}

// Cell is one table cell: its paragraphs plus resolved cell properties.
type Cell struct {
	Paragraphs []Paragraph
	Properties CellProperties
}

// Text returns the cell's plain text with paragraphs joined by newlines.
func (c *Cell) Text() string {
	var out string
	for i := range c.Paragraphs {
		if i > 0 {
			out += "\n"
		}
		out += c.Paragraphs[i].Text()
	}
	return out
}

// RowProperties holds resolved per-row formatting. A negative HeightTwips
// means the height is exact; positive means "at least".
type RowProperties struct {
	HeightTwips int
	Header      bool
	CantSplit   bool
}

// Row is one table row.
type Row struct {
	Cells      []Cell
	Properties RowProperties
}

// Table is a sequence of rows built from consecutive in-table paragraphs.
type Table struct {
	Rows []Row
}
