package props

import (
	"github.com/tsawler/worddoc/model"
	"github.com/tsawler/worddoc/sprm"
)

// Table property opcodes.
const (
	sprmTFCantSplit     = 0x3403
	sprmTTableHeader    = 0x3404
	sprmTDyaRowHeight   = 0x9407
	sprmTMerge          = 0x5624
	sprmTTableBorders80 = 0xD605
	sprmTDefTable       = 0xD608
	sprmTDefTableShd    = 0xD609
	sprmTTableBorders   = 0xD613
	sprmTSetBrc         = 0xD620
	sprmTVertMerge      = 0xD62B
	sprmTVertAlign      = 0xD62C
)

// TableRow is the result of resolving a row's table opcodes: row-level
// properties plus per-cell properties indexed by cell position.
type TableRow struct {
	Properties model.RowProperties
	Cells      []model.CellProperties
}

// cellState accumulates per-cell values that arrive one opcode at a time.
// Each slice grows on demand to the highest cell index written; gaps keep
// their zero ("unset") value.
type cellState struct {
	widths   []int
	vMerge   []model.VerticalMerge
	hMerge   []model.VerticalMerge
	vAlign   []model.VerticalAlignment
	borders  []model.Borders
	shadings []*model.Shading
}

func growInt(s []int, n int) []int {
	for len(s) < n {
		s = append(s, 0)
	}
	return s
}

func growMerge(s []model.VerticalMerge, n int) []model.VerticalMerge {
	for len(s) < n {
		s = append(s, model.MergeNone)
	}
	return s
}

func growAlign(s []model.VerticalAlignment, n int) []model.VerticalAlignment {
	for len(s) < n {
		s = append(s, model.VerticalTop)
	}
	return s
}

func growBorders(s []model.Borders, n int) []model.Borders {
	for len(s) < n {
		s = append(s, model.Borders{})
	}
	return s
}

func growShadings(s []*model.Shading, n int) []*model.Shading {
	for len(s) < n {
		s = append(s, nil)
	}
	return s
}

func (c *cellState) count() int {
	n := len(c.widths)
	for _, l := range []int{len(c.vMerge), len(c.hMerge), len(c.vAlign), len(c.borders), len(c.shadings)} {
		if l > n {
			n = l
		}
	}
	return n
}

// ResolveTable folds a row's opcode sequence into resolved row and cell
// properties. Unrecognized opcodes are ignored.
func ResolveTable(records []sprm.Record) TableRow {
	var row model.RowProperties
	var cells cellState
	var tb *tableBorders

	for _, rec := range records {
		switch rec.Opcode {
		case sprmTDyaRowHeight:
			// negative means exact height, positive means "at least"
			row.HeightTwips = int(rec.I16())
		case sprmTTableHeader:
			row.Header = rec.Bool()
		case sprmTFCantSplit:
			row.CantSplit = rec.Bool()
		case sprmTDefTable:
			applyTableDefinition(&cells, rec.Operand)
		case sprmTDefTableShd:
			applyTableShading(&cells, rec.Operand)
		case sprmTTableBorders80:
			tb = decodeTableBorders(rec.Operand, 4, legacyBorder)
		case sprmTTableBorders:
			tb = decodeTableBorders(rec.Operand, 8, modernBorder)
		case sprmTSetBrc:
			applyCellBorders(&cells, rec.Operand)
		case sprmTVertMerge:
			applyVerticalMerge(&cells, rec.Operand)
		case sprmTVertAlign:
			applyVerticalAlign(&cells, rec.Operand)
		case sprmTMerge:
			applyHorizontalMerge(&cells, rec.Operand)
		}
	}

	n := cells.count()
	out := TableRow{Properties: row, Cells: make([]model.CellProperties, n)}
	cells.widths = growInt(cells.widths, n)
	cells.vMerge = growMerge(cells.vMerge, n)
	cells.hMerge = growMerge(cells.hMerge, n)
	cells.vAlign = growAlign(cells.vAlign, n)
	cells.borders = growBorders(cells.borders, n)
	cells.shadings = growShadings(cells.shadings, n)
	for i := 0; i < n; i++ {
		out.Cells[i] = model.CellProperties{
			WidthTwips:        cells.widths[i],
			VerticalMerge:     cells.vMerge[i],
			HorizontalMerge:   cells.hMerge[i],
			VerticalAlignment: cells.vAlign[i],
			Borders:           cells.borders[i],
			Shading:           cells.shadings[i],
		}
	}
	if tb != nil {
		applyRowBorders(out.Cells, tb)
	}
	return out
}

// tableBorders is a row's six-edge border set: the four outer edges plus
// the two inside edges shared between cells and between rows.
type tableBorders struct {
	top, left, bottom, right *model.Border
	insideH, insideV         *model.Border
}

// decodeTableBorders decodes six consecutive border descriptors in the
// order top, left, bottom, right, insideH, insideV.
func decodeTableBorders(operand []byte, size int, decode func([]byte) *model.Border) *tableBorders {
	if len(operand) < 6*size {
		return nil
	}
	at := func(i int) *model.Border { return decode(operand[i*size : (i+1)*size]) }
	return &tableBorders{
		top:     at(0),
		left:    at(1),
		bottom:  at(2),
		right:   at(3),
		insideH: at(4),
		insideV: at(5),
	}
}

// applyRowBorders fills in cell edges the per-cell opcodes left unset. The
// outer left and right edges go to the boundary cells and the inside
// vertical edge to the cell boundaries between them; the inside horizontal
// edge runs between rows, so it is carried on every cell for the table
// assembler.
func applyRowBorders(cells []model.CellProperties, tb *tableBorders) {
	last := len(cells) - 1
	for i := range cells {
		b := &cells[i].Borders
		left, right := tb.insideV, tb.insideV
		if i == 0 {
			left = tb.left
		}
		if i == last {
			right = tb.right
		}
		if b.Top == nil {
			b.Top = tb.top
		}
		if b.Bottom == nil {
			b.Bottom = tb.bottom
		}
		if b.Left == nil {
			b.Left = left
		}
		if b.Right == nil {
			b.Right = right
		}
		if b.InsideH == nil {
			b.InsideH = tb.insideH
		}
		if b.InsideV == nil {
			b.InsideV = tb.insideV
		}
	}
}

// applyTableDefinition decodes the row definition operand: a cell count,
// itcMac+1 column boundary centers, then optional 20-byte cell descriptors.
// Cell widths are the differences of consecutive boundary centers.
func applyTableDefinition(cells *cellState, operand []byte) {
	if len(operand) < 1 {
		return
	}
	itcMac := int(operand[0])
	if len(operand) < 1+2*(itcMac+1) {
		return
	}
	centers := make([]int, itcMac+1)
	for i := range centers {
		off := 1 + 2*i
		centers[i] = int(int16(uint16(operand[off]) | uint16(operand[off+1])<<8))
	}
	cells.widths = growInt(cells.widths, itcMac)
	for i := 0; i < itcMac; i++ {
		cells.widths[i] = centers[i+1] - centers[i]
	}

	// trailing cell descriptors: flags, preferred width, four borders
	tcBase := 1 + 2*(itcMac+1)
	const tcSize = 20
	for i := 0; i < itcMac && tcBase+(i+1)*tcSize <= len(operand); i++ {
		tc := operand[tcBase+i*tcSize : tcBase+(i+1)*tcSize]
		cells.borders = growBorders(cells.borders, i+1)
		cells.borders[i] = model.Borders{
			Top:    legacyBorder(tc[4:8]),
			Left:   legacyBorder(tc[8:12]),
			Bottom: legacyBorder(tc[12:16]),
			Right:  legacyBorder(tc[16:20]),
		}
	}
}

// applyTableShading decodes one 2-byte shading descriptor per cell.
func applyTableShading(cells *cellState, operand []byte) {
	n := len(operand) / 2
	cells.shadings = growShadings(cells.shadings, n)
	for i := 0; i < n; i++ {
		v := uint16(operand[2*i]) | uint16(operand[2*i+1])<<8
		cells.shadings[i] = legacyShading(v)
	}
}

// applyCellBorders decodes a border-change operand: a cell range, a bitmap
// of affected edges, and one border descriptor.
func applyCellBorders(cells *cellState, operand []byte) {
	if len(operand) < 7 {
		return
	}
	first, lim := int(operand[0]), int(operand[1])
	edges := operand[2]
	brc := legacyBorder(operand[3:7])
	if lim <= first {
		return
	}
	cells.borders = growBorders(cells.borders, lim)
	for i := first; i < lim; i++ {
		if edges&0x01 != 0 {
			cells.borders[i].Top = brc
		}
		if edges&0x02 != 0 {
			cells.borders[i].Left = brc
		}
		if edges&0x04 != 0 {
			cells.borders[i].Bottom = brc
		}
		if edges&0x08 != 0 {
			cells.borders[i].Right = brc
		}
	}
}

// applyVerticalMerge updates one cell's vertical merge state. The array
// grows to accommodate the target index; untouched cells stay unset.
func applyVerticalMerge(cells *cellState, operand []byte) {
	if len(operand) < 2 {
		return
	}
	itc := int(operand[0])
	cells.vMerge = growMerge(cells.vMerge, itc+1)
	switch {
	case operand[1]&0x02 != 0:
		cells.vMerge[itc] = model.MergeRestart
	case operand[1]&0x01 != 0:
		cells.vMerge[itc] = model.MergeContinue
	default:
		cells.vMerge[itc] = model.MergeNone
	}
}

// applyVerticalAlign applies one alignment to a range of cells.
func applyVerticalAlign(cells *cellState, operand []byte) {
	if len(operand) < 3 {
		return
	}
	first, lim := int(operand[0]), int(operand[1])
	if lim <= first {
		return
	}
	var va model.VerticalAlignment
	switch operand[2] {
	case 1:
		va = model.VerticalCenter
	case 2:
		va = model.VerticalJustify
	case 3:
		va = model.VerticalBottom
	default:
		va = model.VerticalTop
	}
	cells.vAlign = growAlign(cells.vAlign, lim)
	for i := first; i < lim; i++ {
		cells.vAlign[i] = va
	}
}

// applyHorizontalMerge merges a [first, lim) cell range: the first cell
// restarts the merge and the rest continue it.
func applyHorizontalMerge(cells *cellState, operand []byte) {
	if len(operand) < 2 {
		return
	}
	first, lim := int(operand[0]), int(operand[1])
	if lim <= first {
		return
	}
	cells.hMerge = growMerge(cells.hMerge, lim)
	cells.hMerge[first] = model.MergeRestart
	for i := first + 1; i < lim; i++ {
		cells.hMerge[i] = model.MergeContinue
	}
}
