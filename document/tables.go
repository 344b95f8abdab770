package document

import (
	"github.com/tsawler/worddoc/model"
	"github.com/tsawler/worddoc/props"
	"github.com/tsawler/worddoc/sprm"
)

// sectionTables builds the structured table view of one section: each
// maximal stretch of consecutive in-table paragraphs becomes one table.
func sectionTables(paras []para) []model.Table {
	var tables []model.Table
	i := 0
	for i < len(paras) {
		if !paras[i].Properties.InTable {
			i++
			continue
		}
		j := i
		for j < len(paras) && paras[j].Properties.InTable {
			j++
		}
		if t := buildTable(paras[i:j]); len(t.Rows) > 0 {
			tables = append(tables, t)
		}
		i = j
	}
	return tables
}

// buildTable groups in-table paragraphs into rows. Each row ends at a
// row-mark paragraph, whose opcode records carry the row's table
// properties. Paragraphs after the last row mark belong to no row and
// are dropped from the structured view; they still appear in the
// section's paragraph sequence.
func buildTable(paras []para) model.Table {
	var t model.Table
	var rowParas []para
	for i := range paras {
		if paras[i].rowEnd {
			t.Rows = append(t.Rows, buildRow(rowParas, paras[i].tap))
			rowParas = nil
			continue
		}
		rowParas = append(rowParas, paras[i])
	}
	return t
}

// buildRow splits a row's paragraphs into cells at the cell marks and
// attaches the row's resolved table properties. Cell properties are
// matched to cells by position; cells beyond the row's declared cell
// count keep zero properties.
func buildRow(paras []para, tap []sprm.Record) model.Row {
	resolved := props.ResolveTable(tap)
	row := model.Row{Properties: resolved.Properties}

	var cell []model.Paragraph
	flush := func() {
		c := model.Cell{Paragraphs: cell}
		if n := len(row.Cells); n < len(resolved.Cells) {
			c.Properties = resolved.Cells[n]
		}
		row.Cells = append(row.Cells, c)
		cell = nil
	}
	for i := range paras {
		cell = append(cell, paras[i].Paragraph)
		if paras[i].cellEnd {
			flush()
		}
	}
	if len(cell) > 0 {
		flush()
	}
	return row
}
