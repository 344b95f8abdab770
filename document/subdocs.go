package document

import (
	"github.com/tsawler/worddoc/core"
	"github.com/tsawler/worddoc/fib"
	"github.com/tsawler/worddoc/model"
)

// Reference entry sizes for the note and comment position lists.
const (
	noteRefSize    = 2
	commentRefSize = 30
	textboxRefSize = 22
)

// headerSlots is the number of header/footer stories per section, and
// also the number of leading separator entries the header list carries
// before the first section's stories.
const headerSlots = 6

// headers decodes the header/footer stories. The position list starts
// with six note-separator ranges, then six ranges per section in a fixed
// kind order. Empty ranges mean the slot is unused.
func (d *decoder) headers(sections int) []model.HeaderFooter {
	p := d.parsePlc(fib.EntryPlcfhdd, 0, "headers")
	if p == nil {
		return nil
	}
	_, hddStart, _, _, _, _ := d.fib.SubDocStart()

	var out []model.HeaderFooter
	ranges := len(p.CPs) - 1
	for i := headerSlots; i+1 <= ranges; i++ {
		start, end := p.CPs[i], p.CPs[i+1]
		if end <= start {
			continue
		}
		slot := i - headerSlots
		section := slot / headerSlots
		if section >= sections {
			break
		}
		out = append(out, model.HeaderFooter{
			Kind:       model.HeaderFooterKind(slot % headerSlots),
			Section:    section,
			Paragraphs: d.paragraphs(hddStart+start, hddStart+end),
		})
	}
	return out
}

// footnotes decodes the footnote stories and their reference positions.
func (d *decoder) footnotes() []model.Note {
	ftnStart, _, _, _, _, _ := d.fib.SubDocStart()
	return d.notes(fib.EntryPlcffndRef, fib.EntryPlcffndTxt, ftnStart, "footnotes")
}

// endnotes decodes the endnote stories and their reference positions.
func (d *decoder) endnotes() []model.Note {
	_, _, _, ednStart, _, _ := d.fib.SubDocStart()
	return d.notes(fib.EntryPlcfendRef, fib.EntryPlcfendTxt, ednStart, "endnotes")
}

// notes pairs a reference position list with a text-range list. The text
// list carries one trailing guard range past the last story.
func (d *decoder) notes(refEntry, txtEntry fib.Entry, base int, code string) []model.Note {
	refs := d.parsePlc(refEntry, noteRefSize, code)
	txt := d.parsePlc(txtEntry, 0, code)
	if refs == nil || txt == nil {
		return nil
	}

	n := minInt(refs.Count(), len(txt.CPs)-1)
	out := make([]model.Note, 0, n)
	for i := 0; i < n; i++ {
		start, end := txt.CPs[i], txt.CPs[i+1]
		if end <= start {
			continue
		}
		out = append(out, model.Note{
			CP:         refs.CPs[i],
			Paragraphs: d.paragraphs(base+start, base+end),
		})
	}
	return out
}

// comments decodes the annotation stories. Each reference record carries
// the author initials as a length-prefixed string of up to nine UTF-16
// characters.
func (d *decoder) comments() []model.Comment {
	refs := d.parsePlc(fib.EntryPlcfandRef, commentRefSize, "comments")
	txt := d.parsePlc(fib.EntryPlcfandTxt, 0, "comments")
	if refs == nil || txt == nil {
		return nil
	}
	_, _, atnStart, _, _, _ := d.fib.SubDocStart()

	n := minInt(refs.Count(), len(txt.CPs)-1)
	out := make([]model.Comment, 0, n)
	for i := 0; i < n; i++ {
		start, end := txt.CPs[i], txt.CPs[i+1]
		if end <= start {
			continue
		}
		out = append(out, model.Comment{
			CP:         refs.CPs[i],
			Initials:   commentInitials(refs.Data[i]),
			Paragraphs: d.paragraphs(atnStart+start, atnStart+end),
		})
	}
	return out
}

// commentInitials extracts the author initials from an annotation
// reference record.
func commentInitials(record []byte) string {
	r := core.NewReader(record)
	cch, err := r.U16(0)
	if err != nil {
		return ""
	}
	if cch > 9 {
		cch = 9
	}
	s, err := r.UTF16String(2, int(cch))
	if err != nil {
		return ""
	}
	return s
}

// textboxes decodes the main-text text box stories.
func (d *decoder) textboxes() []model.TextBox {
	p := d.parsePlc(fib.EntryPlcftxbxTxt, textboxRefSize, "textboxes")
	if p == nil {
		return nil
	}
	_, _, _, _, txbxStart, _ := d.fib.SubDocStart()

	out := make([]model.TextBox, 0, p.Count())
	for i := 0; i < p.Count(); i++ {
		start, end := p.Range(i)
		if end <= start {
			continue
		}
		out = append(out, model.TextBox{
			Paragraphs: d.paragraphs(txbxStart+start, txbxStart+end),
		})
	}
	return out
}

// paragraphs builds a sub-document CP range into model paragraphs,
// clamped to the text actually present.
func (d *decoder) paragraphs(cpStart, cpLim int) []model.Paragraph {
	if cpLim > d.b.text.Len() {
		cpLim = d.b.text.Len()
	}
	if cpStart >= cpLim {
		return nil
	}
	built := d.b.buildRange(cpStart, cpLim)
	out := make([]model.Paragraph, len(built))
	for i := range built {
		out[i] = built[i].Paragraph
	}
	return out
}
