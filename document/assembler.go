package document

import (
	"fmt"
	"strings"

	"github.com/tsawler/worddoc/bintable"
	"github.com/tsawler/worddoc/fib"
	"github.com/tsawler/worddoc/model"
	"github.com/tsawler/worddoc/pieces"
	"github.com/tsawler/worddoc/plc"
	"github.com/tsawler/worddoc/stylesheet"
)

// decoder holds the decode state shared by the assembly stages: the three
// input streams, the decoded header, and the paragraph builder.
type decoder struct {
	word  []byte
	table []byte
	data  []byte

	fib *fib.FIB
	b   *builder

	warns []Warning
}

// Assemble decodes a document from its three raw streams. The data stream
// may be nil. The returned warnings list every structure that failed to
// decode and was treated as absent; an error is returned only when the
// header is invalid or the text itself cannot be recovered.
func Assemble(word, table, data []byte) (*model.Document, []Warning, error) {
	d := &decoder{word: word, table: table, data: data}

	f, err := fib.Parse(word)
	if err != nil {
		return nil, nil, &FatalError{Code: CodeInvalidHeader, Err: err}
	}
	d.fib = f
	if f.Encrypted {
		return nil, nil, &FatalError{Code: CodeInvalidHeader, Err: fmt.Errorf("document is encrypted")}
	}

	clx := d.slice(fib.EntryClx, "piece_table")
	pt, err := pieces.Parse(clx)
	if err != nil {
		return nil, nil, &FatalError{Code: CodeNoText, Err: fmt.Errorf("decoding piece table: %w", err)}
	}
	text, err := pt.Retrieve(word)
	if err != nil {
		return nil, nil, &FatalError{Code: CodeNoText, Err: fmt.Errorf("retrieving text: %w", err)}
	}
	if text.Len() < f.CcpText {
		return nil, nil, &FatalError{Code: CodeNoText, Err: fmt.Errorf("text of %d characters is shorter than the declared %d", text.Len(), f.CcpText)}
	}

	d.b = &builder{
		text:   text,
		pieces: pt,
		styles: d.parseStyles(),
		chpx:   d.parseBinTable(bintable.Character, fib.EntryPlcfbteChpx, "char_bintable"),
		papx:   d.parseBinTable(bintable.Paragraph, fib.EntryPlcfbtePapx, "para_bintable"),
		lfo:    d.listOverrides(),
	}

	body := d.b.buildRange(0, f.CcpText)
	doc := &model.Document{
		Metadata: d.metadata(),
		Sections: buildSections(word, d.parsePlc(fib.EntryPlcfsed, sedSize, "section_table"), body),
		Styles:   d.b.styles.Styles(),
		Fonts:    d.fonts(),
		Lists:    d.listDefinitions(),
	}

	doc.Headers = d.headers(len(doc.Sections))
	doc.Footnotes = d.footnotes()
	doc.Endnotes = d.endnotes()
	doc.Comments = d.comments()
	doc.TextBoxes = d.textboxes()
	doc.Bookmarks = d.bookmarks()
	doc.Fields, doc.FormFields = d.fields()
	doc.Images = d.images()
	doc.ShapeAnchors = d.shapeAnchors()

	return doc, d.warns, nil
}

// warnf records a recoverable decode failure.
func (d *decoder) warnf(code, format string, args ...any) {
	d.warns = append(d.warns, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// slice returns the table-stream slice an entry points at, or nil when the
// entry is absent. A location pointing outside the stream is recorded and
// treated as absent.
func (d *decoder) slice(e fib.Entry, code string) []byte {
	loc := d.fib.Location(e)
	if !loc.Present() {
		return nil
	}
	start, end := int(loc.Offset), int(loc.Offset)+int(loc.Length)
	if start < 0 || end < start || end > len(d.table) {
		d.warnf(code, "byte range [%d, %d) outside table stream of %d bytes", start, end, len(d.table))
		return nil
	}
	return d.table[start:end]
}

// parsePlc decodes a position list entry, degrading failures to nil.
func (d *decoder) parsePlc(e fib.Entry, cbEntry int, code string) *plc.PLC {
	raw := d.slice(e, code)
	if raw == nil {
		return nil
	}
	p, err := plc.Parse(raw, cbEntry)
	if err != nil {
		d.warnf(code, "%v", err)
		return nil
	}
	return p
}

// parseStyles decodes the style sheet, degrading failures to an empty
// sheet.
func (d *decoder) parseStyles() *stylesheet.Sheet {
	raw := d.slice(fib.EntryStshf, "style_sheet")
	if raw == nil {
		return stylesheet.Empty()
	}
	s, err := stylesheet.Parse(raw)
	if err != nil {
		d.warnf("style_sheet", "%v", err)
		return stylesheet.Empty()
	}
	return s
}

// parseBinTable builds a property-run locator, degrading failures to an
// empty locator.
func (d *decoder) parseBinTable(kind bintable.Kind, e fib.Entry, code string) *bintable.Locator {
	raw := d.slice(e, code)
	l, err := bintable.New(kind, d.word, raw)
	if err != nil {
		d.warnf(code, "%v", err)
		l, _ = bintable.New(kind, d.word, nil)
	}
	return l
}

// metadata decodes the associated-strings table. The table is a fixed
// sequence of slots; the ones carrying document metadata are picked out
// by position.
func (d *decoder) metadata() model.Metadata {
	raw := d.slice(fib.EntrySttbfAssoc, "metadata")
	if raw == nil {
		return model.Metadata{}
	}
	strs, err := plc.ParseStrings(raw)
	if err != nil {
		d.warnf("metadata", "%v", err)
		return model.Metadata{}
	}

	at := func(i int) string {
		if i < len(strs) {
			return strs[i]
		}
		return ""
	}
	return model.Metadata{
		Title:       at(assocTitle),
		Subject:     at(assocSubject),
		Keywords:    splitKeywords(at(assocKeywords)),
		Author:      at(assocAuthor),
		LastSavedBy: at(assocLastSavedBy),
	}
}

// associated-strings slot indices.
const (
	assocTitle       = 2
	assocSubject     = 3
	assocKeywords    = 4
	assocAuthor      = 6
	assocLastSavedBy = 7
)

// splitKeywords breaks a keyword string on its separator characters.
func splitKeywords(s string) []string {
	var out []string
	start := 0
	flush := func(end int) {
		if w := strings.TrimSpace(s[start:end]); w != "" {
			out = append(out, w)
		}
	}
	for i := 0; i < len(s); i++ {
		if s[i] == ';' || s[i] == ',' {
			flush(i)
			start = i + 1
		}
	}
	flush(len(s))
	return out
}
