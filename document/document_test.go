package document

import (
	"errors"
	"testing"

	"github.com/tsawler/worddoc/fib"
	"github.com/tsawler/worddoc/model"
)

func putU16(b []byte, off int, v uint16) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
}

func putU32(b []byte, off int, v uint32) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
	b[off+2] = byte(v >> 16)
	b[off+3] = byte(v >> 24)
}

func appendU32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// raw opcode runs used by the fixtures.
var (
	papCenter  = []byte{0x03, 0x24, 0x01}
	papInTable = []byte{0x16, 0x24, 0x01}
	chpBold    = []byte{0x35, 0x08, 0x01}

	// in-table + row mark + two 1440-twip cells
	papRowEnd = []byte{
		0x16, 0x24, 0x01,
		0x17, 0x24, 0x01,
		0x08, 0xD6, 0x07, 0x00, 0x02, 0x00, 0x00, 0xA0, 0x05, 0x40, 0x0B,
	}
)

type charRun struct {
	cpLim  int
	grpprl []byte
}

type paraDef struct {
	cpLim  int
	grpprl []byte
}

// fixture assembles a synthetic WordDocument and table stream pair: the
// text as one compressed piece, one formatted page per property system,
// and any extra table-stream structures keyed by their FIB entry.
type fixture struct {
	text    string
	paras   []paraDef
	runs    []charRun
	entries map[fib.Entry][]byte
	sepx    map[uint32][]byte
	flags   uint16
	ccpText int
	ccpFtn  int
	ccpHdd  int
	ccpAtn  int
	ccpTxbx int
}

const (
	fixtureTextFC   = 0x400
	fixtureChpxPage = 3
	fixturePapxPage = 4
	fixtureWordSize = 5 * 512
)

func (f *fixture) build(t *testing.T) (word, table []byte) {
	t.Helper()

	word = make([]byte, fixtureWordSize)
	putU16(word, 0, fib.Magic)
	putU16(word, 2, 0xC1)
	putU16(word, 0x0A, f.flags)
	ccp := f.ccpText
	if ccp == 0 {
		ccp = len(f.text)
	}
	putU32(word, 0x4C, uint32(ccp))
	putU32(word, 0x50, uint32(f.ccpFtn))
	putU32(word, 0x54, uint32(f.ccpHdd))
	putU32(word, 0x5C, uint32(f.ccpAtn))
	putU32(word, 0x64, uint32(f.ccpTxbx))
	copy(word[fixtureTextFC:], f.text)
	for off, blob := range f.sepx {
		copy(word[off:], blob)
	}

	if len(f.runs) > 0 {
		buildCharPage(word[fixtureChpxPage*512:(fixtureChpxPage+1)*512], f.runs)
	}
	if len(f.paras) > 0 {
		buildParaPage(word[fixturePapxPage*512:(fixturePapxPage+1)*512], f.paras)
	}

	table = make([]byte, 64)
	addEntry := func(e fib.Entry, blob []byte) {
		putU32(word, 0x9A+int(e)*8, uint32(len(table)))
		putU32(word, 0x9A+int(e)*8+4, uint32(len(blob)))
		table = append(table, blob...)
	}

	var pcd []byte
	pcd = appendU32(pcd, 0)
	pcd = appendU32(pcd, uint32(len(f.text)))
	pcd = append(pcd, 0, 0)
	pcd = appendU32(pcd, 0x40000000|fixtureTextFC*2)
	pcd = append(pcd, 0, 0)
	clx := append([]byte{0x02}, appendU32(nil, uint32(len(pcd)))...)
	addEntry(fib.EntryClx, append(clx, pcd...))

	textLim := uint32(fixtureTextFC + len(f.text))
	if len(f.runs) > 0 {
		bin := appendU32(nil, fixtureTextFC)
		bin = appendU32(bin, textLim)
		bin = appendU32(bin, fixtureChpxPage)
		addEntry(fib.EntryPlcfbteChpx, bin)
	}
	if len(f.paras) > 0 {
		bin := appendU32(nil, fixtureTextFC)
		bin = appendU32(bin, textLim)
		bin = appendU32(bin, fixturePapxPage)
		addEntry(fib.EntryPlcfbtePapx, bin)
	}
	for e, blob := range f.entries {
		addEntry(e, blob)
	}
	return word, table
}

func buildCharPage(page []byte, runs []charRun) {
	n := len(runs)
	putU32(page, 0, fixtureTextFC)
	for i, r := range runs {
		putU32(page, (i+1)*4, uint32(fixtureTextFC+r.cpLim))
	}
	cursor := 256
	for i, r := range runs {
		if len(r.grpprl) == 0 {
			continue
		}
		page[(n+1)*4+i] = byte(cursor / 2)
		page[cursor] = byte(len(r.grpprl))
		copy(page[cursor+1:], r.grpprl)
		cursor += 1 + len(r.grpprl)
		if cursor%2 != 0 {
			cursor++
		}
	}
	page[511] = byte(n)
}

func buildParaPage(page []byte, paras []paraDef) {
	n := len(paras)
	putU32(page, 0, fixtureTextFC)
	for i, p := range paras {
		putU32(page, (i+1)*4, uint32(fixtureTextFC+p.cpLim))
	}
	cursor := 256
	for i, p := range paras {
		body := append([]byte{0, 0}, p.grpprl...)
		at := cursor
		if len(body)%2 == 1 {
			page[at] = byte((len(body) + 1) / 2)
			copy(page[at+1:], body)
			cursor = at + 1 + len(body)
		} else {
			page[at+1] = byte(len(body) / 2)
			copy(page[at+2:], body)
			cursor = at + 2 + len(body)
		}
		if cursor%2 != 0 {
			cursor++
		}
		page[(n+1)*4+i*13] = byte(at / 2)
	}
	page[511] = byte(n)
}

func hasWarning(warns []Warning, code string) bool {
	for _, w := range warns {
		if w.Code == code {
			return true
		}
	}
	return false
}

func assocTable(slots ...string) []byte {
	out := appendU32(nil, 0) // marker 0xFFFF with count, filled below
	putU16(out, 0, 0xFFFF)
	putU16(out, 2, uint16(len(slots)))
	out = append(out, 0, 0) // no extra bytes
	for _, s := range slots {
		entry := make([]byte, 2)
		putU16(entry, 0, uint16(len(s)))
		for _, r := range s {
			entry = append(entry, byte(r), byte(uint16(r)>>8))
		}
		out = append(out, entry...)
	}
	return out
}

func TestAssembleParagraphsAndRuns(t *testing.T) {
	f := &fixture{
		text:  "Hello world.\rSecond para.\r",
		paras: []paraDef{{13, papCenter}, {26, nil}},
		runs:  []charRun{{6, chpBold}, {26, nil}},
		entries: map[fib.Entry][]byte{
			fib.EntrySttbfAssoc: assocTable("", "", "Annual Report", "Finance", "alpha; beta", "", "Ann", "Bob"),
		},
	}
	word, table := f.build(t)

	doc, warns, err := Assemble(word, table, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(warns) != 0 {
		t.Errorf("warnings = %v", warns)
	}

	if len(doc.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(doc.Sections))
	}
	paras := doc.Sections[0].Paragraphs
	if len(paras) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(paras))
	}

	p0 := paras[0]
	if p0.Properties.Alignment != model.AlignCenter {
		t.Errorf("paragraph 0 alignment = %v", p0.Properties.Alignment)
	}
	if p0.CPStart != 0 || p0.CPEnd != 13 {
		t.Errorf("paragraph 0 range = [%d, %d)", p0.CPStart, p0.CPEnd)
	}
	if len(p0.Runs) != 2 {
		t.Fatalf("paragraph 0 has %d runs, want 2", len(p0.Runs))
	}
	if p0.Runs[0].Text != "Hello " || !p0.Runs[0].Properties.Bold {
		t.Errorf("run 0 = %q bold=%v", p0.Runs[0].Text, p0.Runs[0].Properties.Bold)
	}
	if p0.Runs[1].Text != "world." || p0.Runs[1].Properties.Bold {
		t.Errorf("run 1 = %q bold=%v", p0.Runs[1].Text, p0.Runs[1].Properties.Bold)
	}
	if p0.Runs[0].Properties.SizeHalfPoints != 20 {
		t.Errorf("default size = %d", p0.Runs[0].Properties.SizeHalfPoints)
	}
	if got := paras[1].Text(); got != "Second para." {
		t.Errorf("paragraph 1 = %q", got)
	}

	if doc.Metadata.Title != "Annual Report" || doc.Metadata.Author != "Ann" {
		t.Errorf("metadata = %+v", doc.Metadata)
	}
	if len(doc.Metadata.Keywords) != 2 || doc.Metadata.Keywords[0] != "alpha" || doc.Metadata.Keywords[1] != "beta" {
		t.Errorf("keywords = %q", doc.Metadata.Keywords)
	}
	if doc.Metadata.LastSavedBy != "Bob" {
		t.Errorf("LastSavedBy = %q", doc.Metadata.LastSavedBy)
	}
}

func TestAssembleSections(t *testing.T) {
	sed := appendU32(nil, 0)
	sed = appendU32(sed, 13)
	sed = appendU32(sed, 26)
	sed = append(sed, 0, 0)
	sed = appendU32(sed, 0x4E0)
	sed = append(sed, make([]byte, 6)...)
	sed = append(sed, 0, 0)
	sed = appendU32(sed, 0xFFFFFFFF)
	sed = append(sed, make([]byte, 6)...)

	f := &fixture{
		text:    "Hello world.\rSecond para.\r",
		paras:   []paraDef{{13, nil}, {26, nil}},
		runs:    []charRun{{26, nil}},
		entries: map[fib.Entry][]byte{fib.EntryPlcfsed: sed},
		sepx: map[uint32][]byte{
			0x4E0: {0x03, 0x00, 0x09, 0x30, 0x00}, // continuous break
		},
	}
	word, table := f.build(t)

	doc, _, err := Assemble(word, table, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(doc.Sections))
	}
	if doc.Sections[0].Properties.Break != model.BreakContinuous {
		t.Errorf("section 0 break = %v", doc.Sections[0].Properties.Break)
	}
	if got := len(doc.Sections[0].Paragraphs); got != 1 {
		t.Errorf("section 0 has %d paragraphs", got)
	}
	if doc.Sections[0].Paragraphs[0].Text() != "Hello world." {
		t.Errorf("section 0 text = %q", doc.Sections[0].Paragraphs[0].Text())
	}

	// a descriptor without a property block keeps the defaults
	if doc.Sections[1].Properties.Break != model.BreakNewPage {
		t.Errorf("section 1 break = %v", doc.Sections[1].Properties.Break)
	}
	if doc.Sections[1].Paragraphs[0].Text() != "Second para." {
		t.Errorf("section 1 text = %q", doc.Sections[1].Paragraphs[0].Text())
	}
}

func TestAssembleTable(t *testing.T) {
	f := &fixture{
		text: "A\aB\a\aEnd.\r",
		paras: []paraDef{
			{2, papInTable},
			{4, papInTable},
			{5, papRowEnd},
			{10, nil},
		},
		runs: []charRun{{10, nil}},
	}
	word, table := f.build(t)

	doc, warns, err := Assemble(word, table, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(warns) != 0 {
		t.Errorf("warnings = %v", warns)
	}

	sec := doc.Sections[0]
	if len(sec.Tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(sec.Tables))
	}
	rows := sec.Tables[0].Rows
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	cells := rows[0].Cells
	if len(cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(cells))
	}
	if got := cells[0].Text(); got != "A" {
		t.Errorf("cell 0 = %q", got)
	}
	if got := cells[1].Text(); got != "B" {
		t.Errorf("cell 1 = %q", got)
	}
	if cells[0].Properties.WidthTwips != 1440 || cells[1].Properties.WidthTwips != 1440 {
		t.Errorf("cell widths = %d, %d", cells[0].Properties.WidthTwips, cells[1].Properties.WidthTwips)
	}

	// every paragraph, table ones included, stays in the section sequence
	if len(sec.Paragraphs) != 4 {
		t.Errorf("section has %d paragraphs, want 4", len(sec.Paragraphs))
	}
	if got := sec.Paragraphs[3].Text(); got != "End." {
		t.Errorf("trailing paragraph = %q", got)
	}
}

func TestAssembleFields(t *testing.T) {
	text := "See \x13HYPERLINK \"http://e.com\"\x14link\x15.\r"

	fld := appendU32(nil, 4)
	fld = appendU32(fld, 29)
	fld = appendU32(fld, 34)
	fld = appendU32(fld, uint32(len(text)))
	fld = append(fld, 19, 0, 20, 0, 21, 0)

	bkf := appendU32(nil, 4)
	bkf = appendU32(bkf, uint32(len(text)))
	bkf = append(bkf, 0, 0, 0, 0)
	bkl := appendU32(nil, 34)
	bkl = appendU32(bkl, uint32(len(text)))

	names := []byte{0xFF, 0xFF, 1, 0, 0, 0}
	names = append(names, 4, 0, 'm', 0, 'a', 0, 'r', 0, 'k', 0)

	f := &fixture{
		text:  text,
		paras: []paraDef{{len(text), nil}},
		runs:  []charRun{{len(text), nil}},
		entries: map[fib.Entry][]byte{
			fib.EntryPlcffldMom: fld,
			fib.EntryPlcfbkf:    bkf,
			fib.EntryPlcfbkl:    bkl,
			fib.EntrySttbfbkmk:  names,
		},
	}
	word, table := f.build(t)

	doc, _, err := Assemble(word, table, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(doc.Fields) != 1 {
		t.Fatalf("got %d fields, want 1", len(doc.Fields))
	}
	fd := doc.Fields[0]
	if fd.Type != model.FieldHyperlink {
		t.Errorf("Type = %v", fd.Type)
	}
	if fd.Instruction != `HYPERLINK "http://e.com"` {
		t.Errorf("Instruction = %q", fd.Instruction)
	}
	if fd.URL != "http://e.com" {
		t.Errorf("URL = %q", fd.URL)
	}
	if fd.Result != "link" {
		t.Errorf("Result = %q", fd.Result)
	}
	if fd.CPStart != 4 || fd.CPEnd != 35 {
		t.Errorf("range = [%d, %d)", fd.CPStart, fd.CPEnd)
	}
	if len(doc.FormFields) != 0 {
		t.Errorf("form fields = %+v", doc.FormFields)
	}

	if len(doc.Bookmarks) != 1 {
		t.Fatalf("got %d bookmarks, want 1", len(doc.Bookmarks))
	}
	bm := doc.Bookmarks[0]
	if bm.Name != "mark" || bm.Start != 4 || bm.End != 34 {
		t.Errorf("bookmark = %+v", bm)
	}
}

func TestAssembleCorruptStylesheet(t *testing.T) {
	f := &fixture{
		text:    "Hello.\r",
		paras:   []paraDef{{7, nil}},
		runs:    []charRun{{7, nil}},
		entries: map[fib.Entry][]byte{fib.EntryStshf: {0x01}},
	}
	word, table := f.build(t)

	doc, warns, err := Assemble(word, table, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !hasWarning(warns, "style_sheet") {
		t.Errorf("warnings = %v, want style_sheet", warns)
	}
	if got := doc.Text(); got != "Hello." {
		t.Errorf("text = %q", got)
	}
}

func TestAssembleBadMagic(t *testing.T) {
	_, _, err := Assemble(make([]byte, 0x200), nil, nil)
	var fatal *FatalError
	if !errors.As(err, &fatal) || fatal.Code != CodeInvalidHeader {
		t.Fatalf("err = %v", err)
	}
}

func TestAssembleEncrypted(t *testing.T) {
	f := &fixture{text: "Hi.\r", flags: 0x0100}
	word, table := f.build(t)

	_, _, err := Assemble(word, table, nil)
	var fatal *FatalError
	if !errors.As(err, &fatal) || fatal.Code != CodeInvalidHeader {
		t.Fatalf("err = %v", err)
	}
}

func TestAssembleNoPieceTable(t *testing.T) {
	word := make([]byte, 0x400)
	putU16(word, 0, fib.Magic)

	_, _, err := Assemble(word, nil, nil)
	var fatal *FatalError
	if !errors.As(err, &fatal) || fatal.Code != CodeNoText {
		t.Fatalf("err = %v", err)
	}
}

func TestAssembleShuffledPieceTable(t *testing.T) {
	// a piece table whose CP array goes backwards must be rejected as a
	// labeled error, not crash text retrieval
	word := make([]byte, 0x400)
	putU16(word, 0, fib.Magic)
	putU32(word, 0x4C, 5)

	var pcd []byte
	pcd = appendU32(pcd, 0)
	pcd = appendU32(pcd, 5)
	pcd = appendU32(pcd, 3)
	for i := 0; i < 2; i++ {
		pcd = append(pcd, 0, 0)
		pcd = appendU32(pcd, 0x40000000|0x200*2)
		pcd = append(pcd, 0, 0)
	}
	clx := append([]byte{0x02}, appendU32(nil, uint32(len(pcd)))...)
	clx = append(clx, pcd...)

	table := append(make([]byte, 64), clx...)
	putU32(word, 0x9A+int(fib.EntryClx)*8, 64)
	putU32(word, 0x9A+int(fib.EntryClx)*8+4, uint32(len(clx)))

	_, _, err := Assemble(word, table, nil)
	var fatal *FatalError
	if !errors.As(err, &fatal) || fatal.Code != CodeNoText {
		t.Fatalf("err = %v", err)
	}
}

func TestAssembleShortText(t *testing.T) {
	f := &fixture{text: "Hi.\r", ccpText: 50}
	word, table := f.build(t)

	_, _, err := Assemble(word, table, nil)
	var fatal *FatalError
	if !errors.As(err, &fatal) || fatal.Code != CodeNoText {
		t.Fatalf("err = %v", err)
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Code: "fields", Message: "boundary list truncated"}
	if got := w.String(); got != "fields: boundary list truncated" {
		t.Errorf("String = %q", got)
	}
}
