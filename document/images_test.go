package document

import (
	"bytes"
	"testing"

	"github.com/tsawler/worddoc/fib"
)

// drawingRecord frames one drawing-layer record.
func drawingRecord(ver, instance int, typ uint16, data []byte) []byte {
	out := make([]byte, 8)
	putU16(out, 0, uint16(ver&0xF)|uint16(instance)<<4)
	putU16(out, 2, typ)
	putU32(out, 4, uint32(len(data)))
	return append(out, data...)
}

func TestAssembleInlineImage(t *testing.T) {
	const picOffset = 16
	img := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	// picture descriptor: 68-byte header, then a JPEG record
	payload := drawingRecord(0, 0, 0xF01D, append(make([]byte, 17), img...))
	desc := make([]byte, 68)
	putU32(desc, 0, uint32(68+len(payload)))
	desc[4] = 68
	putU16(desc, 28, 1440) // display width
	putU16(desc, 30, 720)  // display height
	data := append(make([]byte, picOffset), append(desc, payload...)...)

	// the anchor's run carries the descriptor offset and the special flag
	picRun := []byte{
		0x03, 0x6A, picOffset, 0x00, 0x00, 0x00,
		0x55, 0x08, 0x01,
	}

	f := &fixture{
		text:  "X\x01Y.\r",
		paras: []paraDef{{5, nil}},
		runs:  []charRun{{1, nil}, {2, picRun}, {5, nil}},
	}
	word, table := f.build(t)

	doc, warns, err := Assemble(word, table, data)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(warns) != 0 {
		t.Errorf("warnings = %v", warns)
	}

	if len(doc.Images) != 1 {
		t.Fatalf("got %d images, want 1", len(doc.Images))
	}
	im := doc.Images[0]
	if im.ContentType != "image/jpeg" || !bytes.Equal(im.Data, img) {
		t.Errorf("image = %s %v", im.ContentType, im.Data)
	}
	if im.CP != 1 {
		t.Errorf("CP = %d, want 1", im.CP)
	}
	if im.DisplayWidthTwips != 1440 || im.DisplayHeightTwips != 720 {
		t.Errorf("display = %dx%d", im.DisplayWidthTwips, im.DisplayHeightTwips)
	}
}

func TestAssembleFootnoteAnchorIgnored(t *testing.T) {
	// the inline-image scan covers the main text only; an anchor inside
	// footnote text stays unresolved even when its picture data is valid
	const picOffset = 16
	img := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	payload := drawingRecord(0, 0, 0xF01D, append(make([]byte, 17), img...))
	desc := make([]byte, 68)
	putU32(desc, 0, uint32(68+len(payload)))
	desc[4] = 68
	data := append(make([]byte, picOffset), append(desc, payload...)...)

	picRun := []byte{
		0x03, 0x6A, picOffset, 0x00, 0x00, 0x00,
		0x55, 0x08, 0x01,
	}

	main := "Body\x02 ok.\r"
	note := "\x01 pic.\r"

	refs := appendU32(nil, 4)
	refs = appendU32(refs, uint32(len(main)))
	refs = append(refs, 0, 0)
	txt := appendU32(nil, 0)
	txt = appendU32(txt, uint32(len(note)))

	f := &fixture{
		text:    main + note,
		ccpText: len(main),
		ccpFtn:  len(note),
		paras:   []paraDef{{len(main), nil}, {len(main) + len(note), nil}},
		runs: []charRun{
			{len(main), nil},
			{len(main) + 1, picRun},
			{len(main) + len(note), nil},
		},
		entries: map[fib.Entry][]byte{
			fib.EntryPlcffndRef: refs,
			fib.EntryPlcffndTxt: txt,
		},
	}
	word, table := f.build(t)

	doc, _, err := Assemble(word, table, data)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(doc.Footnotes) != 1 {
		t.Fatalf("got %d footnotes, want 1", len(doc.Footnotes))
	}
	if len(doc.Images) != 0 {
		t.Errorf("images = %+v, want none for a footnote-only anchor", doc.Images)
	}
}

func TestAssembleStoredImagesFallback(t *testing.T) {
	img := []byte{0x89, 0x50, 0x4E, 0x47}
	blip := drawingRecord(0, 0, 0xF01E, append(make([]byte, 17), img...))
	store := drawingRecord(0xF, 0, 0xF001, blip)
	dgg := drawingRecord(0xF, 0, 0xF000, store)

	f := &fixture{
		text:    "No anchors here.\r",
		paras:   []paraDef{{17, nil}},
		runs:    []charRun{{17, nil}},
		entries: map[fib.Entry][]byte{fib.EntryDggInfo: dgg},
	}
	word, table := f.build(t)

	doc, _, err := Assemble(word, table, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(doc.Images) != 1 {
		t.Fatalf("got %d images, want 1", len(doc.Images))
	}
	im := doc.Images[0]
	if im.ContentType != "image/png" || !bytes.Equal(im.Data, img) {
		t.Errorf("image = %s %v", im.ContentType, im.Data)
	}
	if im.CP != -1 {
		t.Errorf("CP = %d, want -1 for an unanchored image", im.CP)
	}
}

func TestAssembleShapeAnchors(t *testing.T) {
	spa := appendU32(nil, 7)
	spa = appendU32(spa, 10)
	rec := make([]byte, 26)
	putU32(rec, 0, 1025)
	spa = append(spa, rec...)

	f := &fixture{
		text:    "Shape\x08 here.\r",
		paras:   []paraDef{{13, nil}},
		runs:    []charRun{{13, nil}},
		entries: map[fib.Entry][]byte{fib.EntryPlcfspaMom: spa},
	}
	word, table := f.build(t)

	doc, _, err := Assemble(word, table, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(doc.ShapeAnchors) != 1 {
		t.Fatalf("got %d anchors, want 1", len(doc.ShapeAnchors))
	}
	a := doc.ShapeAnchors[0]
	if a.CP != 7 || a.ShapeID != 1025 {
		t.Errorf("anchor = %+v", a)
	}
}
