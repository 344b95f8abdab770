package drawing

import (
	"bytes"
	"image"

	// registered for dimension sniffing of embedded images
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/tsawler/worddoc/core"
)

// Blip is one recovered embedded image.
type Blip struct {
	ContentType string
	Data        []byte

	// Pixel dimensions sniffed from the image bytes; zero when the bytes
	// could not be decoded (metafiles, raw device-independent bitmaps).
	Width  int
	Height int
}

// blipContentType maps an image record type to its MIME type.
func blipContentType(t uint16) string {
	switch t {
	case typeBlipEMF:
		return "image/x-emf"
	case typeBlipWMF:
		return "image/x-wmf"
	case typeBlipPICT:
		return "image/pict"
	case typeBlipJPEG, typeBlipJPEG2:
		return "image/jpeg"
	case typeBlipPNG:
		return "image/png"
	case typeBlipDIB:
		return "image/bmp"
	case typeBlipTIFF:
		return "image/tiff"
	}
	return ""
}

// blipHeaderSize returns the byte count between an image record's payload
// start and the raw image bytes: one 16-byte identity hash, a second one
// when the record's instance field is odd, then a fixed tail — a 34-byte
// metafile header for the metafile types, a single tag byte for the bitmap
// types.
func blipHeaderSize(t uint16, instance int) int {
	size := 16
	if instance%2 == 1 {
		size += 16
	}
	switch t {
	case typeBlipEMF, typeBlipWMF, typeBlipPICT:
		size += 34
	default:
		size++
	}
	return size
}

// decodeBlip extracts the image bytes from an image payload record.
func decodeBlip(rec *Record) *Blip {
	contentType := blipContentType(rec.Type)
	if contentType == "" {
		return nil
	}
	skip := blipHeaderSize(rec.Type, rec.Instance)
	if skip > len(rec.Data) {
		return nil
	}
	b := &Blip{ContentType: contentType, Data: rec.Data[skip:]}
	b.Width, b.Height = sniffDimensions(b.Data)
	return b
}

// sniffDimensions decodes just the image config to recover pixel
// dimensions. Unknown or non-raster formats yield zeros.
func sniffDimensions(data []byte) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

// ExtractBlips walks the drawing-layer data for the whole document and
// returns every image in the BLIP store, in store order. Store entries
// either embed their image record directly or defer it to an offset in the
// delay stream (the Data stream, with the WordDocument stream as fallback).
func ExtractBlips(dggInfo, delay []byte) []Blip {
	store := findFirst(ParseRecords(dggInfo), typeBlipStore)
	if store == nil {
		return nil
	}

	var blips []Blip
	for _, child := range store.Children() {
		var rec *Record
		switch {
		case child.Type == typeStoreEntry:
			rec = storeEntryBlip(&child, delay)
		case isBlipType(child.Type):
			rec = &child
		}
		if rec == nil {
			continue
		}
		if b := decodeBlip(rec); b != nil {
			blips = append(blips, *b)
		}
	}
	return blips
}

// storeEntryBlip resolves a 36-byte store-entry header to its image
// record: embedded after the header and optional name, or parked in the
// delay stream at the stored offset.
func storeEntryBlip(entry *Record, delay []byte) *Record {
	const headerSize = 36
	if len(entry.Data) < headerSize {
		return nil
	}
	r := core.NewReader(entry.Data)
	foDelay, _ := r.U32(28)
	cbName, _ := r.U8(33)

	embedded := entry.Data[headerSize+int(cbName):]
	if recs := ParseRecords(embedded); len(recs) > 0 && isBlipType(recs[0].Type) {
		return &recs[0]
	}

	if int(foDelay) < len(delay) {
		if recs := ParseRecords(delay[foDelay:]); len(recs) > 0 && isBlipType(recs[0].Type) {
			return &recs[0]
		}
	}
	return nil
}
