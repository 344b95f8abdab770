package document

import (
	"github.com/tsawler/worddoc/core"
	"github.com/tsawler/worddoc/fib"
	"github.com/tsawler/worddoc/model"
)

// font record body offsets, relative to the byte after the length prefix.
const (
	ffnFlags   = 0  // family in bits 4-6
	ffnWeight  = 1  // i16
	ffnCharset = 3  // u8
	ffnAltIdx  = 4  // u8: character index of the alternate name
	ffnName    = 39 // UTF-16, null-terminated
)

// fonts decodes the font table. Each entry is a length-prefixed record:
// fixed descriptor bytes, then the null-terminated UTF-16 font name, with
// the alternate name following at the record's stated character index.
func (d *decoder) fonts() []model.Font {
	raw := d.slice(fib.EntrySttbfffn, "font_table")
	if raw == nil {
		return nil
	}
	r := core.NewReader(raw)

	count, err := r.U16(0)
	if err != nil {
		d.warnf("font_table", "%v", err)
		return nil
	}

	fonts := make([]model.Font, 0, count)
	off := 4 // count and extra-bytes words
	for i := 0; i < int(count); i++ {
		cb, err := r.U8(off)
		if err != nil {
			d.warnf("font_table", "entry %d: %v", i, err)
			break
		}
		body, err := r.Bytes(off+1, int(cb))
		if err != nil {
			d.warnf("font_table", "entry %d: %v", i, err)
			break
		}
		fonts = append(fonts, decodeFont(body))
		off += 1 + int(cb)
	}
	return fonts
}

// decodeFont decodes one font record body.
func decodeFont(body []byte) model.Font {
	var f model.Font
	if len(body) <= ffnName {
		return f
	}
	f.Family = fontFamily(int(body[ffnFlags]) >> 4 & 0x7)
	f.Charset = int(body[ffnCharset])

	names := body[ffnName:]
	f.Name = utf16Until(names, 0)
	if alt := int(body[ffnAltIdx]); alt > 0 {
		f.AltName = utf16Until(names, alt)
	}
	return f
}

// utf16Until decodes a null-terminated UTF-16 string starting at the
// given character index of a raw buffer.
func utf16Until(raw []byte, chStart int) string {
	r := core.NewReader(raw)
	n := 0
	for {
		u, err := r.U16((chStart + n) * 2)
		if err != nil || u == 0 {
			break
		}
		n++
	}
	s, _ := r.UTF16String(chStart*2, n)
	return s
}

// fontFamily maps the record's family code to the model enum.
func fontFamily(code int) model.FontFamily {
	switch code {
	case 1:
		return model.FamilyRoman
	case 2:
		return model.FamilySwiss
	case 3:
		return model.FamilyModern
	case 4:
		return model.FamilyScript
	case 5:
		return model.FamilyDecorative
	}
	return model.FamilyUnknown
}
