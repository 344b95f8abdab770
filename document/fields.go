package document

import (
	"strings"

	"github.com/tsawler/worddoc/core"
	"github.com/tsawler/worddoc/fib"
	"github.com/tsawler/worddoc/model"
	"github.com/tsawler/worddoc/plc"
)

// Field boundary kinds, stored in the low five bits of a field record.
const (
	fldSize  = 2
	fldBegin = 19
	fldSep   = 20
	fldEnd   = 21
)

// fields decodes the main-text fields from their boundary position list.
// Each field is a begin mark, an optional separator, and an end mark; the
// instruction text sits between begin and separator, the visible result
// between separator and end. Unterminated fields are dropped.
func (d *decoder) fields() ([]model.Field, []model.FormField) {
	p := d.parsePlc(fib.EntryPlcffldMom, fldSize, "fields")
	if p == nil {
		return nil, nil
	}

	var fields []model.Field
	var forms []model.FormField
	begin, sep := -1, -1
	for i := 0; i < p.Count(); i++ {
		if len(p.Data[i]) < 1 {
			continue
		}
		cp := p.CPs[i]
		switch p.Data[i][0] & 0x1F {
		case fldBegin:
			begin, sep = cp, -1
		case fldSep:
			if begin >= 0 {
				sep = cp
			}
		case fldEnd:
			if begin < 0 {
				continue
			}
			f := d.buildField(begin, sep, cp)
			fields = append(fields, f)
			if isFormType(f.Type) {
				forms = append(forms, model.FormField{Type: f.Type, CP: f.CPStart})
			}
			begin, sep = -1, -1
		}
	}
	return fields, forms
}

// buildField assembles one field from its boundary CPs. sep is -1 when
// the field has no separator mark.
func (d *decoder) buildField(begin, sep, end int) model.Field {
	instrEnd := end
	result := ""
	if sep >= 0 {
		instrEnd = sep
		result = runText(d.b.text.Slice(sep+1, end))
	}
	f := model.Field{
		CPStart:     begin,
		CPEnd:       end + 1,
		Instruction: strings.TrimSpace(runText(d.b.text.Slice(begin+1, instrEnd))),
		Result:      result,
	}
	f.Type, f.URL = classifyField(f.Instruction)
	return f
}

// classifyField inspects a field instruction and returns its type, plus
// the target URL for hyperlink fields.
func classifyField(instruction string) (model.FieldType, string) {
	keyword := instruction
	if i := strings.IndexAny(keyword, " \t"); i >= 0 {
		keyword = keyword[:i]
	}
	switch strings.ToUpper(keyword) {
	case "HYPERLINK":
		return model.FieldHyperlink, hyperlinkTarget(instruction[len(keyword):])
	case "FORMTEXT":
		return model.FieldFormText, ""
	case "FORMCHECKBOX":
		return model.FieldFormCheckbox, ""
	case "FORMDROPDOWN":
		return model.FieldFormDropdown, ""
	}
	return model.FieldUnknown, ""
}

// hyperlinkTarget extracts the target from a hyperlink instruction tail:
// the first quoted string, or the first bare token that is not a switch.
func hyperlinkTarget(tail string) string {
	fields := splitInstruction(tail)
	for i := 0; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "\\") {
			// switches like \l take the next token as their argument
			i++
			continue
		}
		return fields[i]
	}
	return ""
}

// splitInstruction tokenizes an instruction on whitespace, keeping quoted
// strings together and stripping their quotes.
func splitInstruction(s string) []string {
	var out []string
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) {
			break
		}
		if s[i] == '"' {
			j := i + 1
			for j < len(s) && s[j] != '"' {
				j++
			}
			out = append(out, s[i+1:j])
			i = j + 1
			continue
		}
		j := i
		for j < len(s) && s[j] != ' ' && s[j] != '\t' {
			j++
		}
		out = append(out, s[i:j])
		i = j
	}
	return out
}

// isFormType reports whether a field type is a fill-in form element.
func isFormType(t model.FieldType) bool {
	switch t {
	case model.FieldFormText, model.FieldFormCheckbox, model.FieldFormDropdown:
		return true
	}
	return false
}

// bkfSize is the byte size of one bookmark-start record; its first two
// bytes index the matching entry of the bookmark-end list.
const bkfSize = 4

// bookmarks decodes the named CP ranges of the main text. The start list
// and the name table are parallel; each start record points into the end
// list.
func (d *decoder) bookmarks() []model.Bookmark {
	starts := d.parsePlc(fib.EntryPlcfbkf, bkfSize, "bookmarks")
	ends := d.parsePlc(fib.EntryPlcfbkl, 0, "bookmarks")
	names := d.bookmarkNames()
	if starts == nil || ends == nil {
		return nil
	}

	n := minInt(starts.Count(), len(names))
	out := make([]model.Bookmark, 0, n)
	for i := 0; i < n; i++ {
		r := core.NewReader(starts.Data[i])
		ibkl, err := r.U16(0)
		if err != nil || int(ibkl) >= len(ends.CPs) {
			continue
		}
		out = append(out, model.Bookmark{
			Name:  names[i],
			Start: starts.CPs[i],
			End:   ends.CPs[ibkl],
		})
	}
	return out
}

// bookmarkNames decodes the bookmark name table.
func (d *decoder) bookmarkNames() []string {
	raw := d.slice(fib.EntrySttbfbkmk, "bookmarks")
	if raw == nil {
		return nil
	}
	names, err := plc.ParseStrings(raw)
	if err != nil {
		d.warnf("bookmarks", "%v", err)
		return nil
	}
	return names
}
