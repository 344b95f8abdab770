package document

import (
	"fmt"

	"github.com/tsawler/worddoc/core"
	"github.com/tsawler/worddoc/model"
	"github.com/tsawler/worddoc/plc"
	"github.com/tsawler/worddoc/props"
	"github.com/tsawler/worddoc/sprm"
)

// sedSize is the byte size of one section descriptor; the section
// property offset sits at bytes 2-5.
const (
	sedSize     = 12
	sedFcOffset = 2
)

// buildSections partitions the built body paragraphs by the section table
// and resolves each section's properties from its opcode block in the
// WordDocument stream. A nil section table yields a single default
// section holding everything; the final section absorbs any paragraphs
// past the table's last boundary.
func buildSections(word []byte, sed *plc.PLC, paras []para) []model.Section {
	if sed == nil || sed.Count() == 0 {
		return []model.Section{makeSection(props.DefaultSection(), paras)}
	}

	sections := make([]model.Section, 0, sed.Count())
	next := 0
	for i := 0; i < sed.Count(); i++ {
		_, cpLim := sed.Range(i)
		first := next
		for next < len(paras) && (paras[next].CPStart < cpLim || i == sed.Count()-1) {
			next++
		}
		sections = append(sections, makeSection(sectionProperties(word, sed.Data[i]), paras[first:next]))
	}
	return sections
}

// makeSection assembles one section from its slice of built paragraphs.
func makeSection(sp model.SectionProperties, paras []para) model.Section {
	sec := model.Section{
		Properties: sp,
		Tables:     sectionTables(paras),
	}
	if len(paras) > 0 {
		sec.Paragraphs = make([]model.Paragraph, len(paras))
		for i := range paras {
			sec.Paragraphs[i] = paras[i].Paragraph
		}
	}
	return sec
}

// sectionProperties resolves one section's properties from its descriptor.
// The descriptor points into the WordDocument stream at a length-prefixed
// opcode block; an absent or unreadable block keeps the defaults.
func sectionProperties(word []byte, descriptor []byte) model.SectionProperties {
	base := props.DefaultSection()
	records, err := sectionOpcodes(word, descriptor)
	if err != nil {
		return base
	}
	return props.ResolveSection(base, records)
}

// sectionOpcodes reads the opcode block a section descriptor points at.
func sectionOpcodes(word []byte, descriptor []byte) ([]sprm.Record, error) {
	if len(descriptor) < sedFcOffset+4 {
		return nil, fmt.Errorf("section descriptor of %d bytes is too short", len(descriptor))
	}
	r := core.NewReader(descriptor)
	fc, err := r.U32(sedFcOffset)
	if err != nil {
		return nil, err
	}
	if fc == 0xFFFFFFFF {
		return nil, fmt.Errorf("section has no property block")
	}

	w := core.NewReader(word)
	cb, err := w.U16(int(fc))
	if err != nil {
		return nil, fmt.Errorf("reading section property block size: %w", err)
	}
	grpprl, err := w.Bytes(int(fc)+2, int(cb))
	if err != nil {
		return nil, fmt.Errorf("reading section property block: %w", err)
	}
	return sprm.Decode(grpprl), nil
}
