package document

import (
	"sort"
	"strings"

	"github.com/tsawler/worddoc/bintable"
	"github.com/tsawler/worddoc/model"
	"github.com/tsawler/worddoc/pieces"
	"github.com/tsawler/worddoc/props"
	"github.com/tsawler/worddoc/sprm"
	"github.com/tsawler/worddoc/stylesheet"
)

// Control characters of the logical text sequence.
const (
	chPictureAnchor = 0x01
	chNoteRef       = 0x02
	chCommentRef    = 0x05
	chCellMark      = 0x07
	chDrawnObject   = 0x08
	chTab           = 0x09
	chLineBreak     = 0x0B
	chPageBreak     = 0x0C
	chParaMark      = 0x0D
	chColumnBreak   = 0x0E
	chFieldBegin    = 0x13
	chFieldSep      = 0x14
	chFieldEnd      = 0x15
	chNBHyphen      = 0x1E
	chSoftHyphen    = 0x1F
)

// para is one built paragraph plus the assembly-only context the table
// assembler needs: whether its terminating mark ends a cell or a row, and
// the opcode records that carry the row's table properties.
type para struct {
	model.Paragraph
	cellEnd bool
	rowEnd  bool
	tap     []sprm.Record
}

// builder turns a CP range of the logical text into paragraphs and runs.
// It reconciles the two coordinate systems: paragraph and character
// property runs live in file offsets, text lives in character positions,
// and the piece table bridges them.
type builder struct {
	text   *pieces.Text
	pieces *pieces.Table
	styles *stylesheet.Sheet
	chpx   *bintable.Locator
	papx   *bintable.Locator

	// lfo maps 1-based list-override indices to list definition IDs.
	lfo []int32
}

// buildRange builds every paragraph of [cpStart, cpLim). Paragraphs end at
// a paragraph mark or a cell/row mark; a trailing unterminated stretch
// still yields a paragraph.
func (b *builder) buildRange(cpStart, cpLim int) []para {
	var out []para
	start := cpStart
	for cp := cpStart; cp < cpLim; cp++ {
		switch b.text.Unit(cp) {
		case chParaMark, chCellMark:
			out = append(out, b.buildParagraph(start, cp+1))
			start = cp + 1
		}
	}
	if start < cpLim {
		out = append(out, b.buildParagraph(start, cpLim))
	}
	return out
}

// buildParagraph builds the paragraph covering [start, lim), where lim-1
// is the CP of the terminating mark when one exists.
func (b *builder) buildParagraph(start, lim int) para {
	markCP := lim - 1
	istd, direct := b.paragraphFormatting(markCP)

	records := concat(b.styles.ParagraphChain(istd), direct)
	pp := props.ResolveParagraph(defaultParagraph(), records)
	pp.List = b.remapList(pp.List)

	p := para{
		Paragraph: model.Paragraph{
			Properties: pp,
			StyleIndex: istd,
			CPStart:    start,
			CPEnd:      lim,
		},
		rowEnd: pp.TableRowEnd,
	}
	p.cellEnd = !p.rowEnd && b.text.Unit(markCP) == chCellMark
	if p.rowEnd {
		p.tap = records
	}

	for _, bound := range b.runBoundaries(start, lim) {
		text := runText(b.text.Slice(bound[0], bound[1]))
		if text == "" {
			continue
		}
		p.Runs = append(p.Runs, model.Run{
			Text:       text,
			Properties: b.CharacterPropertiesAt(bound[0], istd),
		})
	}
	return p
}

// paragraphFormatting locates the paragraph property run owning the
// paragraph mark at markCP and returns the paragraph's style index and
// its direct opcode records.
func (b *builder) paragraphFormatting(markCP int) (int, []sprm.Record) {
	pc := b.pieces.PieceFor(markCP)
	if pc == nil {
		return -1, nil
	}
	run := b.papx.RunAt(pc.CPToFC(markCP))
	if run == nil {
		return -1, nil
	}
	istd := run.Istd
	direct := sprm.Decode(run.Grpprl)
	if si := props.ParagraphStyleIndex(direct); si >= 0 {
		istd = si
	}
	return istd, direct
}

// CharacterPropertiesAt resolves the character properties in effect at cp.
// Resolution order: built-in defaults, the paragraph style's character
// chain, the run's own character style, then the run's direct opcodes.
func (b *builder) CharacterPropertiesAt(cp, paraIstd int) model.CharacterProperties {
	base := props.ResolveCharacter(defaultCharacter(), b.styles.CharacterChain(paraIstd))

	pc := b.pieces.PieceFor(cp)
	if pc == nil {
		return base
	}
	run := b.chpx.RunAt(pc.CPToFC(cp))
	if run == nil {
		return base
	}
	direct := sprm.Decode(run.Grpprl)
	if runIstd := props.CharacterStyleIndex(direct); runIstd >= 0 {
		base = props.ResolveCharacter(base, b.styles.CharacterChain(runIstd))
	}
	return props.ResolveCharacter(base, direct)
}

// remapList rewrites a paragraph's list reference from the override
// index recorded during property resolution to the identifier of the
// list definition it selects. References to missing overrides clear.
func (b *builder) remapList(ref *model.ListRef) *model.ListRef {
	if ref == nil {
		return nil
	}
	ilfo := int(ref.ListID)
	if ilfo < 1 || ilfo > len(b.lfo) {
		return nil
	}
	return &model.ListRef{ListID: b.lfo[ilfo-1], Level: ref.Level}
}

// runBoundaries returns the sorted sub-spans of [start, lim) on which
// character properties are constant: the range split at every piece
// boundary and at every character-run boundary, each run boundary
// converted to a CP through the piece that owns it.
func (b *builder) runBoundaries(start, lim int) [][2]int {
	cut := map[int]struct{}{start: {}, lim: {}}
	for i := range b.pieces.Pieces {
		p := &b.pieces.Pieces[i]
		lo, hi := maxInt(p.CPStart, start), minInt(p.CPEnd, lim)
		if lo >= hi {
			continue
		}
		cut[lo] = struct{}{}
		cut[hi] = struct{}{}

		fcFirst, fcLim := p.CPToFC(lo), p.CPToFC(hi)
		for _, run := range b.chpx.RunsOverlapping(fcFirst, fcLim) {
			for _, fc := range [2]uint32{run.FCStart, run.FCLim} {
				if fc > fcFirst && fc < fcLim {
					cut[p.FCToCP(fc)] = struct{}{}
				}
			}
		}
	}

	points := make([]int, 0, len(cut))
	for cp := range cut {
		points = append(points, cp)
	}
	sort.Ints(points)

	spans := make([][2]int, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		spans = append(spans, [2]int{points[i], points[i+1]})
	}
	return spans
}

// runText filters a raw text span down to its visible content: breaks
// become newlines, the non-breaking hyphen becomes a plain hyphen, and
// the remaining control characters (marks, anchors, field boundaries)
// are dropped. Tabs survive.
func runText(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for _, r := range raw {
		switch r {
		case chLineBreak, chPageBreak, chColumnBreak:
			sb.WriteByte('\n')
		case chNBHyphen:
			sb.WriteByte('-')
		case chTab:
			sb.WriteByte('\t')
		default:
			if r >= 0x20 {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// defaultParagraph returns the paragraph properties in effect before any
// style or direct formatting applies.
func defaultParagraph() model.ParagraphProperties {
	return model.ParagraphProperties{OutlineLevel: 9}
}

// defaultCharacter returns the character properties in effect before any
// style or direct formatting applies. 20 half-points is the format's
// built-in font size.
func defaultCharacter() model.CharacterProperties {
	return model.CharacterProperties{SizeHalfPoints: 20}
}

// concat joins two opcode sequences into a fresh slice so cached style
// chains are never appended into.
func concat(a, b []sprm.Record) []sprm.Record {
	out := make([]sprm.Record, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
