package fib

import (
	"errors"
	"fmt"

	"github.com/tsawler/worddoc/core"
)

// ErrInvalidMagic is returned when the stream does not start with the Word
// binary magic number. This is fatal: nothing else can be located without a
// valid FIB.
var ErrInvalidMagic = errors.New("not a Word binary document stream")

// Magic is the WordDocument stream identification word.
const Magic = 0xA5EC

// minHeaderSize covers the FIB base, the three count-prefixed sub-blocks,
// and an empty offset table.
const minHeaderSize = 0x9A

const (
	offMagic  = 0x00
	offNFib   = 0x02
	offFlags  = 0x0A
	offCcp    = 0x4C // ccpText, then the other counts at 4-byte strides
	offPairs  = 0x9A // fibRgFcLcb: (fc, lcb) pairs of uint32
	pairBytes = 8
)

// flag bits of the field at offFlags.
const (
	flagComplex       = 0x0004
	flagEncrypted     = 0x0100
	flagWhichTableStm = 0x0200
)

// Entry identifies one (offset, length) pair of the FIB table. The values
// are the pair indices of the on-disk table.
type Entry int

const (
	EntryStshf        Entry = 1  // style sheet
	EntryPlcffndRef   Entry = 2  // footnote reference positions
	EntryPlcffndTxt   Entry = 3  // footnote text ranges
	EntryPlcfandRef   Entry = 4  // comment reference positions
	EntryPlcfandTxt   Entry = 5  // comment text ranges
	EntryPlcfsed      Entry = 6  // section table
	EntryPlcfhdd      Entry = 11 // header/footer text ranges
	EntryPlcfbteChpx  Entry = 12 // character property bin table
	EntryPlcfbtePapx  Entry = 13 // paragraph property bin table
	EntrySttbfffn     Entry = 15 // font table
	EntryPlcffldMom   Entry = 16 // main text fields
	EntryPlcffldHdr   Entry = 17 // header/footer fields
	EntrySttbfbkmk    Entry = 21 // bookmark names
	EntryPlcfbkf      Entry = 22 // bookmark starts
	EntryPlcfbkl      Entry = 23 // bookmark ends
	EntrySttbfAssoc   Entry = 32 // associated strings (metadata)
	EntryClx          Entry = 33 // piece table
	EntryPlcfspaMom   Entry = 40 // shape anchors, main text
	EntryPlcfendRef   Entry = 46 // endnote reference positions
	EntryPlcfendTxt   Entry = 47 // endnote text ranges
	EntryDggInfo      Entry = 50 // drawing layer (BLIP store)
	EntryPlcftxbxTxt  Entry = 56 // textbox text ranges
	EntryPlcfLst      Entry = 73 // list definitions
	EntryPlfLfo       Entry = 74 // list format overrides
)

// Location is one (offset, length) pair from the FIB table. Zero Length
// means the structure is absent.
type Location struct {
	Offset uint32
	Length uint32
}

// Present reports whether the structure exists in the document.
func (l Location) Present() bool {
	return l.Length > 0
}

// FIB is the decoded file information block.
type FIB struct {
	Version int // nFib version tag

	// TableStream selects which table stream holds the shared structures:
	// 0 for "0Table", 1 for "1Table".
	TableStream int

	Complex   bool
	Encrypted bool

	// Sub-document character counts, in logical text order.
	CcpText    int
	CcpFtn     int
	CcpHdd     int
	CcpAtn     int
	CcpEdn     int
	CcpTxbx    int
	CcpHdrTxbx int

	pairs []Location
}

// Parse decodes the FIB from the start of the WordDocument stream. An
// invalid magic number or a stream shorter than the minimum header size is
// a fatal error.
func Parse(word []byte) (*FIB, error) {
	if len(word) < minHeaderSize {
		return nil, fmt.Errorf("%w: stream of %d bytes is shorter than the %d-byte header", ErrInvalidMagic, len(word), minHeaderSize)
	}
	r := core.NewReader(word)

	magic, err := r.U16(offMagic)
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: magic 0x%04X", ErrInvalidMagic, magic)
	}

	nFib, _ := r.U16(offNFib)
	flags, _ := r.U16(offFlags)

	f := &FIB{
		Version:   int(nFib),
		Complex:   flags&flagComplex != 0,
		Encrypted: flags&flagEncrypted != 0,
	}
	if flags&flagWhichTableStm != 0 {
		f.TableStream = 1
	}

	ccp := make([]int, 8)
	for i := range ccp {
		v, err := r.I32(offCcp + 4*i)
		if err != nil {
			break
		}
		ccp[i] = int(v)
	}
	// ccp[3] is a retired count (macro text) kept for offset stability.
	f.CcpText, f.CcpFtn, f.CcpHdd = ccp[0], ccp[1], ccp[2]
	f.CcpAtn, f.CcpEdn, f.CcpTxbx, f.CcpHdrTxbx = ccp[4], ccp[5], ccp[6], ccp[7]

	// Read as many pairs as the stream actually holds; old versions carry
	// fewer entries and the missing ones stay absent.
	for off := offPairs; off+pairBytes <= len(word); off += pairBytes {
		fc, _ := r.U32(off)
		lcb, _ := r.U32(off + 4)
		f.pairs = append(f.pairs, Location{Offset: fc, Length: lcb})
	}

	return f, nil
}

// Location returns the (offset, length) pair for an entry. Entries beyond
// the stored table are absent.
func (f *FIB) Location(e Entry) Location {
	if int(e) < 0 || int(e) >= len(f.pairs) {
		return Location{}
	}
	return f.pairs[int(e)]
}

// TotalCcp returns the total logical character count across all
// sub-documents.
func (f *FIB) TotalCcp() int {
	return f.CcpText + f.CcpFtn + f.CcpHdd + f.CcpAtn + f.CcpEdn + f.CcpTxbx + f.CcpHdrTxbx
}

// SubDocStart returns the starting CP of each sub-document in the logical
// text sequence, following the fixed order: main text, footnotes,
// headers/footers, comments, endnotes, textboxes, header textboxes.
func (f *FIB) SubDocStart() (ftn, hdd, atn, edn, txbx, hdrTxbx int) {
	ftn = f.CcpText
	hdd = ftn + f.CcpFtn
	atn = hdd + f.CcpHdd
	edn = atn + f.CcpAtn
	txbx = edn + f.CcpEdn
	hdrTxbx = txbx + f.CcpTxbx
	return
}
