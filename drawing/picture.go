package drawing

import (
	"fmt"

	"github.com/tsawler/worddoc/core"
)

// Picture is an inline picture resolved from a text anchor: the image
// itself plus the stated display dimensions from the picture descriptor.
type Picture struct {
	Blip
	DisplayWidthTwips  int
	DisplayHeightTwips int
}

// picture descriptor offsets, relative to the descriptor start.
const (
	picfLcb      = 0  // u32: total descriptor + data length
	picfCbHeader = 4  // u16: descriptor header length
	picfDxaGoal  = 28 // i16: display width in twips
	picfDyaGoal  = 30 // i16: display height in twips
	picfMx       = 32 // u16: horizontal scaling in 0.1%
	picfMy       = 34 // u16: vertical scaling in 0.1%
)

// ParsePicture decodes the inline picture descriptor at off in the given
// stream and extracts its image. The descriptor's payload holds drawing
// records for shape-based pictures; the first image record found wins.
func ParsePicture(stream []byte, off int) (*Picture, error) {
	r := core.NewReader(stream)
	lcb, err := r.U32(off + picfLcb)
	if err != nil {
		return nil, fmt.Errorf("reading picture descriptor length: %w", err)
	}
	cbHeader, err := r.U16(off + picfCbHeader)
	if err != nil {
		return nil, err
	}
	if int(cbHeader) < picfMy+2 || uint32(cbHeader) > lcb {
		return nil, fmt.Errorf("picture descriptor header of %d bytes is inconsistent with total %d", cbHeader, lcb)
	}
	payload, err := r.Bytes(off+int(cbHeader), int(lcb)-int(cbHeader))
	if err != nil {
		return nil, fmt.Errorf("reading picture payload: %w", err)
	}

	dxaGoal, _ := r.I16(off + picfDxaGoal)
	dyaGoal, _ := r.I16(off + picfDyaGoal)
	mx, _ := r.U16(off + picfMx)
	my, _ := r.U16(off + picfMy)

	pic := &Picture{
		DisplayWidthTwips:  scaleTwips(int(dxaGoal), int(mx)),
		DisplayHeightTwips: scaleTwips(int(dyaGoal), int(my)),
	}

	rec := findFirstBlip(ParseRecords(payload))
	if rec == nil {
		return nil, fmt.Errorf("picture payload holds no image record")
	}
	b := decodeBlip(rec)
	if b == nil {
		return nil, fmt.Errorf("picture image record of type 0x%04X could not be decoded", rec.Type)
	}
	pic.Blip = *b
	return pic, nil
}

// scaleTwips applies the descriptor's 0.1% scaling factor to a goal
// dimension. A zero factor means unscaled.
func scaleTwips(goal, factor int) int {
	if factor == 0 {
		return goal
	}
	return goal * factor / 1000
}
