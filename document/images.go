package document

import (
	"github.com/tsawler/worddoc/core"
	"github.com/tsawler/worddoc/drawing"
	"github.com/tsawler/worddoc/fib"
	"github.com/tsawler/worddoc/model"
)

// images recovers the document's embedded images. Inline pictures are
// found by scanning the main text for picture anchors whose runs carry a
// picture-location offset into the data stream. When the text anchors
// nothing but the drawing layer still holds a BLIP store, the stored
// images are returned unanchored.
func (d *decoder) images() []model.Image {
	var out []model.Image
	for cp := 0; cp < d.fib.CcpText; cp++ {
		if d.b.text.Unit(cp) != chPictureAnchor {
			continue
		}
		chp := d.b.CharacterPropertiesAt(cp, -1)
		if !chp.Special || chp.PicOffset <= 0 {
			continue
		}
		pic, err := drawing.ParsePicture(d.pictureStream(), chp.PicOffset)
		if err != nil {
			d.warnf("images", "picture at position %d: %v", cp, err)
			continue
		}
		out = append(out, model.Image{
			ContentType:        pic.ContentType,
			Data:               pic.Data,
			Width:              pic.Width,
			Height:             pic.Height,
			DisplayWidthTwips:  pic.DisplayWidthTwips,
			DisplayHeightTwips: pic.DisplayHeightTwips,
			CP:                 cp,
		})
	}

	if len(out) == 0 {
		out = d.storedImages()
	}
	return out
}

// pictureStream returns the stream that picture offsets address: the
// data stream when present, the WordDocument stream otherwise.
func (d *decoder) pictureStream() []byte {
	if len(d.data) > 0 {
		return d.data
	}
	return d.word
}

// storedImages returns the BLIP store contents with no text anchor.
func (d *decoder) storedImages() []model.Image {
	dgg := d.slice(fib.EntryDggInfo, "images")
	if dgg == nil {
		return nil
	}
	blips := drawing.ExtractBlips(dgg, d.pictureStream())
	out := make([]model.Image, 0, len(blips))
	for _, b := range blips {
		out = append(out, model.Image{
			ContentType: b.ContentType,
			Data:        b.Data,
			Width:       b.Width,
			Height:      b.Height,
			CP:          -1,
		})
	}
	return out
}

// spaSize is the byte size of one shape anchor record; the shape
// identifier sits in its first four bytes.
const spaSize = 26

// shapeAnchors decodes the floating-shape anchor positions of the main
// text.
func (d *decoder) shapeAnchors() []model.ShapeAnchor {
	p := d.parsePlc(fib.EntryPlcfspaMom, spaSize, "shapes")
	if p == nil {
		return nil
	}
	out := make([]model.ShapeAnchor, 0, p.Count())
	for i := 0; i < p.Count(); i++ {
		r := core.NewReader(p.Data[i])
		sid, err := r.I32(0)
		if err != nil {
			continue
		}
		out = append(out, model.ShapeAnchor{CP: p.CPs[i], ShapeID: sid})
	}
	return out
}
