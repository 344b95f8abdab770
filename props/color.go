package props

import "github.com/tsawler/worddoc/model"

// ico palette of the legacy format. Index 0 is the automatic color.
var palette = []model.Color{
	{},                 // 0: auto, never returned directly
	{R: 0x00, G: 0x00, B: 0x00}, // black
	{R: 0x00, G: 0x00, B: 0xFF}, // blue
	{R: 0x00, G: 0xFF, B: 0xFF}, // cyan
	{R: 0x00, G: 0xFF, B: 0x00}, // green
	{R: 0xFF, G: 0x00, B: 0xFF}, // magenta
	{R: 0xFF, G: 0x00, B: 0x00}, // red
	{R: 0xFF, G: 0xFF, B: 0x00}, // yellow
	{R: 0xFF, G: 0xFF, B: 0xFF}, // white
	{R: 0x00, G: 0x00, B: 0x80}, // dark blue
	{R: 0x00, G: 0x80, B: 0x80}, // dark cyan
	{R: 0x00, G: 0x80, B: 0x00}, // dark green
	{R: 0x80, G: 0x00, B: 0x80}, // dark magenta
	{R: 0x80, G: 0x00, B: 0x00}, // dark red
	{R: 0x80, G: 0x80, B: 0x00}, // dark yellow
	{R: 0x80, G: 0x80, B: 0x80}, // dark gray
	{R: 0xC0, G: 0xC0, B: 0xC0}, // light gray
}

// paletteColor resolves a legacy palette index. Index 0 (automatic) and
// out-of-range indices resolve to no explicit color.
func paletteColor(ico int) *model.Color {
	if ico <= 0 || ico >= len(palette) {
		return nil
	}
	c := palette[ico]
	return &c
}

// directColor resolves a 4-byte direct color operand: red, green, blue,
// then a sentinel byte. An all-0xFF operand or the 0xFF sentinel means
// automatic; an all-zero triplet with zero sentinel likewise resolves to no
// explicit color rather than black.
func directColor(operand []byte) *model.Color {
	if len(operand) < 4 {
		return nil
	}
	if operand[3] == 0xFF {
		return nil
	}
	if operand[0] == 0 && operand[1] == 0 && operand[2] == 0 && operand[3] == 0 {
		return nil
	}
	return &model.Color{R: operand[0], G: operand[1], B: operand[2]}
}

// legacyBorder decodes a 4-byte border descriptor: width in eighths of a
// point, style code, palette color index, spacing. Zero width with zero
// style code means no border.
func legacyBorder(operand []byte) *model.Border {
	if len(operand) < 4 {
		return nil
	}
	width, style := int(operand[0]), int(operand[1])
	if width == 0 && style == 0 {
		return nil
	}
	return &model.Border{
		Style:        style,
		WidthEighths: width,
		Color:        paletteColor(int(operand[2]) & 0x1F),
	}
}

// modernBorder decodes an 8-byte border descriptor: 4-byte direct color,
// width, style code, spacing, flags.
func modernBorder(operand []byte) *model.Border {
	if len(operand) < 8 {
		return nil
	}
	width, style := int(operand[4]), int(operand[5])
	if width == 0 && style == 0 {
		return nil
	}
	return &model.Border{
		Style:        style,
		WidthEighths: width,
		Color:        directColor(operand[:4]),
	}
}

// legacyShading decodes a 2-byte shading descriptor: foreground index (5
// bits), background index (5 bits), pattern (6 bits). Only the background
// fill is kept.
func legacyShading(v uint16) *model.Shading {
	back := int(v >> 5 & 0x1F)
	if fill := paletteColor(back); fill != nil {
		return &model.Shading{Fill: fill}
	}
	return nil
}

// modernShading decodes a 10-byte shading descriptor: two 4-byte direct
// colors (foreground, background) and a 2-byte pattern.
func modernShading(operand []byte) *model.Shading {
	if len(operand) < 10 {
		return nil
	}
	if fill := directColor(operand[4:8]); fill != nil {
		return &model.Shading{Fill: fill}
	}
	return nil
}
