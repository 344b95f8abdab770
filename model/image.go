package model

// Image is an embedded image recovered from the drawing layer, anchored
// inline in the main text at CP.
type Image struct {
	ContentType string // MIME type, e.g. "image/jpeg"
	Data        []byte

	// Pixel dimensions sniffed from the image bytes; zero when the format
	// could not be decoded.
	Width  int
	Height int

	// Stated display dimensions from the inline picture descriptor.
	DisplayWidthTwips  int
	DisplayHeightTwips int

	CP int
}
