// Package format provides stream format detection for the worddoc library.
package format

// Format represents a recognized input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// CompoundFile indicates an OLE compound file container. The container
	// must be split into streams by the caller before decoding.
	CompoundFile
	// WordStream indicates an already-extracted WordDocument stream.
	WordStream
	// ZIPArchive indicates a ZIP-based format such as DOCX, which this
	// library does not decode.
	ZIPArchive
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case CompoundFile:
		return "CompoundFile"
	case WordStream:
		return "WordStream"
	case ZIPArchive:
		return "ZIPArchive"
	default:
		return "Unknown"
	}
}

// compound file signature: D0 CF 11 E0 A1 B1 1A E1
var cfbMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Detect determines what kind of buffer the caller holds from its magic
// bytes. It distinguishes an intact compound-file container from an
// already-extracted WordDocument stream.
func Detect(data []byte) Format {
	if len(data) >= 8 {
		match := true
		for i, b := range cfbMagic {
			if data[i] != b {
				match = false
				break
			}
		}
		if match {
			return CompoundFile
		}
	}

	if len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return ZIPArchive
	}

	// WordDocument stream magic: 0xA5EC little-endian.
	if len(data) >= 2 && data[0] == 0xEC && data[1] == 0xA5 {
		return WordStream
	}

	return Unknown
}

// Version classifies the format version tag from a WordDocument stream
// header. Returns 0 if the buffer is too short.
func Version(data []byte) int {
	if len(data) < 4 {
		return 0
	}
	return int(uint16(data[2]) | uint16(data[3])<<8)
}
