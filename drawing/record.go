package drawing

import (
	"github.com/tsawler/worddoc/core"
)

// record types of interest.
const (
	typeDggContainer = 0xF000
	typeBlipStore    = 0xF001
	typeStoreEntry   = 0xF007

	typeBlipEMF   = 0xF01A
	typeBlipWMF   = 0xF01B
	typeBlipPICT  = 0xF01C
	typeBlipJPEG  = 0xF01D
	typeBlipPNG   = 0xF01E
	typeBlipDIB   = 0xF01F
	typeBlipTIFF  = 0xF029
	typeBlipJPEG2 = 0xF02A
)

// Record is one node of the drawing-record tree.
type Record struct {
	Ver      int
	Instance int
	Type     uint16
	Data     []byte
}

// IsContainer reports whether the record's payload is a sequence of child
// records.
func (r *Record) IsContainer() bool {
	return r.Ver == 0xF
}

// Children decodes the payload of a container record.
func (r *Record) Children() []Record {
	if !r.IsContainer() {
		return nil
	}
	return ParseRecords(r.Data)
}

// ParseRecords decodes a flat sequence of records. A truncated trailing
// record is dropped.
func ParseRecords(data []byte) []Record {
	r := core.NewReader(data)
	var records []Record
	off := 0
	for off+8 <= len(data) {
		verInst, _ := r.U16(off)
		recType, _ := r.U16(off + 2)
		length, _ := r.U32(off + 4)
		body, err := r.Bytes(off+8, int(length))
		if err != nil {
			break
		}
		records = append(records, Record{
			Ver:      int(verInst & 0xF),
			Instance: int(verInst >> 4),
			Type:     recType,
			Data:     body,
		})
		off += 8 + int(length)
	}
	return records
}

// findFirst searches a record sequence depth-first for the first record of
// the wanted type.
func findFirst(records []Record, wanted uint16) *Record {
	for i := range records {
		if records[i].Type == wanted {
			return &records[i]
		}
		if records[i].IsContainer() {
			if found := findFirst(records[i].Children(), wanted); found != nil {
				return found
			}
		}
	}
	return nil
}

// isBlipType reports whether a record type is an image payload record.
func isBlipType(t uint16) bool {
	switch t {
	case typeBlipEMF, typeBlipWMF, typeBlipPICT, typeBlipJPEG, typeBlipPNG, typeBlipDIB, typeBlipTIFF, typeBlipJPEG2:
		return true
	}
	return false
}

// findFirstBlip searches a record sequence depth-first for the first image
// payload record.
func findFirstBlip(records []Record) *Record {
	for i := range records {
		if isBlipType(records[i].Type) {
			return &records[i]
		}
		if records[i].IsContainer() {
			if found := findFirstBlip(records[i].Children()); found != nil {
				return found
			}
		}
	}
	return nil
}
