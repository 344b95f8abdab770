package sprm

// Property group codes: the sgc bits of an opcode identify which property
// system the opcode belongs to.
const (
	GroupParagraph = 1
	GroupCharacter = 2
	GroupPicture   = 3
	GroupSection   = 4
	GroupTable     = 5
)

// Record is a single decoded opcode with its operand bytes. Ordering within
// a grpprl is significant: later records override earlier ones for the same
// semantic field.
type Record struct {
	Opcode  uint16
	Operand []byte
}

// Group returns the property group code of the record's opcode.
func (r Record) Group() int {
	return int(r.Opcode >> 10 & 0x7)
}

// U8 returns the first operand byte, or 0 when the operand is empty.
func (r Record) U8() uint8 {
	if len(r.Operand) < 1 {
		return 0
	}
	return r.Operand[0]
}

// U16 returns the operand as a little-endian uint16, or 0 when too short.
func (r Record) U16() uint16 {
	if len(r.Operand) < 2 {
		return 0
	}
	return uint16(r.Operand[0]) | uint16(r.Operand[1])<<8
}

// I16 returns the operand as a little-endian int16.
func (r Record) I16() int16 {
	return int16(r.U16())
}

// U32 returns the operand as a little-endian uint32, or 0 when too short.
func (r Record) U32() uint32 {
	if len(r.Operand) < 4 {
		return 0
	}
	return uint32(r.Operand[0]) | uint32(r.Operand[1])<<8 |
		uint32(r.Operand[2])<<16 | uint32(r.Operand[3])<<24
}

// I32 returns the operand as a little-endian int32.
func (r Record) I32() int32 {
	return int32(r.U32())
}

// Bool interprets a 1-byte operand as a flag.
func (r Record) Bool() bool {
	return r.U8() != 0
}

// opcodes with a variable-length operand whose length prefix is two bytes
// instead of one. Table definitions can exceed 255 bytes.
func wideLengthPrefix(opcode uint16) bool {
	switch opcode {
	case 0xD608, 0xD606: // table definition opcodes
		return true
	}
	return false
}

// operandLength returns the fixed operand length for an opcode's size
// class, or -1 for the variable-length class.
func operandLength(opcode uint16) int {
	switch opcode >> 13 & 0x7 {
	case 0, 1:
		return 1
	case 2, 4, 5:
		return 2
	case 3:
		return 4
	case 7:
		return 3
	default: // 6: variable, length prefix follows the opcode
		return -1
	}
}

// Decode parses a grpprl into its ordered sequence of records. A malformed
// trailing partial record is dropped; everything decoded before it is
// returned.
func Decode(grpprl []byte) []Record {
	var records []Record
	i := 0
	for i+2 <= len(grpprl) {
		opcode := uint16(grpprl[i]) | uint16(grpprl[i+1])<<8
		i += 2

		n := operandLength(opcode)
		if n < 0 {
			if wideLengthPrefix(opcode) {
				if i+2 > len(grpprl) {
					break
				}
				n = int(uint16(grpprl[i]) | uint16(grpprl[i+1])<<8)
				i += 2
			} else {
				if i+1 > len(grpprl) {
					break
				}
				n = int(grpprl[i])
				i++
			}
		}
		if i+n > len(grpprl) {
			break
		}
		records = append(records, Record{Opcode: opcode, Operand: grpprl[i : i+n]})
		i += n
	}
	return records
}
