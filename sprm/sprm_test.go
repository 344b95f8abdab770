package sprm

import (
	"bytes"
	"testing"
)

func TestDecodeFixedSizeClasses(t *testing.T) {
	grpprl := []byte{
		0x35, 0x08, 0x01, // size class 0: one byte
		0x43, 0x4A, 0x18, 0x00, // size class 2: two bytes
		0x03, 0x6A, 0x78, 0x56, 0x34, 0x12, // size class 3: four bytes
	}
	records := Decode(grpprl)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].Opcode != 0x0835 || records[0].U8() != 1 {
		t.Errorf("record 0 = %04X %v", records[0].Opcode, records[0].Operand)
	}
	if records[1].Opcode != 0x4A43 || records[1].U16() != 0x18 {
		t.Errorf("record 1 = %04X %v", records[1].Opcode, records[1].Operand)
	}
	if records[2].Opcode != 0x6A03 || records[2].U32() != 0x12345678 {
		t.Errorf("record 2 = %04X %v", records[2].Opcode, records[2].Operand)
	}
}

func TestDecodeThreeByteClass(t *testing.T) {
	grpprl := []byte{0x24, 0xE4, 0xAA, 0xBB, 0xCC}
	records := Decode(grpprl)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if len(records[0].Operand) != 3 {
		t.Errorf("operand length = %d, want 3", len(records[0].Operand))
	}
}

func TestDecodeVariableLength(t *testing.T) {
	grpprl := []byte{0x0D, 0xC6, 0x03, 0x01, 0x02, 0x03}
	records := Decode(grpprl)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if !bytes.Equal(records[0].Operand, []byte{1, 2, 3}) {
		t.Errorf("operand = %v", records[0].Operand)
	}
}

func TestDecodeWideLengthPrefix(t *testing.T) {
	// table definition opcode uses a two-byte length prefix
	grpprl := []byte{0x08, 0xD6, 0x04, 0x00, 0xAA, 0xBB, 0xCC, 0xDD}
	records := Decode(grpprl)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Opcode != 0xD608 || len(records[0].Operand) != 4 {
		t.Errorf("record = %04X operand %v", records[0].Opcode, records[0].Operand)
	}
}

func TestDecodeDropsTruncatedTail(t *testing.T) {
	grpprl := []byte{
		0x35, 0x08, 0x01, // complete
		0x03, 0x6A, 0x78, 0x56, // four-byte operand cut short
	}
	records := Decode(grpprl)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Opcode != 0x0835 {
		t.Errorf("kept record = %04X", records[0].Opcode)
	}
}

func TestDecodeEmpty(t *testing.T) {
	if records := Decode(nil); records != nil {
		t.Errorf("Decode(nil) = %v, want nil", records)
	}
	if records := Decode([]byte{0x35}); records != nil {
		t.Errorf("lone byte decoded to %v", records)
	}
}

func TestGroup(t *testing.T) {
	tests := []struct {
		opcode uint16
		group  int
	}{
		{0x0835, GroupCharacter},
		{0x2403, GroupParagraph},
		{0xD608, GroupTable},
		{0x3003, GroupSection},
	}
	for _, tt := range tests {
		if got := (Record{Opcode: tt.opcode}).Group(); got != tt.group {
			t.Errorf("Group(%04X) = %d, want %d", tt.opcode, got, tt.group)
		}
	}
}

func TestOperandAccessorsShortOperand(t *testing.T) {
	r := Record{Opcode: 0x4A43, Operand: []byte{0x05}}
	if r.U16() != 0 {
		t.Error("U16 of short operand should be 0")
	}
	if r.U8() != 5 {
		t.Error("U8 should read the single byte")
	}
	if (Record{}).Bool() {
		t.Error("empty operand Bool should be false")
	}
}
