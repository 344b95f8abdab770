// Package sprm decodes property-modification opcode runs (grpprls).
//
// A grpprl is a byte run of SPRM records: a 2-byte opcode followed by an
// operand whose length is determined by the opcode's size class. The
// decoder has no knowledge of what any opcode means; the props package owns
// the semantics.
package sprm
