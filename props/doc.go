// Package props maps decoded property opcodes onto semantic formatting
// values.
//
// Four resolvers share the sprm decoder: character, paragraph, section, and
// table. Each is a pure fold over an ordered opcode sequence — later
// records override earlier ones for the same field. Unrecognized opcodes
// are ignored so documents written by newer format versions still decode;
// unknown formatting is dropped, never fatal.
package props
