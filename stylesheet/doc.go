// Package stylesheet decodes the style table and resolves style
// inheritance.
//
// Each style carries raw opcode runs for its own formatting and a basedOn
// reference forming an inheritance chain. Resolution expands a style into
// the concatenation of its ancestors' opcodes, root first, so that a later
// (more derived) opcode overrides an earlier one under last-write-wins.
// Chains are cycle-guarded and resolution results are cached per style
// index.
package stylesheet
