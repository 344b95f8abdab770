// Package bintable locates the property opcode run covering a file offset.
//
// The character and paragraph property tables are two-level indexes: a page
// table in the table stream maps file-offset ranges to 512-byte formatted
// pages in the WordDocument stream, and each page holds a compact array of
// (offset range, opcode run) entries. Pages are decoded on demand and
// memoized so nearby queries do not re-decode the same page.
package bintable
