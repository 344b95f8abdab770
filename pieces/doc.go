// Package pieces decodes the piece table that maps the document's logical
// character positions onto byte ranges of the WordDocument stream.
//
// Text is stored discontiguously: each piece covers a contiguous CP range,
// points at a file offset, and declares one of two encodings — single-byte
// codepage storage or UTF-16LE. Pieces are the only valid way to convert
// between character positions and file offsets, and every conversion is
// scoped to one owning piece.
package pieces
