// Package plc decodes position lists and string tables from the table
// stream.
//
// A position list (PLC) is a count-prefixed array of character positions
// followed by a parallel array of fixed-size payload records; it pairs
// logical text ranges with metadata. Sections, fields, notes, comments,
// bookmarks, headers, and textboxes all store their locations this way. A
// string table (STTB) is a counted list of length-prefixed strings, in a
// single-byte legacy variant and a UTF-16 extended variant.
package plc
