// Package fib decodes the file information block at the start of the
// WordDocument stream.
//
// The FIB locates every other structure of the document: it carries the
// sub-document character counts and a table of (offset, length) pairs into
// the WordDocument and table streams. An absent structure has a zero-length
// pair; downstream decoders treat that as "not present", never as an error.
package fib
