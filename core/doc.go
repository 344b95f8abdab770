// Package core provides bounds-checked little-endian primitives for reading
// the raw byte streams of a Word binary document.
//
// All reads take an explicit offset into an immutable buffer and return an
// error instead of panicking when the requested range falls outside the
// buffer. Higher-level decoders are built entirely on this package.
package core
