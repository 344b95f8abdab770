// Package model defines the structured document model produced by decoding
// a legacy binary Word document.
//
// Every type in this package is a plain value constructed once during the
// decode and never mutated afterwards. Optional document parts (footnotes,
// comments, images, and so on) are nil or empty slices when the source
// document does not contain them.
package model
