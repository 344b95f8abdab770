// Package drawing walks the nested drawing-record format and recovers
// embedded images.
//
// Drawing data is a tree of records, each with a version/instance/type/
// length header; a version nibble of 0xF marks the record as a container
// whose payload is itself a sequence of child records. Images live in a
// BLIP store inside the root container, either embedded directly or
// deferred into the Data stream. Inline pictures in the text reference
// their image through a picture descriptor holding display dimensions and
// the drawing records of the image itself.
package drawing
