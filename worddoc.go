// Package worddoc decodes legacy Word binary (.doc) documents from their
// extracted container streams.
//
// Basic usage:
//
//	doc, warnings, err := worddoc.FromStreams(word, table, data).Document()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", worddoc.FormatWarnings(warnings))
//	}
//
// The three arguments are the raw WordDocument stream, the table stream
// ("0Table" or "1Table", whichever the header selects), and the optional
// Data stream. Splitting the compound-file container into streams is the
// caller's job; the format package can tell an intact container from an
// extracted stream.
//
// For advanced use cases, the lower-level fib, pieces, and document
// packages are also available.
package worddoc

import (
	"github.com/tsawler/worddoc/document"
	"github.com/tsawler/worddoc/model"
)

// FromStreams returns an Extractor over the three raw streams for fluent
// configuration. The data stream may be nil.
//
// Example:
//
//	doc, warnings, err := worddoc.FromStreams(word, table, data).Document()
func FromStreams(word, table, data []byte) *Extractor {
	return &Extractor{
		word:    word,
		table:   table,
		data:    data,
		options: defaultOptions(),
	}
}

// Parse decodes a document from its raw streams, discarding warnings.
// It is shorthand for FromStreams(word, table, data).Document() when the
// warnings are not needed.
func Parse(word, table, data []byte) (*model.Document, error) {
	doc, _, err := document.Assemble(word, table, data)
	return doc, err
}

// ParseWithWarnings decodes a document from its raw streams and reports
// every structure that failed to decode and was treated as absent.
func ParseWithWarnings(word, table, data []byte) (*model.Document, []Warning, error) {
	return document.Assemble(word, table, data)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := worddoc.Must(worddoc.Parse(word, table, data))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to a terminal operation such as
// Text() or Document() and panics if the error is non-nil. It discards
// warnings and returns just the value.
//
// Example:
//
//	text := worddoc.MustText(worddoc.FromStreams(word, table, nil).Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
