package worddoc

import (
	"fmt"
	"strings"

	"github.com/tsawler/worddoc/document"
	"github.com/tsawler/worddoc/format"
	"github.com/tsawler/worddoc/model"
	"github.com/tsawler/worddoc/ocr"
)

// Extractor provides a fluent interface for decoding Word binary streams.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source streams
	word  []byte
	table []byte
	data  []byte

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options, so each chain method returns an independent instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		word:    e.word,
		table:   e.table,
		data:    e.data,
		options: e.options.clone(),
		err:     e.err,
	}
}

// OCRLanguage sets the language(s) used when recognizing text in embedded
// images. Multiple languages can be specified as a "+" separated string
// (e.g. "eng+fra"). Default is "eng".
//
// Example:
//
//	text, _, err := worddoc.FromStreams(word, table, data).
//	    OCRLanguage("eng+deu").
//	    ImageText()
func (e *Extractor) OCRLanguage(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.ocrLanguage = lang
	return newExt
}

// IncludeHeaders configures the extractor to append header and footer
// text after the body in Text output. By default Text returns the main
// body only.
//
// Example:
//
//	text, _, err := worddoc.FromStreams(word, table, data).
//	    IncludeHeaders().
//	    Text()
func (e *Extractor) IncludeHeaders() *Extractor {
	newExt := e.clone()
	newExt.options.includeHeaders = true
	return newExt
}

// IncludeFootnotes configures the extractor to append footnote and
// endnote text after the body in Text output.
//
// Example:
//
//	text, _, err := worddoc.FromStreams(word, table, data).
//	    IncludeFootnotes().
//	    Text()
func (e *Extractor) IncludeFootnotes() *Extractor {
	newExt := e.clone()
	newExt.options.includeFootnotes = true
	return newExt
}

// Document decodes the streams and returns the full document model.
//
// Returns the document, any warnings encountered during decoding, and an
// error if decoding failed outright. Warnings indicate non-fatal issues
// where a structure could not be decoded and was treated as absent.
//
// Example:
//
//	doc, warnings, err := worddoc.FromStreams(word, table, data).Document()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", worddoc.FormatWarnings(warnings))
//	}
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.checkStreams(); err != nil {
		return nil, nil, err
	}
	return document.Assemble(e.word, e.table, e.data)
}

// Text decodes the streams and returns the plain text of the main
// document body, with paragraphs separated by newlines.
//
// Example:
//
//	text, warnings, err := worddoc.FromStreams(word, table, data).Text()
func (e *Extractor) Text() (string, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return "", warnings, err
	}
	return e.renderText(doc), warnings, nil
}

// renderText flattens the document to plain text, appending the
// sub-document stories the options ask for after the body.
func (e *Extractor) renderText(doc *model.Document) string {
	var sb strings.Builder
	sb.WriteString(doc.Text())
	write := func(paras []model.Paragraph) {
		for i := range paras {
			sb.WriteString("\n")
			sb.WriteString(paras[i].Text())
		}
	}
	if e.options.includeHeaders {
		for i := range doc.Headers {
			write(doc.Headers[i].Paragraphs)
		}
	}
	if e.options.includeFootnotes {
		for i := range doc.Footnotes {
			write(doc.Footnotes[i].Paragraphs)
		}
		for i := range doc.Endnotes {
			write(doc.Endnotes[i].Paragraphs)
		}
	}
	return sb.String()
}

// Paragraphs decodes the streams and returns the body paragraphs across
// all sections, in document order.
//
// Example:
//
//	paras, warnings, err := worddoc.FromStreams(word, table, data).Paragraphs()
//	for _, p := range paras {
//	    fmt.Println(p.Text())
//	}
func (e *Extractor) Paragraphs() ([]model.Paragraph, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}
	return doc.Paragraphs(), warnings, nil
}

// Tables decodes the streams and returns the body tables across all
// sections, in document order.
//
// Example:
//
//	tables, warnings, err := worddoc.FromStreams(word, table, data).Tables()
func (e *Extractor) Tables() ([]model.Table, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}
	return doc.Tables(), warnings, nil
}

// Images decodes the streams and returns the embedded images.
//
// Example:
//
//	images, warnings, err := worddoc.FromStreams(word, table, data).Images()
//	for _, img := range images {
//	    os.WriteFile(fmt.Sprintf("img-%d", img.CP), img.Data, 0o644)
//	}
func (e *Extractor) Images() ([]model.Image, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}
	return doc.Images, warnings, nil
}

// Metadata decodes the streams and returns the document metadata.
//
// Example:
//
//	meta, _, err := worddoc.FromStreams(word, table, data).Metadata()
//	fmt.Println(meta.Title, meta.Author)
func (e *Extractor) Metadata() (model.Metadata, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return model.Metadata{}, warnings, err
	}
	return doc.Metadata, warnings, nil
}

// ImageText decodes the streams and runs OCR over every embedded raster
// image, returning the recognized text in image order. Requires building
// with the "ocr" tag and a Tesseract installation; without it the method
// returns ocr.ErrOCRNotEnabled.
//
// Example:
//
//	texts, warnings, err := worddoc.FromStreams(word, table, data).
//	    OCRLanguage("eng").
//	    ImageText()
func (e *Extractor) ImageText() ([]string, []Warning, error) {
	images, warnings, err := e.Images()
	if err != nil {
		return nil, warnings, err
	}
	if len(images) == 0 {
		return nil, warnings, nil
	}

	client, err := ocr.New()
	if err != nil {
		return nil, warnings, err
	}
	defer client.Close()
	if e.options.ocrLanguage != "" {
		if err := client.SetLanguage(e.options.ocrLanguage); err != nil {
			return nil, warnings, fmt.Errorf("setting OCR language: %w", err)
		}
	}

	texts := make([]string, 0, len(images))
	for i, img := range images {
		text, err := client.RecognizeImage(img.Data)
		if err != nil {
			warnings = append(warnings, Warning{
				Code:    "ocr",
				Message: fmt.Sprintf("image %d: %v", i, err),
			})
			text = ""
		}
		texts = append(texts, text)
	}
	return texts, warnings, nil
}

// checkStreams rejects inputs that are not extracted WordDocument
// streams, with a pointer at what the caller passed instead.
func (e *Extractor) checkStreams() error {
	switch format.Detect(e.word) {
	case format.CompoundFile:
		return fmt.Errorf("input is an intact compound-file container; extract the WordDocument, table, and Data streams first")
	case format.ZIPArchive:
		return fmt.Errorf("input is a ZIP archive (DOCX?); this library decodes the legacy binary format only")
	}
	// Unknown falls through: the header decoder reports a precise error.
	return nil
}
