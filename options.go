package worddoc

// ExtractOptions holds configuration for decoding.
type ExtractOptions struct {
	// OCR language string, "+"-separated for multiple languages
	ocrLanguage string

	// Sub-document stories appended to Text output
	includeHeaders   bool
	includeFootnotes bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		ocrLanguage: "eng",
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		ocrLanguage:      o.ocrLanguage,
		includeHeaders:   o.includeHeaders,
		includeFootnotes: o.includeFootnotes,
	}
}
