package worddoc

import (
	"strings"

	"github.com/tsawler/worddoc/document"
)

// Warning reports a non-fatal problem encountered while decoding: a
// structure that failed to decode and was treated as absent. The decode
// as a whole still succeeded.
type Warning = document.Warning

// FormatWarnings renders a warning list as a single semicolon-separated
// string, for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
