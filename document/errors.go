package document

import "fmt"

// Fatal error codes. Anything not covered by these degrades to an absent
// structure and a warning instead of failing the decode.
const (
	CodeInvalidHeader = "invalid_header"
	CodeNoText        = "no_text"
)

// FatalError labels an unrecoverable decode failure with a stable code.
type FatalError struct {
	Code string
	Err  error
}

// Error returns the labeled message.
func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

// Unwrap returns the underlying error.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// Warning reports a non-fatal problem encountered during assembly: a
// structure that failed to decode and was treated as absent.
type Warning struct {
	Code    string
	Message string
}

// String returns "code: message".
func (w Warning) String() string {
	return w.Code + ": " + w.Message
}
