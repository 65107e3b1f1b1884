package model

import "errors"

// MalformedURLMessage is the message every analysis failure carries.
// It is part of the HTTP contract: POST /scan returns it as the error text.
const MalformedURLMessage = "Malformed URL Structure"

var (
	// ErrMalformedURL is matched by every *AnalysisError via errors.Is.
	ErrMalformedURL = errors.New(MalformedURLMessage)

	// ErrUnknownVerdict is returned when a verdict name cannot be parsed.
	ErrUnknownVerdict = errors.New("unknown verdict")
)

// AnalysisError is the error variant of an analysis. It is returned instead
// of a Report when the URL cannot be decomposed into its authority.
// No partial report is ever produced alongside it.
type AnalysisError struct {
	// Input is the normalized URL that failed to parse.
	Input string

	// Cause is the underlying parser error.
	Cause error
}

// NewAnalysisError creates an AnalysisError for the given input and cause.
func NewAnalysisError(input string, cause error) *AnalysisError {
	return &AnalysisError{Input: input, Cause: cause}
}

// Error returns the fixed malformed-URL message.
// The parser error is available through Unwrap.
func (e *AnalysisError) Error() string {
	return MalformedURLMessage
}

// Unwrap returns the parser error.
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrMalformedURL.
func (e *AnalysisError) Is(target error) bool {
	return target == ErrMalformedURL
}
