package diag

import (
	"openqasm/internal/source"
)

// Note points at a secondary location, e.g. the '(' an unclosed group
// started at.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one problem found in an OpenQASM source. Primary is a byte
// span; line and column are resolved only when rendering.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// IsError reports whether d fails the file it belongs to.
func (d Diagnostic) IsError() bool { return d.Severity >= SevError }
