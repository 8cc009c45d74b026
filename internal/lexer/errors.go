package lexer

import (
	"fmt"

	"openqasm/internal/diag"
	"openqasm/internal/source"
	"openqasm/internal/token"
)

// Error is a recoverable lexical error. Span identifies the offending bytes in
// the named source; the lexer has already moved past them.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d+%d: %s", e.Span.Start, e.Span.Len(), e.Msg)
}

// InternalError signals a broken lexer invariant, e.g. a digit run that does
// not parse as an integer. The lexer panics with it; it is never returned from
// Next.
type InternalError struct {
	Span source.Span
	Text string
	Err  error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal lexer error at %d+%d (%q): %v", e.Span.Start, e.Span.Len(), e.Text, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// fail builds the error returned from Next and mirrors it to the reporter.
func (lx *Lexer) fail(code diag.Code, sp source.Span, msg string) (token.Token, error) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
	return token.Token{Kind: token.Invalid, Span: sp}, &Error{Code: code, Span: sp, Msg: msg}
}
