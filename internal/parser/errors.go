package parser

import (
	"fmt"
	"strconv"

	"openqasm/internal/diag"
	"openqasm/internal/source"
	"openqasm/internal/token"
)

// Error is a syntax error in an expression.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d+%d: %s", e.Span.Start, e.Span.Len(), e.Msg)
}

// describe renders a token for messages: keyword 'qreg', identifier 'x',
// number 2, '+'.
func describe(tok token.Token) string {
	spelling := "'" + token.Spelling(tok.Kind) + "'"
	switch {
	case tok.IsIdent():
		return "identifier '" + tok.Text + "'"
	case tok.Kind == token.String:
		return "string \"" + tok.Text + "\""
	case tok.IsLiteral():
		return "number " + tok.Lexeme()
	case tok.IsComment():
		return "comment"
	case tok.Kind.IsKeyword():
		return "keyword " + spelling
	case tok.Kind.IsFunc():
		return "function " + spelling
	case tok.Kind.IsBuiltin():
		return "builtin " + spelling
	case tok.Kind.IsPunct():
		return spelling
	default:
		return tok.Kind.String()
	}
}

func offset(tok token.Token) string {
	return strconv.FormatUint(uint64(tok.Span.Start), 10)
}
