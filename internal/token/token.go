package token

import (
	"strconv"

	"openqasm/internal/source"
)

// Token is a single classified unit of source text.
type Token struct {
	Kind Kind
	Span source.Span

	Real float64 // Kind == Real
	UInt uint64  // Kind == UInt
	Text string  // Kind == Ident, String
	Raw  []byte  // Kind == Comment
}

// Offset returns the byte offset of the token in its source buffer.
func (t Token) Offset() uint32 { return t.Span.Start }

// Len returns the length of the token span in bytes.
func (t Token) Len() uint32 { return t.Span.Len() }

// IsComment reports whether the token is a comment.
func (t Token) IsComment() bool { return t.Kind == Comment }

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Real, UInt, String:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Lexeme returns a textual form of the token for dumps and messages.
func (t Token) Lexeme() string {
	switch t.Kind {
	case Real:
		return strconv.FormatFloat(t.Real, 'g', -1, 64)
	case UInt:
		return strconv.FormatUint(t.UInt, 10)
	case Ident, String:
		return t.Text
	case Comment:
		return string(t.Raw)
	default:
		return Spelling(t.Kind)
	}
}

// Equal compares kind, span and payload.
func (t Token) Equal(o Token) bool {
	if t.Kind != o.Kind || t.Span != o.Span {
		return false
	}
	switch t.Kind {
	case Real:
		return t.Real == o.Real
	case UInt:
		return t.UInt == o.UInt
	case Ident, String:
		return t.Text == o.Text
	case Comment:
		return string(t.Raw) == string(o.Raw)
	}
	return true
}
