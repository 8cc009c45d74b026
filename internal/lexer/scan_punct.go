package lexer

import (
	"openqasm/internal/diag"
	"openqasm/internal/token"
)

// scanPunct handles one punctuation byte, peeking one more byte for the
// two-byte forms ==, -> and //. A '"' starts a string literal.
func (lx *Lexer) scanPunct() (token.Token, error) {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) (token.Token, error) {
		return token.Token{Kind: k, Span: lx.cursor.SpanFrom(start)}, nil
	}

	// next == 0 на последнем байте буфера
	_, next, _ := lx.cursor.Peek2()
	switch ch := lx.cursor.Bump(); ch {
	case '=':
		if next == '=' {
			lx.cursor.Bump()
			return emit(token.EqEq)
		}
		return lx.fail(diag.LexMalformedOperator, lx.cursor.SpanFrom(start), "Unexpected character")
	case '-':
		if next == '>' {
			lx.cursor.Bump()
			return emit(token.Arrow)
		}
		return emit(token.Minus)
	case '/':
		if next == '/' {
			lx.cursor.Bump()
			return lx.scanComment(), nil
		}
		return emit(token.Slash)
	case '"':
		return lx.scanString(start)
	default:
		sp := lx.cursor.SpanFrom(start)
		if k, ok := token.MatchKeyword(lx.cursor.Bytes(sp)); ok {
			return emit(k)
		}
		return lx.fail(diag.LexUnknownChar, sp, "Unexpected character")
	}
}
