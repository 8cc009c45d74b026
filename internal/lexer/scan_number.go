package lexer

import (
	"errors"
	"strconv"

	"openqasm/internal/token"
)

// scanNumber handles [0-9]+ and [0-9]+ '.' [0-9]*.
// No exponents, no signs, no leading dot: those are separate tokens.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	if !lx.cursor.Eat('.') {
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.cursor.Bytes(sp))
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			panic(&InternalError{Span: sp, Text: text, Err: err})
		}
		return token.Token{Kind: token.UInt, Span: sp, UInt: v}
	}

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.cursor.Bytes(sp))
	v, err := strconv.ParseFloat(text, 64)
	// out of range literals saturate to ±Inf, like any IEEE parse
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		panic(&InternalError{Span: sp, Text: text, Err: err})
	}
	return token.Token{Kind: token.Real, Span: sp, Real: v}
}
