package lexer

import (
	"openqasm/internal/token"
)

// scanIdentOrKeyword consumes a maximal [A-Za-z0-9_] run and looks the whole
// run up in the keyword table. Keywords are case-sensitive.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lex := lx.cursor.Bytes(sp)
	if k, ok := token.MatchKeyword(lex); ok {
		return token.Token{Kind: k, Span: sp}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: string(lex)}
}
