package lexer

import (
	"bytes"
	"unicode/utf8"

	"openqasm/internal/diag"
	"openqasm/internal/source"
	"openqasm/internal/token"
)

// scanString is entered with the opening quote already consumed; quote marks
// its offset. The token span covers only the bytes between the quotes. There
// are no escape sequences: the literal ends at the next '"'.
func (lx *Lexer) scanString(quote Mark) (token.Token, error) {
	start := lx.cursor.Mark()
	rest := lx.file.Content[lx.cursor.Off:]
	n := bytes.IndexByte(rest, '"')
	if n < 0 {
		lx.cursor.Reset(Mark(lx.cursor.Limit))
		return lx.fail(diag.LexUnterminatedString, lx.cursor.SpanFrom(quote), "unterminated string literal")
	}

	lx.cursor.Off += uint32(n) // #nosec G115 -- n < len(content), checked in NewCursor
	sp := lx.cursor.SpanFrom(start)
	lx.cursor.Bump() // closing '"'

	content := lx.cursor.Bytes(sp)
	if !utf8.Valid(content) {
		at := source.Span{File: sp.File, Start: uint32(quote), End: uint32(quote) + 1}
		return lx.fail(diag.LexInvalidEncoding, at, "invalid UTF-8 in string literal")
	}
	return token.Token{Kind: token.String, Span: sp, Text: string(content)}, nil
}
