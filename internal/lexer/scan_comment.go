package lexer

import (
	"bytes"

	"openqasm/internal/token"
)

// scanComment is entered after "//". The comment runs to the end of the line;
// the newline is consumed but belongs to neither the span nor the payload.
// A comment at the end of the buffer is flushed as is.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	rest := lx.file.Content[lx.cursor.Off:]
	n := bytes.IndexByte(rest, '\n')
	if n < 0 {
		n = len(rest)
	}
	lx.cursor.Off += uint32(n) // #nosec G115 -- n <= len(content), checked in NewCursor
	sp := lx.cursor.SpanFrom(start)
	lx.cursor.Eat('\n')

	raw := bytes.Clone(lx.cursor.Bytes(sp))
	if raw == nil {
		raw = []byte{}
	}
	return token.Token{Kind: token.Comment, Span: sp, Raw: raw}
}
