package lexer

import (
	"errors"
	"io"
	"iter"

	"openqasm/internal/diag"
	"openqasm/internal/source"
	"openqasm/internal/token"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives every lexical error as a diagnostic. May be nil.
	Reporter diag.Reporter
}

// Lexer is a pull-based scanner over one source file.
// It is not safe for concurrent use; separate files get separate lexers.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	done   bool
}

// New creates a lexer positioned at the start of file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Offset returns the byte offset where the next scan starts.
func (lx *Lexer) Offset() uint32 { return lx.cursor.Off }

// Reset restarts scanning from the beginning of the file.
func (lx *Lexer) Reset() {
	lx.cursor.Reset(0)
	lx.done = false
}

// Next returns the next token.
//
// A lexical problem is returned as a *Error; the lexer has already moved past
// the offending input, so calling Next again continues the scan. Once the input
// is exhausted Next returns io.EOF, and keeps returning it.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.done {
		return token.Token{}, io.EOF
	}

	lx.skipWhitespace()
	if lx.cursor.EOF() {
		lx.done = true
		return token.Token{}, io.EOF
	}

	ch := lx.cursor.Peek()
	switch {
	case isDec(ch):
		return lx.scanNumber(), nil
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword(), nil
	case isPunctByte(ch):
		return lx.scanPunct()
	default:
		// non-ASCII or a control byte where a token must start
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.fail(diag.LexUnknownChar, lx.cursor.SpanFrom(start), "Unexpected character")
	}
}

// All adapts Next to a range-over-func iterator. Iteration stops at io.EOF;
// lexical errors are yielded alongside a zero token.
func (lx *Lexer) All() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		for {
			tok, err := lx.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(tok, err) {
				return
			}
		}
	}
}

func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
