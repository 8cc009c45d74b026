package lexer

import (
	"errors"
	"io"
	"iter"

	"openqasm/internal/token"
)

// Stream is anything that produces tokens the way Lexer.Next does:
// io.EOF at the end, other errors inline.
type Stream interface {
	Next() (token.Token, error)
}

type commentFilter struct {
	src Stream
}

// SkipComments wraps s and drops comment tokens. Errors and io.EOF pass
// through unchanged.
func SkipComments(s Stream) Stream {
	return &commentFilter{src: s}
}

func (f *commentFilter) Next() (token.Token, error) {
	for {
		tok, err := f.src.Next()
		if err != nil || !tok.IsComment() {
			return tok, err
		}
	}
}

// FilterComments is SkipComments for iterators.
func FilterComments(seq iter.Seq2[token.Token, error]) iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		for tok, err := range seq {
			if err == nil && tok.IsComment() {
				continue
			}
			if !yield(tok, err) {
				return
			}
		}
	}
}

// Drain pulls s until io.EOF and returns tokens and lexical errors separately,
// each in stream order.
func Drain(s Stream) ([]token.Token, []error) {
	var (
		toks []token.Token
		errs []error
	)
	for {
		tok, err := s.Next()
		if errors.Is(err, io.EOF) {
			return toks, errs
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		toks = append(toks, tok)
	}
}
