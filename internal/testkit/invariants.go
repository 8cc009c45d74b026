package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"openqasm/internal/lexer"
	"openqasm/internal/source"
	"openqasm/internal/token"
)

// CheckTokenSpans runs the span invariants of a token stream of sf:
// 1) every span is non-empty, belongs to sf and lies within its content
// 2) spans are strictly increasing and do not overlap
// 3) payload tokens carry text consistent with their span
func CheckTokenSpans(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prev source.Span
	for i, tok := range tokens {
		sp := tok.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("token %d (%v): empty span %v", i, tok.Kind, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("token %d: span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if i > 0 && prev.Contains(sp.Start) {
			return fmt.Errorf("token %d: span %v overlaps previous token %v", i, sp, prev)
		}
		if i > 0 && sp.Start < prev.Start {
			return fmt.Errorf("token %d: span %v starts before previous token %v", i, sp, prev)
		}
		prev = sp

		// текст идентификатора всегда совпадает с исходником
		if tok.Kind == token.Ident && tok.Text != string(sf.Slice(sp)) {
			return fmt.Errorf("token %d: ident %q does not match source %q", i, tok.Text, sf.Slice(sp))
		}
	}
	return nil
}

// ScanChecked drains a lexer over sf and checks CheckTokenSpans on the
// result, with error spans merged into the ordering check. A lexer panic
// other than *lexer.InternalError is not recovered.
func ScanChecked(sf *source.File) (tokens []token.Token, errs []error, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*lexer.InternalError)
			if !ok {
				panic(r)
			}
			err = ie
		}
	}()

	lx := lexer.New(sf, lexer.Options{})
	tokens, errs = lexer.Drain(lx)

	merged := make([]token.Token, 0, len(tokens)+len(errs))
	ti := 0
	for _, e := range errs {
		le, ok := e.(*lexer.Error)
		if !ok {
			return tokens, errs, fmt.Errorf("unexpected error type %T: %v", e, e)
		}
		for ti < len(tokens) && tokens[ti].Span.Start < le.Span.Start {
			merged = append(merged, tokens[ti])
			ti++
		}
		merged = append(merged, token.Token{Kind: token.Invalid, Span: le.Span})
	}
	merged = append(merged, tokens[ti:]...)
	return tokens, errs, CheckTokenSpans(merged, sf)
}
