package diagfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/vmihailenco/msgpack/v5"

	"openqasm/internal/source"
	"openqasm/internal/token"
)

// tokenStreamSchema is bumped whenever TokenStream changes shape.
const tokenStreamSchema uint16 = 1

// TokenOutput is the serialized form of one token.
type TokenOutput struct {
	Kind   string   `json:"kind" msgpack:"kind"`
	Lexeme string   `json:"lexeme,omitempty" msgpack:"lexeme,omitempty"`
	Real   *float64 `json:"real,omitempty" msgpack:"real,omitempty"`
	UInt   *uint64  `json:"uint,omitempty" msgpack:"uint,omitempty"`
	Offset uint32   `json:"offset" msgpack:"offset"`
	Len    uint32   `json:"len" msgpack:"len"`
	Line   uint32   `json:"line" msgpack:"line"`
	Col    uint32   `json:"col" msgpack:"col"`
}

// TokenStream is the token dump of one file.
type TokenStream struct {
	Schema uint16        `json:"schema" msgpack:"schema"`
	File   string        `json:"file" msgpack:"file"`
	Tokens []TokenOutput `json:"tokens" msgpack:"tokens"`
}

// NewTokenStream converts tokens of one file into their serialized form.
func NewTokenStream(path string, tokens []token.Token, fs *source.FileSet) TokenStream {
	out := TokenStream{
		Schema: tokenStreamSchema,
		File:   path,
		Tokens: make([]TokenOutput, 0, len(tokens)),
	}
	for _, tok := range tokens {
		pos, _ := fs.Resolve(tok.Span)
		file := fs.Get(tok.Span.File)
		to := TokenOutput{
			Kind:   tok.Kind.String(),
			Lexeme: tok.Lexeme(),
			Offset: file.DiskOffset(tok.Offset()),
			Len:    tok.Len(),
			Line:   pos.Line,
			Col:    pos.Col,
		}
		switch tok.Kind {
		case token.Real:
			// JSON has no Inf; the lexeme still says "+Inf"
			if !math.IsInf(tok.Real, 0) && !math.IsNaN(tok.Real) {
				v := tok.Real
				to.Real = &v
			}
		case token.UInt:
			v := tok.UInt
			to.UInt = &v
		}
		out.Tokens = append(out.Tokens, to)
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Kind.HasPayload() {
			if _, err := fmt.Fprintf(w, " %q", tok.Lexeme()); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, stream TokenStream) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(stream)
}

// FormatTokensMsgpack appends one msgpack-encoded TokenStream to w.
// Several streams may be written back to back.
func FormatTokensMsgpack(w io.Writer, stream TokenStream) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(&stream)
}

// DecodeTokenStreams reads every TokenStream written by FormatTokensMsgpack.
func DecodeTokenStreams(r io.Reader) ([]TokenStream, error) {
	dec := msgpack.NewDecoder(r)
	var out []TokenStream
	for {
		var s TokenStream
		if err := dec.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("decode token stream %d: %w", len(out), err)
		}
		if s.Schema != tokenStreamSchema {
			return out, fmt.Errorf("token stream %d: unsupported schema %d", len(out), s.Schema)
		}
		out = append(out, s)
	}
}
