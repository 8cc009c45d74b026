package parser

import (
	"errors"
	"io"

	"openqasm/internal/ast"
	"openqasm/internal/diag"
	"openqasm/internal/lexer"
	"openqasm/internal/source"
	"openqasm/internal/token"
)

type Options struct {
	// Reporter receives syntax errors. Lexical errors are reported by the
	// lexer's own reporter, not here.
	Reporter diag.Reporter
	// File is used for the span of an error at the end of an input that has no
	// tokens at all.
	File source.FileID
}

// Parser: состояние парсера на одно выражение
type Parser struct {
	src      lexer.Stream
	opts     Options
	tok      token.Token // текущий токен (lookahead)
	atEOF    bool
	lexErr   error
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseExpr parses one parameter expression spanning the whole of s.
// Comments are skipped. The first lexical or syntax error stops parsing and is
// returned; syntax errors are *Error, lexical errors are *lexer.Error.
func ParseExpr(s lexer.Stream, opts Options) (ast.Expr, error) {
	p := &Parser{
		src:      lexer.SkipComments(s),
		opts:     opts,
		lastSpan: source.Span{File: opts.File},
	}
	p.advance()

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.pending(); err != nil {
		return nil, err
	}
	if !p.atEOF {
		first := p.tok
		return nil, p.fail(diag.SynTrailingTokens, p.trailingSpan(),
			"unexpected "+describe(first)+" after expression")
	}
	return expr, nil
}

// trailingSpan covers the rest of the input starting at the lookahead token.
// A lexical error ends it; the lexer has reported that error already.
func (p *Parser) trailingSpan() source.Span {
	sp := p.tok.Span
	for {
		p.advance()
		if p.atEOF || p.lexErr != nil {
			return sp
		}
		sp = sp.Cover(p.tok.Span)
	}
}

// advance: съедает текущий токен и читает следующий
func (p *Parser) advance() token.Token {
	prev := p.tok
	if !p.atEOF && prev.Kind != token.Invalid {
		p.lastSpan = prev.Span
	}
	if p.lexErr != nil || p.atEOF {
		return prev
	}
	tok, err := p.src.Next()
	switch {
	case errors.Is(err, io.EOF):
		p.atEOF = true
		p.tok = token.Token{}
	case err != nil:
		p.lexErr = err
		p.tok = token.Token{}
	default:
		p.tok = tok
	}
	return prev
}

func (p *Parser) at(k token.Kind) bool {
	return !p.atEOF && p.lexErr == nil && p.tok.Kind == k
}

// eofSpan is the empty span right after the last consumed token.
func (p *Parser) eofSpan() source.Span {
	return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
}

func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, error) {
	if err := p.pending(); err != nil {
		return token.Token{}, err
	}
	if p.at(k) {
		return p.advance(), nil
	}
	return token.Token{}, p.failHere(code, msg+", found "+p.describeCurrent())
}

// pending returns a lexical error that replaced the lookahead, if any.
func (p *Parser) pending() error {
	return p.lexErr
}

func (p *Parser) describeCurrent() string {
	if p.atEOF {
		return "end of input"
	}
	return describe(p.tok)
}

func (p *Parser) failHere(code diag.Code, msg string) error {
	sp := p.tok.Span
	if p.atEOF {
		sp = p.eofSpan()
	}
	return p.fail(code, sp, msg)
}

func (p *Parser) fail(code diag.Code, sp source.Span, msg string) error {
	if p.opts.Reporter != nil {
		diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
	}
	return &Error{Code: code, Span: sp, Msg: msg}
}
