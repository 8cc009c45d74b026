package parser

import (
	"openqasm/internal/ast"
	"openqasm/internal/diag"
	"openqasm/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseBinaryExpr(precAdditive)
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		if err := p.pending(); err != nil {
			return nil, err
		}
		if p.atEOF {
			return left, nil
		}
		op, prec, rightAssoc, ok := binaryOp(p.tok.Kind)
		if !ok || prec < minPrec {
			return left, nil
		}
		p.advance()

		nextMinPrec := prec + 1
		if rightAssoc {
			nextMinPrec = prec
		}
		right, err := p.parseBinaryExpr(nextMinPrec)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

// parseUnaryExpr: унарный минус связывает слабее, чем ^, поэтому -2^2 = -(2^2)
func (p *Parser) parseUnaryExpr() (ast.Expr, error) {
	if p.at(token.Minus) {
		p.advance()
		x, err := p.parseBinaryExpr(precUnary)
		if err != nil {
			return nil, err
		}
		return &ast.Neg{X: x}, nil
	}
	return p.parsePrimaryExpr()
}

func (p *Parser) parsePrimaryExpr() (ast.Expr, error) {
	if err := p.pending(); err != nil {
		return nil, err
	}
	if p.atEOF {
		return nil, p.failHere(diag.SynExpectOperand, "expected operand, found end of input")
	}

	tok := p.tok
	switch tok.Kind {
	case token.Real:
		p.advance()
		return &ast.Real{Value: tok.Real}, nil
	case token.UInt:
		p.advance()
		return &ast.NnInteger{Value: tok.UInt}, nil
	case token.Pi:
		p.advance()
		return &ast.Pi{}, nil
	case token.Ident:
		p.advance()
		return &ast.Ident{Name: tok.Text, Span: tok.Span}, nil
	case token.LParen:
		return p.parseGroup()
	}

	if fn, ok := builtinFunc(tok.Kind); ok {
		return p.parseCall(fn)
	}
	return nil, p.failHere(diag.SynExpectOperand, "expected operand, found "+describe(tok))
}

// parseGroup: '(' expr ')'
func (p *Parser) parseGroup() (ast.Expr, error) {
	open := p.advance()
	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close '(' at offset "+offset(open)); err != nil {
		return nil, err
	}
	return inner, nil
}

// parseCall: fn '(' expr ')'
func (p *Parser) parseCall(fn ast.UnaryOp) (ast.Expr, error) {
	p.advance()
	open, err := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after "+fn.String())
	if err != nil {
		return nil, err
	}
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close '(' at offset "+offset(open)); err != nil {
		return nil, err
	}
	return &ast.Call{Fn: fn, Arg: arg}, nil
}
