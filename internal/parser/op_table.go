package parser

import (
	"openqasm/internal/ast"
	"openqasm/internal/token"
)

// Таблица приоритетов
// Чем больше число, тем выше приоритет
const (
	precAdditive       = 1 // + -
	precMultiplicative = 2 // * /
	precUnary          = 3 // унарный -
	precPower          = 4 // ^
)

// binaryOp возвращает оператор, приоритет и правоассоциативность.
// ok == false для токенов, которые не являются бинарными операторами.
func binaryOp(kind token.Kind) (op ast.BinaryOp, prec int, rightAssoc, ok bool) {
	switch kind {
	case token.Plus:
		return ast.Add, precAdditive, false, true
	case token.Minus:
		return ast.Sub, precAdditive, false, true
	case token.Star:
		return ast.Mul, precMultiplicative, false, true
	case token.Slash:
		return ast.Div, precMultiplicative, false, true
	case token.Caret:
		return ast.Pow, precPower, true, true
	default:
		return 0, -1, false, false
	}
}

// funcOps is indexed by kind - token.FnSin.
var funcOps = [...]ast.UnaryOp{ast.Sin, ast.Cos, ast.Tan, ast.Exp, ast.Ln, ast.Sqrt}

// builtinFunc maps a function keyword to its operator.
func builtinFunc(kind token.Kind) (ast.UnaryOp, bool) {
	if !kind.IsFunc() {
		return 0, false
	}
	return funcOps[kind-token.FnSin], true
}
