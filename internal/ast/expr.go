package ast

import (
	"openqasm/internal/source"
)

// Expr is a node of an arithmetic parameter expression.
// Nodes own their children; a tree is never shared or mutated after parsing.
type Expr interface {
	// Eval computes the value with IEEE-754 double semantics.
	Eval() float64
	String() string
	exprNode()
}

// BinaryOp enumerates the binary arithmetic operators.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Pow
)

var binaryOpSymbols = [...]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Pow: "^",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpSymbols) {
		return binaryOpSymbols[op]
	}
	return "?"
}

// UnaryOp enumerates the builtin single-argument functions.
type UnaryOp uint8

const (
	Sin UnaryOp = iota
	Cos
	Tan
	Exp
	Ln
	Sqrt
)

var unaryOpNames = [...]string{
	Sin:  "sin",
	Cos:  "cos",
	Tan:  "tan",
	Exp:  "exp",
	Ln:   "ln",
	Sqrt: "sqrt",
}

func (op UnaryOp) String() string {
	if int(op) < len(unaryOpNames) {
		return unaryOpNames[op]
	}
	return "?"
}

type (
	// Real is a floating point literal.
	Real struct {
		Value float64
	}

	// NnInteger is a non-negative integer literal.
	NnInteger struct {
		Value uint64
	}

	// Pi is the builtin constant.
	Pi struct{}

	// Ident is a parameter reference. Span points at the identifier in its
	// source and may be zero for synthesized trees.
	Ident struct {
		Name string
		Span source.Span
	}

	// Binary applies Op to Left and Right.
	Binary struct {
		Op    BinaryOp
		Left  Expr
		Right Expr
	}

	// Neg is unary minus.
	Neg struct {
		X Expr
	}

	// Call applies a builtin function to Arg.
	Call struct {
		Fn  UnaryOp
		Arg Expr
	}
)

func (*Real) exprNode()      {}
func (*NnInteger) exprNode() {}
func (*Pi) exprNode()        {}
func (*Ident) exprNode()     {}
func (*Binary) exprNode()    {}
func (*Neg) exprNode()       {}
func (*Call) exprNode()      {}
