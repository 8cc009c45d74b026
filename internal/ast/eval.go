package ast

import "math"

func (e *Real) Eval() float64 { return e.Value }

// Eval widens the literal; values above 2^53 lose precision.
func (e *NnInteger) Eval() float64 { return float64(e.Value) }

func (*Pi) Eval() float64 { return math.Pi }

// Eval always panics with *UnboundError: parameters must be substituted with
// Bind before evaluation.
func (e *Ident) Eval() float64 {
	panic(&UnboundError{Name: e.Name, Span: e.Span})
}

func (e *Binary) Eval() float64 {
	l, r := e.Left.Eval(), e.Right.Eval()
	switch e.Op {
	case Add:
		return l + r
	case Sub:
		return l - r
	case Mul:
		return l * r
	case Div:
		return l / r
	case Pow:
		return math.Pow(l, r)
	default:
		panic("ast: unknown binary operator " + e.Op.String())
	}
}

func (e *Neg) Eval() float64 { return -e.X.Eval() }

func (e *Call) Eval() float64 {
	x := e.Arg.Eval()
	switch e.Fn {
	case Sin:
		return math.Sin(x)
	case Cos:
		return math.Cos(x)
	case Tan:
		return math.Tan(x)
	case Exp:
		return math.Exp(x)
	case Ln:
		return math.Log(x)
	case Sqrt:
		return math.Sqrt(x)
	default:
		panic("ast: unknown function " + e.Fn.String())
	}
}

// TryEval evaluates e and turns an unbound identifier into an error instead
// of a panic. Any other panic propagates.
func TryEval(e Expr) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			ue, ok := r.(*UnboundError)
			if !ok {
				panic(r)
			}
			err = ue
		}
	}()
	return e.Eval(), nil
}
