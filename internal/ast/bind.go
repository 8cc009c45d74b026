package ast

import (
	"errors"
	"slices"
)

// Bind returns a copy of e with every identifier replaced by a Real holding
// its value from params. All unknown names are reported, joined.
// The input tree is not modified.
func Bind(e Expr, params map[string]float64) (Expr, error) {
	var errs []error
	out := bind(e, params, &errs)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

func bind(e Expr, params map[string]float64, errs *[]error) Expr {
	switch n := e.(type) {
	case *Ident:
		v, ok := params[n.Name]
		if !ok {
			*errs = append(*errs, &UnboundError{Name: n.Name, Span: n.Span})
			return n
		}
		return &Real{Value: v}
	case *Binary:
		return &Binary{Op: n.Op, Left: bind(n.Left, params, errs), Right: bind(n.Right, params, errs)}
	case *Neg:
		return &Neg{X: bind(n.X, params, errs)}
	case *Call:
		return &Call{Fn: n.Fn, Arg: bind(n.Arg, params, errs)}
	case *Real:
		return &Real{Value: n.Value}
	case *NnInteger:
		return &NnInteger{Value: n.Value}
	case *Pi:
		return &Pi{}
	default:
		return e
	}
}

// FreeIdents lists identifier names in e, sorted and without duplicates.
func FreeIdents(e Expr) []string {
	var names []string
	Walk(e, func(n Expr) {
		if id, ok := n.(*Ident); ok {
			names = append(names, id.Name)
		}
	})
	slices.Sort(names)
	return slices.Compact(names)
}

// Walk calls fn for e and then for each of its descendants, depth first,
// left to right.
func Walk(e Expr, fn func(Expr)) {
	if e == nil {
		return
	}
	fn(e)
	switch n := e.(type) {
	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Neg:
		Walk(n.X, fn)
	case *Call:
		Walk(n.Arg, fn)
	}
}
