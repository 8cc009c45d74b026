package ast

import (
	"strconv"
)

// String forms are fully parenthesized, so reading one back does not depend on
// operator precedence. Non-finite reals print as Go does (+Inf, NaN) and do not
// read back.

func (e *Real) String() string {
	s := strconv.FormatFloat(e.Value, 'f', -1, 64)
	for _, c := range s {
		if c == '.' {
			return s
		}
	}
	// keep the literal a Real when read back
	return s + ".0"
}

func (e *NnInteger) String() string { return strconv.FormatUint(e.Value, 10) }

func (*Pi) String() string { return "pi" }

func (e *Ident) String() string { return e.Name }

func (e *Binary) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

func (e *Neg) String() string { return "(-" + e.X.String() + ")" }

func (e *Call) String() string { return e.Fn.String() + "(" + e.Arg.String() + ")" }
