package ast

import (
	"fmt"

	"openqasm/internal/source"
)

// UnboundError reports an identifier with no value.
// Ident.Eval panics with it; Bind and TryEval return it.
type UnboundError struct {
	Name string
	Span source.Span
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("unbound parameter %q", e.Name)
}
