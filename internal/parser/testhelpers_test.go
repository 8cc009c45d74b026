package parser_test

import (
	"fmt"
	"strings"

	"openqasm/internal/ast"
	"openqasm/internal/diag"
	"openqasm/internal/lexer"
	"openqasm/internal/parser"
	"openqasm/internal/source"
)

// parseSource tokenizes and parses input, collecting every diagnostic in one bag.
func parseSource(input string) (ast.Expr, *diag.Bag, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("expr.qasm", []byte(input))
	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})
	expr, err := parser.ParseExpr(lx, parser.Options{Reporter: reporter, File: id})
	return expr, bag, err
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func newPlainLexer(input string) (*lexer.Lexer, source.FileID) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("expr.qasm", []byte(input))
	return lexer.New(fs.Get(id), lexer.Options{}), id
}
