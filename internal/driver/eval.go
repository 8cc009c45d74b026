package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"openqasm/internal/ast"
	"openqasm/internal/diag"
	"openqasm/internal/lexer"
	"openqasm/internal/parser"
	"openqasm/internal/source"
	"openqasm/internal/trace"
)

// EvalOptions configures EvalSource and EvalFile.
type EvalOptions struct {
	Params         map[string]float64
	Encoding       string
	MaxDiagnostics int
}

type EvalResult struct {
	FileSet *source.FileSet
	File    *source.File
	Expr    ast.Expr // as parsed, identifiers unbound; nil on a syntax error
	Params  []string // parameter names Expr refers to, sorted
	Value   float64
	Bag     *diag.Bag
}

// EvalSource parses text as a single parameter expression, binds its
// identifiers from opts.Params and evaluates it. The result is returned even
// on failure so the caller can print Bag; err is then the first problem.
func EvalSource(ctx context.Context, name string, text []byte, opts EvalOptions) (*EvalResult, error) {
	content, err := source.Decode(text, opts.Encoding)
	if err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))
	return evalFile(ctx, fs, file, opts)
}

// EvalFile is EvalSource for an expression stored in a file.
func EvalFile(ctx context.Context, path string, opts EvalOptions) (*EvalResult, error) {
	fs := source.NewFileSet()
	id, err := fs.LoadEncoded(path, opts.Encoding)
	if err != nil {
		return nil, err
	}
	return evalFile(ctx, fs, fs.Get(id), opts)
}

func evalFile(ctx context.Context, fs *source.FileSet, file *source.File, opts EvalOptions) (*EvalResult, error) {
	res := &EvalResult{
		FileSet: fs,
		File:    file,
		Bag:     newBag(opts.MaxDiagnostics),
	}
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: res.Bag})

	expr, err := parseFile(ctx, file, reporter)
	if err != nil {
		return res, err
	}
	res.Expr = expr
	res.Params = ast.FreeIdents(expr)

	_, span := trace.Start(ctx, trace.ScopePass, "eval")
	defer span.End(file.Path)

	bound, err := ast.Bind(expr, opts.Params)
	if err != nil {
		var ub *ast.UnboundError
		for _, e := range unwrapJoined(err) {
			if errors.As(e, &ub) {
				diag.ReportError(reporter, diag.EvalUnboundParam, ub.Span,
					fmt.Sprintf("unbound parameter %q", ub.Name)).Emit()
			}
		}
		return res, err
	}
	res.Value = bound.Eval()
	span.WithExtra("value", strconv.FormatFloat(res.Value, 'g', -1, 64))
	return res, nil
}

func parseFile(ctx context.Context, file *source.File, reporter diag.Reporter) (expr ast.Expr, err error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "parse")
	defer span.End(file.Path)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ie, ok := r.(*lexer.InternalError)
		if !ok {
			panic(r)
		}
		dumpRing(ctx)
		diag.ReportError(reporter, diag.LexInternalError, ie.Span, ie.Error()).Emit()
		expr, err = nil, ie
	}()

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return parser.ParseExpr(lx, parser.Options{Reporter: reporter, File: file.ID})
}

func unwrapJoined(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
