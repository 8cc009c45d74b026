package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"openqasm/internal/diag"
	"openqasm/internal/lexer"
	"openqasm/internal/source"
	"openqasm/internal/token"
	"openqasm/internal/trace"
)

// crashOutput receives the trace ring dump when the lexer breaks.
var crashOutput io.Writer = os.Stderr

// TokenizeOptions configures Tokenize and TokenizeFiles.
type TokenizeOptions struct {
	KeepComments   bool
	Encoding       string // "" or "utf-8" reads bytes as is
	MaxDiagnostics int    // per file; <= 0 means defaultMaxDiagnostics
	Jobs           int    // TokenizeFiles only; <= 0 means GOMAXPROCS
	Progress       ProgressSink
}

const defaultMaxDiagnostics = 100

func newBag(limit int) *diag.Bag {
	if limit <= 0 {
		limit = defaultMaxDiagnostics
	}
	return diag.NewBag(limit)
}

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and scans it to the end. Lexical errors do not stop the
// scan; they are collected in the result's Bag.
//
// A load or decode failure returns a nil result. A broken lexer invariant
// returns the result together with an error wrapping *lexer.InternalError;
// its Bag then holds every diagnostic collected so far plus LEX1005.
func Tokenize(ctx context.Context, path string, opts TokenizeOptions) (*TokenizeResult, error) {
	fs := source.NewFileSet()

	ctx, loadSpan := trace.Start(ctx, trace.ScopePass, "load")
	fileID, err := fs.LoadEncoded(path, opts.Encoding)
	loadSpan.End(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := newBag(opts.MaxDiagnostics)
	tokens, err := scanFile(ctx, file, bag, opts.KeepComments)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, err
}

// TokenizeSource scans in-memory text, as for stdin. Errors follow Tokenize.
func TokenizeSource(ctx context.Context, name string, text []byte, opts TokenizeOptions) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	content, err := source.Decode(text, opts.Encoding)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fs.AddVirtual(name, content))

	bag := newBag(opts.MaxDiagnostics)
	tokens, err := scanFile(ctx, file, bag, opts.KeepComments)
	return &TokenizeResult{FileSet: fs, File: file, Tokens: tokens, Bag: bag}, err
}

// scanFile collects every token of file. Lexical errors go to bag through the
// lexer's reporter. A broken lexer invariant is reported into bag as well and
// returned as an error wrapping *lexer.InternalError.
func scanFile(ctx context.Context, file *source.File, bag *diag.Bag, keepComments bool) (tokens []token.Token, err error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "lex")
	errCount := 0
	defer func() {
		span.WithExtra("tokens", strconv.Itoa(len(tokens))).
			WithExtra("errors", strconv.Itoa(errCount)).
			End(file.Path)
	}()

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
		bag.Add(diag.NewError(diag.LexInternalError, ie.Span, ie.Error()))
		tokens, err = nil, fmt.Errorf("%s: %w", file.Path, ie)
	}()

	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	var stream lexer.Stream = lx
	if !keepComments {
		stream = lexer.SkipComments(lx)
	}

	debug := trace.FromContext(ctx).Level() >= trace.LevelDebug
	for {
		tok, lexErr := stream.Next()
		if errors.Is(lexErr, io.EOF) {
			return tokens, nil
		}
		if lexErr != nil {
			errCount++
			continue
		}
		if debug {
			trace.Point(ctx, trace.ScopeToken, tok.Kind.String(), tok.Span.String())
		}
		tokens = append(tokens, tok)
	}
}

// dumpRing writes the crash ring of the tracer in ctx to stderr, if it has one.
func dumpRing(ctx context.Context) {
	if ring, ok := trace.Ring(trace.FromContext(ctx)); ok {
		_ = ring.Dump(crashOutput, trace.FormatText) //nolint:errcheck
	}
}
