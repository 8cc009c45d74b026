package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"openqasm/internal/diag"
	"openqasm/internal/observ"
	"openqasm/internal/source"
	"openqasm/internal/token"
	"openqasm/internal/trace"
)

// TokenizeFileResult is the outcome for one input of TokenizeFiles.
type TokenizeFileResult struct {
	Path    string
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
	Elapsed time.Duration
	// LoadErr is set when the file could not be read or decoded. FileID then
	// names an empty placeholder so that the IO diagnostic in Bag still
	// resolves to the path.
	LoadErr error
}

// Failed reports whether the file produced any error.
func (r *TokenizeFileResult) Failed() bool {
	return r.LoadErr != nil || (r.Bag != nil && r.Bag.HasErrors())
}

// heartbeatInterval is how often a long batch reports its status to the tracer.
var heartbeatInterval = 2 * time.Second

// TokenizeFiles tokenizes several files concurrently. Every file is loaded
// into one FileSet first so that spans stay resolvable afterwards; lexing then
// runs on up to opts.Jobs goroutines. Results keep the order of paths.
//
// Per-file problems (unreadable file, lexical errors) are recorded in the
// file's result. The returned error is set only when ctx is cancelled.
func TokenizeFiles(ctx context.Context, paths []string, opts TokenizeOptions, timer *observ.Timer) (*source.FileSet, []TokenizeFileResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "tokenize_files")
	defer span.WithExtra("files", fmt.Sprint(len(paths))).End("")

	fileSet := source.NewFileSet()
	results := make([]TokenizeFileResult, len(paths))

	for _, p := range paths {
		emit(opts.Progress, Event{File: p, Stage: StageLoad, Status: StatusQueued})
	}

	loadIdx := timer.Begin("load")
	for i, p := range paths {
		results[i] = loadOne(ctx, fileSet, p, opts)
	}
	timer.End(loadIdx, fmt.Sprintf("%d files", len(paths)))

	var done atomic.Int64
	hb := trace.StartHeartbeat(trace.FromContext(ctx), heartbeatInterval, func() string {
		return fmt.Sprintf("lexed %d/%d files", done.Load(), len(paths))
	})
	defer hb.Stop()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	lexStart := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range results {
		if results[i].LoadErr != nil {
			done.Add(1)
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := &results[i]
			emit(opts.Progress, Event{File: res.Path, Stage: StageLex, Status: StatusWorking})

			fileCtx, fileSpan := trace.Start(gctx, trace.ScopeFile, "file:"+filepath.Base(res.Path))
			begin := time.Now()
			tokens, err := scanFile(fileCtx, fileSet.Get(res.FileID), res.Bag, opts.KeepComments)
			res.Elapsed = time.Since(begin)
			fileSpan.End(res.Path)

			res.Tokens = tokens
			status := StatusDone
			if err != nil || res.Bag.HasErrors() {
				status = StatusError
			}
			emit(opts.Progress, Event{
				File:    res.Path,
				Stage:   StageLex,
				Status:  status,
				Err:     err,
				Elapsed: res.Elapsed,
				Tokens:  len(tokens),
			})
			done.Add(1)
			return nil
		})
	}
	err := g.Wait()
	timer.Add("lex", time.Since(lexStart), fmt.Sprintf("%d jobs", jobs))
	if err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func loadOne(ctx context.Context, fileSet *source.FileSet, path string, opts TokenizeOptions) TokenizeFileResult {
	res := TokenizeFileResult{Path: path, Bag: newBag(opts.MaxDiagnostics)}
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})

	_, span := trace.Start(ctx, trace.ScopeFile, "load")
	begin := time.Now()
	id, err := fileSet.LoadEncoded(path, opts.Encoding)
	elapsed := time.Since(begin)
	span.End(path)

	if err != nil {
		res.LoadErr = err
		res.FileID = fileSet.AddVirtual(path, nil)
		code := diag.IOLoadFileError
		if errors.Is(err, source.ErrDecode) {
			code = diag.IODecodeError
		}
		res.Bag.Add(diag.NewError(code, source.Span{File: res.FileID}, err.Error()))
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: elapsed})
		return res
	}
	res.FileID = id
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusDone, Elapsed: elapsed})
	return res
}

// ExpandInputs turns command-line arguments into a list of files. Directories
// are walked recursively for *.qasm files; plain files are taken as given.
// The result is sorted within each directory and free of duplicates.
func ExpandInputs(args []string) ([]string, error) {
	seen := make(map[string]struct{}, len(args))
	var out []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			// leave it to the loader to report
			add(arg)
			continue
		}
		if !st.IsDir() {
			add(arg)
			continue
		}
		var found []string
		err = filepath.WalkDir(arg, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.EqualFold(filepath.Ext(p), ".qasm") {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		for _, p := range found {
			add(p)
		}
	}
	return out, nil
}
