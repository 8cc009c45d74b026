package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"openqasm/internal/diagfmt"
	"openqasm/internal/driver"
	"openqasm/internal/observ"
	"openqasm/internal/source"
	"openqasm/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.qasm|dir|- ...",
	Short: "Tokenize OpenQASM source files",
	Long: `Tokenize breaks OpenQASM 2.0 sources into tokens and dumps them.
Directories are searched for *.qasm files; "-" reads standard input.
Lexical errors are printed to stderr and make the command exit with status 1.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	tokenizeCmd.Flags().Bool("keep-comments", true, "include comment tokens")
	tokenizeCmd.Flags().String("encoding", "utf-8", "source encoding (utf-8, utf-16le, latin1, windows-1252, ...)")
	tokenizeCmd.Flags().Int("jobs", 0, "files tokenized in parallel (0 = number of CPUs)")
	tokenizeCmd.Flags().String("ui", "auto", "progress view for several files (auto|on|off)")
}

type tokenizeFlags struct {
	format       string
	keepComments bool
	encoding     string
	jobs         int
	ui           uiMode
	timings      bool
}

func readTokenizeFlags(cmd *cobra.Command) (tokenizeFlags, error) {
	var tf tokenizeFlags
	var err error
	flags := cmd.Flags()

	if tf.format, err = flags.GetString("format"); err != nil {
		return tf, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch tf.format {
	case "pretty", "json", "msgpack":
	default:
		return tf, fmt.Errorf("unknown format: %s", tf.format)
	}
	if tf.keepComments, err = flags.GetBool("keep-comments"); err != nil {
		return tf, fmt.Errorf("failed to get keep-comments flag: %w", err)
	}
	if tf.encoding, err = flags.GetString("encoding"); err != nil {
		return tf, fmt.Errorf("failed to get encoding flag: %w", err)
	}
	if tf.jobs, err = flags.GetInt("jobs"); err != nil {
		return tf, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return tf, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if tf.ui, err = readUIMode(uiValue); err != nil {
		return tf, err
	}
	if tf.timings, err = flags.GetBool("timings"); err != nil {
		return tf, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return tf, nil
}

func runTokenize(cmd *cobra.Command, args []string) error {
	tf, err := readTokenizeFlags(cmd)
	if err != nil {
		return err
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	diags, err := newDiagPrinter(cmd)
	if err != nil {
		return err
	}
	opts := driver.TokenizeOptions{
		KeepComments:   tf.keepComments,
		Encoding:       tf.encoding,
		MaxDiagnostics: maxDiag,
		Jobs:           tf.jobs,
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	if len(args) == 1 && args[0] == "-" {
		return tokenizeStdin(cmd, out, tf, opts, diags)
	}

	paths, err := driver.ExpandInputs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .qasm files found in %v", args)
	}

	var timer *observ.Timer
	if tf.timings {
		timer = observ.NewTimer()
	}

	var (
		fs      *source.FileSet
		results []driver.TokenizeFileResult
	)
	if shouldUseTUI(tf.ui, len(paths)) {
		fs, results, err = runTokenizeWithUI(cmd.Context(), "tokenizing", paths, opts, timer)
	} else {
		fs, results, err = driver.TokenizeFiles(cmd.Context(), paths, opts, timer)
	}
	if err != nil {
		return err
	}
	if wd, err := os.Getwd(); err == nil {
		fs.SetBaseDir(wd)
	}

	failed := false
	outIdx := timer.Begin("output")
	for i := range results {
		res := &results[i]
		if err := diags.print(res.Bag, fs); err != nil {
			return err
		}
		if res.Failed() {
			failed = true
		}
		if res.LoadErr != nil {
			continue
		}
		if err := writeTokens(out, tf.format, res.Path, res.Tokens, fs, len(results) > 1); err != nil {
			return err
		}
	}
	timer.End(outIdx, "")

	if tf.timings {
		if err := printTimings(cmd.ErrOrStderr(), timer, tf.format == "json"); err != nil {
			return err
		}
	}
	if failed {
		return errReported
	}
	return nil
}

func tokenizeStdin(cmd *cobra.Command, out io.Writer, tf tokenizeFlags, opts driver.TokenizeOptions, diags *diagPrinter) error {
	text, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	res, err := driver.TokenizeSource(cmd.Context(), "<stdin>", text, opts)
	if res == nil {
		return err
	}
	if perr := diags.print(res.Bag, res.FileSet); perr != nil {
		return perr
	}
	if err != nil {
		// LEX1005 уже напечатан вместе с остальными диагностиками
		return errReported
	}
	if err := writeTokens(out, tf.format, res.File.Path, res.Tokens, res.FileSet, false); err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return errReported
	}
	return nil
}

func writeTokens(w io.Writer, format, path string, tokens []token.Token, fs *source.FileSet, header bool) error {
	switch format {
	case "json":
		return diagfmt.FormatTokensJSON(w, diagfmt.NewTokenStream(path, tokens, fs))
	case "msgpack":
		return diagfmt.FormatTokensMsgpack(w, diagfmt.NewTokenStream(path, tokens, fs))
	default:
		if header {
			if _, err := fmt.Fprintf(w, "== %s ==\n", path); err != nil {
				return err
			}
		}
		return diagfmt.FormatTokensPretty(w, tokens, fs)
	}
}
