package main

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"openqasm/internal/driver"
	"openqasm/internal/token"
)

var evalCmd = &cobra.Command{
	Use:   `eval [flags] "expr"|-`,
	Short: "Evaluate a gate parameter expression",
	Long: `Eval parses an OpenQASM parameter expression such as "theta/2 + pi",
binds its identifiers from --param and prints the value.
A --param value may itself be a constant expression, e.g. --param theta=pi/4.`,
	Args: cobra.RangeArgs(0, 1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringArrayP("param", "p", nil, "bind a parameter, name=value (repeatable)")
	evalCmd.Flags().String("file", "", "read the expression from a file")
	evalCmd.Flags().Bool("show-ast", false, "print the parsed expression before the value")
}

func runEval(cmd *cobra.Command, args []string) error {
	rawParams, err := cmd.Flags().GetStringArray("param")
	if err != nil {
		return fmt.Errorf("failed to get param flag: %w", err)
	}
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}
	showAST, err := cmd.Flags().GetBool("show-ast")
	if err != nil {
		return fmt.Errorf("failed to get show-ast flag: %w", err)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	diags, err := newDiagPrinter(cmd)
	if err != nil {
		return err
	}

	params, err := parseParams(cmd, rawParams)
	if err != nil {
		return err
	}
	opts := driver.EvalOptions{Params: params, MaxDiagnostics: maxDiag}

	var res *driver.EvalResult
	switch {
	case file != "" && len(args) > 0:
		return fmt.Errorf("give either --file or an expression, not both")
	case file != "":
		res, err = driver.EvalFile(cmd.Context(), file, opts)
	case len(args) == 1 && args[0] == "-":
		text, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		res, err = driver.EvalSource(cmd.Context(), "<stdin>", text, opts)
	case len(args) == 1:
		res, err = driver.EvalSource(cmd.Context(), "<expr>", []byte(args[0]), opts)
	default:
		return fmt.Errorf("missing expression")
	}
	if res == nil {
		return err
	}
	warnUnusedParams(cmd.ErrOrStderr(), params, res.Params)
	if err != nil {
		if printErr := diags.print(res.Bag, res.FileSet); printErr != nil {
			return printErr
		}
		return errReported
	}

	out := cmd.OutOrStdout()
	if showAST {
		fmt.Fprintln(out, res.Expr.String())
	}
	fmt.Fprintln(out, formatValue(res.Value))
	return nil
}

// parseParams turns name=value pairs into bindings. Each value is evaluated
// as a constant expression.
func parseParams(cmd *cobra.Command, raw []string) (map[string]float64, error) {
	params := make(map[string]float64, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --param %q (expected name=value)", kv)
		}
		if !isIdentifier(name) {
			return nil, fmt.Errorf("invalid parameter name %q", name)
		}
		if _, dup := params[name]; dup {
			return nil, fmt.Errorf("parameter %q given twice", name)
		}
		res, err := driver.EvalSource(cmd.Context(), "--param "+name, []byte(value), driver.EvalOptions{})
		if err != nil {
			return nil, fmt.Errorf("invalid value for parameter %q: %w", name, err)
		}
		params[name] = res.Value
	}
	return params, nil
}

// warnUnusedParams prints a warning for every --param the expression does
// not refer to, in name order.
func warnUnusedParams(w io.Writer, params map[string]float64, used []string) {
	names := make([]string, 0, len(params))
	for name := range params {
		if !slices.Contains(used, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "warning: parameter %q is not used by the expression\n", name)
	}
}

// isIdentifier reports whether name would lex as a single identifier.
func isIdentifier(name string) bool {
	if _, ok := token.LookupKeyword(name); ok {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return name != ""
}

func formatValue(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Sprint(v)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
