package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"openqasm/internal/prof"
	"openqasm/internal/version"
)

// errReported means the diagnostics were already printed; main only sets the
// exit status.
var errReported = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:           "openqasm",
	Short:         "OpenQASM 2.0 tokenizer and parameter expression evaluator",
	Long:          `openqasm tokenizes OpenQASM 2.0 sources and evaluates gate parameter expressions`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyConfig(cmd); err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return startProfiling(cmd)
	},
}

var (
	// traceCleanup flushes the tracer set up for the running command.
	traceCleanup = func() {}
	profSession  *prof.Session
)

func startProfiling(cmd *cobra.Command) error {
	var opts prof.Options
	var err error
	if opts.CPU, err = cmd.Flags().GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = cmd.Flags().GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = cmd.Flags().GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if opts == (prof.Options{}) {
		return nil
	}
	profSession, err = prof.Start(opts)
	return err
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	rootCmd.PersistentFlags().Int8("context", 2, "source lines shown around a diagnostic")
	rootCmd.PersistentFlags().String("diagnostics-format", "pretty", "diagnostics output on stderr (pretty|short|json)")
	rootCmd.PersistentFlags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("config", "", "path to openqasm.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept for the crash dump in ring mode")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime execution trace to file")
}

func main() {
	err := rootCmd.Execute()
	if profErr := profSession.Stop(); profErr != nil {
		fmt.Fprintf(os.Stderr, "profiling: %v\n", profErr)
	}
	traceCleanup()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}

// useColor resolves the --color flag for f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}
