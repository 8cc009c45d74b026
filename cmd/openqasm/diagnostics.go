package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"openqasm/internal/diag"
	"openqasm/internal/diagfmt"
	"openqasm/internal/source"
)

// diagPrinter renders a file's diagnostics to stderr in the format chosen by
// --diagnostics-format.
type diagPrinter struct {
	format string // pretty|short|json
	pretty diagfmt.PrettyOpts
	out    io.Writer
}

// newDiagPrinter collects the diagnostic rendering flags shared by commands.
func newDiagPrinter(cmd *cobra.Command) (*diagPrinter, error) {
	format, err := cmd.Flags().GetString("diagnostics-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get diagnostics-format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return nil, fmt.Errorf("invalid --diagnostics-format value %q (expected pretty|short|json)", format)
	}
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return nil, err
	}
	context, err := cmd.Flags().GetInt8("context")
	if err != nil {
		return nil, fmt.Errorf("failed to get context flag: %w", err)
	}
	pathFlag, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathFlag)
	if !ok {
		return nil, fmt.Errorf("invalid --path-mode value %q", pathFlag)
	}
	return &diagPrinter{
		format: format,
		pretty: diagfmt.PrettyOpts{
			Color:     color,
			Context:   context,
			PathMode:  pathMode,
			ShowNotes: true,
		},
		out: cmd.ErrOrStderr(),
	}, nil
}

func (p *diagPrinter) print(bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	switch p.format {
	case "json":
		return diagfmt.JSON(p.out, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         p.pretty.PathMode,
			IncludeNotes:     true,
		})
	case "short":
		_, err := fmt.Fprintln(p.out, diag.FormatShortDiagnostics(bag.Items(), fs, true))
		return err
	default:
		diagfmt.Pretty(p.out, bag, fs, p.pretty)
		return nil
	}
}

func maxDiagnostics(cmd *cobra.Command) (int, error) {
	n, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return n, nil
}
