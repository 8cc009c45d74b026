package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"openqasm/internal/diag"
	"openqasm/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	if !enabled {
		for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret} {
			c.DisableColor()
		}
	} else {
		for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret} {
			c.EnableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(f, fs, opts.PathMode), start.Line, start.Col,
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message,
	)
	if len(f.Content) > 0 {
		writeExcerpt(w, f, start, end, int(opts.Context), pal)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
			pal.note.Sprint("note:"), formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col, n.Msg)
	}
}

// writeExcerpt prints the primary line with context lines around it and
// underlines the span on the primary line only.
func writeExcerpt(w io.Writer, f *source.File, start, end source.LineCol, context int, pal palette) {
	if start.Line == 0 {
		return
	}
	first := max(int(start.Line)-context, 1)
	last := int(start.Line) + context
	if total := len(f.LineIdx) + 1; last > total {
		last = total
	}
	gw := len(strconv.Itoa(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(uint32(ln)) // #nosec G115 -- ln is bounded by the line count
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gw, ln), expandTabs(text))
		if ln != int(start.Line) {
			continue
		}

		pad, width := underline(text, start, end)
		marks := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s%s\n",
			pal.gutter.Sprintf("%*s |", gw, ""),
			strings.Repeat(" ", pad),
			pal.caret.Sprint(marks),
		)
	}
}

// underline returns the display column where the span starts on its line and
// the display width to mark, at least one cell.
func underline(line string, start, end source.LineCol) (pad, width int) {
	from := clampCol(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = clampCol(int(end.Col)-1, len(line))
	}
	to = max(to, from)

	pad = displayWidth(line[:from])
	width = displayWidth(line[from:to])
	return pad, max(width, 1)
}

func clampCol(c, n int) int {
	return min(max(c, 0), n)
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
