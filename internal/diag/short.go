package diag

import (
	"fmt"
	"sort"
	"strings"

	"openqasm/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Offset   uint32
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics one per line as
//
//	<severity> <CODE> <path>:<line>:<col> @<byte offset> <message>
//
// sorted by path and position. Notes follow their diagnostic when includeNotes
// is set. The result is stable and suitable for golden comparisons.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendShort(rendered, &diags[i], fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		return di.Offset < dj.Offset
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d @%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Offset, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendShort(out []shortDiagnostic, d *Diagnostic, fs *source.FileSet, includeNotes bool) []shortDiagnostic {
	if loc, ok := resolveSpan(fs, d.Primary); ok {
		loc.Severity = d.Severity.Label()
		loc.Code = d.Code.ID()
		loc.Message = sanitizeMessage(d.Message)
		out = append(out, loc)
	}

	if includeNotes {
		for _, note := range d.Notes {
			nloc, ok := resolveSpan(fs, note.Span)
			if !ok {
				continue
			}
			nloc.Severity = "note"
			nloc.Code = d.Code.ID()
			nloc.Message = sanitizeMessage(note.Msg)
			out = append(out, nloc)
		}
	}
	return out
}

func resolveSpan(fs *source.FileSet, span source.Span) (shortDiagnostic, bool) {
	if int(span.File) >= fs.Len() {
		return shortDiagnostic{}, false
	}
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return shortDiagnostic{
		Path:   file.Path,
		Offset: file.DiskOffset(span.Start),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
