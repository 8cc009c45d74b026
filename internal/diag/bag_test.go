package diag

import (
	"slices"
	"testing"

	"openqasm/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		b.Add(NewError(LexUnknownChar, source.Span{Start: uint32(i), End: uint32(i + 1)}, "Unexpected character"))
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	if !b.HasErrors() || b.ErrorCount() != 2 {
		t.Fatalf("HasErrors/ErrorCount mismatch: %v %d", b.HasErrors(), b.ErrorCount())
	}
}

func TestNewBagClampsLimit(t *testing.T) {
	if got := NewBag(-1).Cap(); got != 0 {
		t.Fatalf("Cap() = %d, want 0", got)
	}
	if got := NewBag(1 << 20).Cap(); got != 65535 {
		t.Fatalf("Cap() = %d, want 65535", got)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(LexUnknownChar, source.Span{Start: 5, End: 6}, "b"))
	b.Add(New(SevWarning, LexInfo, source.Span{Start: 1, End: 2}, "w"))
	b.Add(NewError(LexUnknownChar, source.Span{Start: 1, End: 2}, "a"))
	b.Add(NewError(LexUnknownChar, source.Span{Start: 5, End: 6}, "b"))

	b.Sort()
	items := b.Items()
	if items[0].Severity != SevError || items[0].Primary.Start != 1 {
		t.Fatalf("unexpected first item after sort: %+v", items[0])
	}

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("Len() after Dedup = %d, want 3", b.Len())
	}
}

func TestBagMergeGrows(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(LexUnknownChar, source.Span{}, "x"))
	other := NewBag(2)
	other.Add(NewError(LexUnknownChar, source.Span{Start: 1, End: 2}, "y"))
	other.Add(NewError(LexUnknownChar, source.Span{Start: 2, End: 3}, "z"))

	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("Len() after Merge = %d, want 3", a.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 3, End: 4}
	r.Report(LexUnknownChar, SevError, sp, "Unexpected character", nil)
	r.Report(LexUnknownChar, SevError, sp, "Unexpected character", nil)
	r.Report(LexUnknownChar, SevError, source.Span{Start: 4, End: 5}, "Unexpected character", nil)
	if bag.Len() != 2 {
		t.Fatalf("bag.Len() = %d, want 2", bag.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(4)
	b := ReportError(BagReporter{Bag: bag}, SynUnclosedParen, source.Span{Start: 0, End: 1}, "expected ')'").
		WithNote(source.Span{Start: 0, End: 1}, "opened here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("bag.Len() = %d, want 1", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("expected one note")
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynUnexpectedToken: "SYN2001",
		EvalUnboundParam:   "EVL3001",
		IOLoadFileError:    "IO4001",
		UnknownCode:        "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", c, got, want)
		}
	}
	if got := LexUnterminatedString.String(); got != "[LEX1002]: Unterminated string" {
		t.Errorf("String() = %q", got)
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bell.qasm", []byte("qreg q[2];\n= x;\n"))

	diags := []Diagnostic{
		NewError(LexMalformedOperator, source.Span{File: id, Start: 11, End: 12}, "Unexpected character"),
		NewError(LexUnknownChar, source.Span{File: id, Start: 0, End: 1}, "first\nline").
			WithNote(source.Span{File: id, Start: 5, End: 6}, "note"),
	}

	want := "error LEX1001 bell.qasm:1:1 @0 first line\n" +
		"note LEX1001 bell.qasm:1:6 @5 note\n" +
		"error LEX1003 bell.qasm:2:1 @11 Unexpected character"
	if got := FormatShortDiagnostics(diags, fs, true); got != want {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestFormatShortDiagnostics_BOMOffset(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("bom.qasm", []byte("= x;\n"), source.FileHadBOM)

	diags := []Diagnostic{NewError(LexMalformedOperator, source.Span{File: id, Start: 0, End: 1}, "Unexpected character")}
	// строка и колонка считаются по тексту, смещение по байтам файла
	want := "error LEX1003 bom.qasm:1:1 @3 Unexpected character"
	if got := FormatShortDiagnostics(diags, fs, false); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSeverityLabel(t *testing.T) {
	tests := []struct {
		sev   Severity
		label string
		upper string
	}{
		{SevError, "error", "ERROR"},
		{SevWarning, "warning", "WARNING"},
		{SevInfo, "info", "INFO"},
	}
	for _, tt := range tests {
		if got := tt.sev.Label(); got != tt.label {
			t.Errorf("%v.Label() = %q, want %q", tt.sev, got, tt.label)
		}
		if got := tt.sev.String(); got != tt.upper {
			t.Errorf("String() = %q, want %q", got, tt.upper)
		}
	}
}

// WithNote не должен портить заметки исходной диагностики
func TestWithNoteCopies(t *testing.T) {
	base := NewError(SynUnclosedParen, source.Span{Start: 4, End: 5}, "expected ')'").
		WithNote(source.Span{Start: 0, End: 1}, "opened here")
	base.Notes = slices.Grow(base.Notes, 4)

	a := base.WithNote(source.Span{Start: 1, End: 2}, "a")
	b := base.WithNote(source.Span{Start: 2, End: 3}, "b")
	if len(base.Notes) != 1 {
		t.Fatalf("base notes = %v", base.Notes)
	}
	if a.Notes[1].Msg != "a" || b.Notes[1].Msg != "b" {
		t.Errorf("notes alias: a=%v b=%v", a.Notes, b.Notes)
	}
	if !a.IsError() || New(SevWarning, SynInfo, source.Span{}, "w").IsError() {
		t.Error("IsError mismatch")
	}
}
