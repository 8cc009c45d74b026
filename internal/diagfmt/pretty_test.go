package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"openqasm/internal/diag"
	"openqasm/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("include \"qelib1.inc\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.qasm", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 20},
		"unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.qasm:1:9"},
		{"Relative path", PathModeRelative, "src/test.qasm:1:9"},
		{"Basename only", PathModeBasename, "test.qasm:1:9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR LEX1002: unterminated string literal") {
				t.Errorf("Expected header line, got:\n%s", output)
			}
		})
	}
}

func TestPrettyExcerpt(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("bell.qasm", []byte("qreg q[2];\nU(0) = q;\ncreg c[2];\n"))

	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexMalformedOperator, source.Span{File: fileID, Start: 16, End: 17}, "Unexpected character"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})

	want := strings.Join([]string{
		"bell.qasm:2:6: ERROR LEX1003: Unexpected character",
		" 1 | qreg q[2];",
		" 2 | U(0) = q;",
		"   |      ^",
		" 3 | creg c[2];",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("Pretty output mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestPrettyWideCharacters(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("wide.qasm", []byte("\"漢字\" @"))

	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 9, End: 10}, "Unexpected character"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	output := buf.String()

	// two double-width runes push the caret two extra cells right
	if !strings.Contains(output, "   |        ^\n") {
		t.Errorf("caret misplaced:\n%q", output)
	}
}

func TestPrettyUnderlineWidth(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("u.qasm", []byte("x \"abc"))

	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnterminatedString, source.Span{File: fileID, Start: 2, End: 6}, "unterminated string literal"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if !strings.Contains(buf.String(), "   |   ^~~~\n") {
		t.Errorf("underline mismatch:\n%q", buf.String())
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.qasm", []byte("sin(theta\n"))

	d := diag.NewError(diag.SynUnclosedParen, source.Span{File: fileID, Start: 9, End: 9}, "expected ')'")
	d = d.WithNote(source.Span{File: fileID, Start: 3, End: 4}, "to match this '('")
	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	if !strings.Contains(buf.String(), "note: test.qasm:1:4: to match this '('") {
		t.Fatalf("expected note with location, got:\n%s", buf.String())
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes printed without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.qasm", []byte("@"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "Unexpected character"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{Color: false})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})

	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output has escape codes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escape codes: %q", colored.String())
	}
}

func TestUnderline(t *testing.T) {
	tests := []struct {
		line       string
		start, end source.LineCol
		pad, width int
	}{
		{"abc", source.LineCol{Line: 1, Col: 1}, source.LineCol{Line: 1, Col: 1}, 0, 1},
		{"abc", source.LineCol{Line: 1, Col: 2}, source.LineCol{Line: 1, Col: 4}, 1, 2},
		{"abc", source.LineCol{Line: 1, Col: 3}, source.LineCol{Line: 2, Col: 1}, 2, 1},
		{"\tx", source.LineCol{Line: 1, Col: 2}, source.LineCol{Line: 1, Col: 3}, 4, 1},
		{"ab", source.LineCol{Line: 1, Col: 9}, source.LineCol{Line: 1, Col: 9}, 2, 1},
	}
	for _, tt := range tests {
		pad, width := underline(tt.line, tt.start, tt.end)
		if pad != tt.pad || width != tt.width {
			t.Errorf("underline(%q, %v, %v) = %d, %d; want %d, %d", tt.line, tt.start, tt.end, pad, width, tt.pad, tt.width)
		}
	}
}
