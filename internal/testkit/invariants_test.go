package testkit

import (
	"strings"
	"testing"

	"openqasm/internal/source"
	"openqasm/internal/token"
)

func newFile(content string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("t.qasm", []byte(content)))
}

func TestScanChecked(t *testing.T) {
	inputs := []string{
		"",
		"OPENQASM 2.0;\nqreg q[2];\nh q[0];\ncx q[0],q[1];\n",
		"gate u(theta) a { U(theta,0,pi/2) a; }",
		"$ # = x \"open",
		"include \"bad\xffname\";",
		"// trailing comment",
	}
	for _, in := range inputs {
		if _, _, err := ScanChecked(newFile(in)); err != nil {
			t.Errorf("ScanChecked(%q): %v", in, err)
		}
	}
}

func TestScanChecked_InternalError(t *testing.T) {
	_, _, err := ScanChecked(newFile("x " + strings.Repeat("9", 30)))
	if err == nil || !strings.Contains(err.Error(), "internal lexer error") {
		t.Errorf("err = %v", err)
	}
}

func TestCheckTokenSpans_Violations(t *testing.T) {
	f := newFile("abc def")
	tests := []struct {
		name   string
		tokens []token.Token
		want   string
	}{
		{"empty", []token.Token{{Kind: token.Plus, Span: source.Span{Start: 1, End: 1}}}, "empty span"},
		{"beyond", []token.Token{{Kind: token.Plus, Span: source.Span{Start: 5, End: 9}}}, "beyond content"},
		{"overlap", []token.Token{
			{Kind: token.Ident, Text: "abc", Span: source.Span{Start: 0, End: 3}},
			{Kind: token.Plus, Span: source.Span{Start: 2, End: 3}},
		}, "overlaps"},
		{"order", []token.Token{
			{Kind: token.Ident, Text: "def", Span: source.Span{Start: 4, End: 7}},
			{Kind: token.Plus, Span: source.Span{Start: 0, End: 1}},
		}, "starts before"},
		{"file", []token.Token{{Kind: token.Plus, Span: source.Span{File: 7, Start: 0, End: 1}}}, "file mismatch"},
		{"text", []token.Token{{Kind: token.Ident, Text: "abd", Span: source.Span{Start: 0, End: 3}}}, "does not match"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTokenSpans(tt.tokens, f)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}
