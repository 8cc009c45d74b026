package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"openqasm/internal/diagfmt"
)

func TestTokenizeCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bell.qasm")
	if err := os.WriteFile(src, []byte("// bell\nqreg q[2];\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := writeConfig(t, dir, "[tokenize]\nkeep_comments = false\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", cfg, "tokenize", "--format", "json", "--ui", "off", src})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var stream diagfmt.TokenStream
	if err := json.Unmarshal(out.Bytes(), &stream); err != nil {
		t.Fatalf("output is not a token stream: %v\n%s", err, out.String())
	}
	if len(stream.Tokens) != 6 {
		t.Fatalf("tokens = %d, want 6 (comments dropped by config)", len(stream.Tokens))
	}
	if stream.Tokens[0].Kind != "KwQreg" || stream.Tokens[0].Line != 2 {
		t.Errorf("first token = %+v", stream.Tokens[0])
	}
}

func TestEvalCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config=", "eval", "--show-ast", "-p", "theta=1", "theta*2 + cos(0)"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("output = %q", out.String())
	}
	if lines[0] != "((theta * 2) + cos(0))" {
		t.Errorf("ast = %q", lines[0])
	}
	if lines[1] != "3" {
		t.Errorf("value = %q", lines[1])
	}
}

// Сломанный инвариант лексера на stdin: печатаются все диагностики, а не голая ошибка.
func TestTokenizeStdin_InternalErrorPrintsDiagnostics(t *testing.T) {
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader("= 99999999999999999999"))
	defer func() {
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	}()
	rootCmd.SetArgs([]string{"--config=", "--diagnostics-format", "short", "tokenize", "--format", "json", "-"})

	err := rootCmd.Execute()
	if !errors.Is(err, errReported) {
		t.Fatalf("Execute error = %v, want errReported", err)
	}
	got := errOut.String()
	for _, want := range []string{
		"error LEX1003 <stdin>:1:1 @0 Unexpected character",
		"error LEX1005 <stdin>:1:3 @2 ",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("stderr misses %q:\n%s", want, got)
		}
	}
}
