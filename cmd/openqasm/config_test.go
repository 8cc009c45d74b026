package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, configFileName)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[tokenize]
format = "json"
keep_comments = false
jobs = 4

[diagnostics]
max = 10
path_mode = "basename"
`)
	values, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	want := flagValues{
		"format":          "json",
		"keep-comments":   "false",
		"jobs":            "4",
		"max-diagnostics": "10",
		"path-mode":       "basename",
	}
	if len(values) != len(want) {
		t.Fatalf("values = %v, want %v", values, want)
	}
	for k, v := range want {
		if values[k] != v {
			t.Errorf("%s = %q, want %q", k, values[k], v)
		}
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[tokenize\nformat = 1"},
		{"unknown key", "[tokenize]\nspeed = 3"},
		{"wrong type", "[tokenize]\njobs = \"many\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			if _, err := loadConfig(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig: ok=%v err=%v", ok, err)
	}
	wantAbs, _ := filepath.Abs(want)
	if got != wantAbs {
		t.Errorf("found %s, want %s", got, wantAbs)
	}
}

func TestFlagValuesApply(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().String("format", "pretty", "")
	cmd.Flags().Int("jobs", 0, "")
	cmd.Flags().Bool("keep-comments", true, "")
	if err := cmd.Flags().Parse([]string{"--jobs", "2"}); err != nil {
		t.Fatal(err)
	}

	values := flagValues{"format": "json", "jobs": "8", "keep-comments": "false", "ui": "off"}
	if err := values.apply(cmd); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got, _ := cmd.Flags().GetString("format"); got != "json" {
		t.Errorf("format = %q", got)
	}
	// флаг из командной строки важнее файла
	if got, _ := cmd.Flags().GetInt("jobs"); got != 2 {
		t.Errorf("jobs = %d, want 2", got)
	}
	if got, _ := cmd.Flags().GetBool("keep-comments"); got {
		t.Error("keep-comments should be false")
	}

	bad := flagValues{"jobs": "lots"}
	cmd2 := &cobra.Command{Use: "y"}
	cmd2.Flags().Int("jobs", 0, "")
	if err := bad.apply(cmd2); err == nil {
		t.Error("expected error for invalid int")
	}
}
