package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const configFileName = "openqasm.toml"

type fileConfig struct {
	Tokenize    tokenizeConfig    `toml:"tokenize"`
	Diagnostics diagnosticsConfig `toml:"diagnostics"`
	Trace       traceConfig       `toml:"trace"`
}

type tokenizeConfig struct {
	Format       string `toml:"format"`
	KeepComments bool   `toml:"keep_comments"`
	Encoding     string `toml:"encoding"`
	Jobs         int    `toml:"jobs"`
	UI           string `toml:"ui"`
}

type diagnosticsConfig struct {
	Max      int    `toml:"max"`
	Color    string `toml:"color"`
	Context  int    `toml:"context"`
	PathMode string `toml:"path_mode"`
	Format   string `toml:"format"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Format string `toml:"format"`
}

// flagValues maps flag names to the values given in the file. Only keys
// present in the file appear.
type flagValues map[string]string

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadConfig(path string) (flagValues, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}

	out := flagValues{}
	set := func(flag string, value string, key ...string) {
		if meta.IsDefined(key...) {
			out[flag] = value
		}
	}
	set("format", cfg.Tokenize.Format, "tokenize", "format")
	set("keep-comments", strconv.FormatBool(cfg.Tokenize.KeepComments), "tokenize", "keep_comments")
	set("encoding", cfg.Tokenize.Encoding, "tokenize", "encoding")
	set("jobs", strconv.Itoa(cfg.Tokenize.Jobs), "tokenize", "jobs")
	set("ui", cfg.Tokenize.UI, "tokenize", "ui")
	set("max-diagnostics", strconv.Itoa(cfg.Diagnostics.Max), "diagnostics", "max")
	set("color", cfg.Diagnostics.Color, "diagnostics", "color")
	set("context", strconv.Itoa(cfg.Diagnostics.Context), "diagnostics", "context")
	set("path-mode", cfg.Diagnostics.PathMode, "diagnostics", "path_mode")
	set("diagnostics-format", cfg.Diagnostics.Format, "diagnostics", "format")
	set("trace-level", cfg.Trace.Level, "trace", "level")
	set("trace", cfg.Trace.Output, "trace", "output")
	set("trace-format", cfg.Trace.Format, "trace", "format")
	return out, nil
}

// applyConfig loads the config file named by --config, or the nearest
// openqasm.toml, and uses its values for flags not given on the command line.
func applyConfig(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil || !ok {
			return err
		}
		path = found
	}
	values, err := loadConfig(path)
	if err != nil {
		return err
	}
	return values.apply(cmd)
}

func (v flagValues) apply(cmd *cobra.Command) error {
	for name, value := range v {
		f := cmd.Flags().Lookup(name)
		// ключи другой команды, например [tokenize] для eval
		if f == nil || f.Changed {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			return fmt.Errorf("config: invalid value %q for %s: %w", value, name, err)
		}
	}
	return nil
}
