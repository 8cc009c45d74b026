package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// expressionSeeds are parameter expressions in the shapes real circuits use.
var expressionSeeds = []string{
	"pi/2",
	"-pi/4",
	"theta/2 + phi",
	"2*pi*(1 - 1/2^3)",
	"sin(theta)^2 + cos(theta)^2",
	"exp(ln(2))",
	"sqrt(2)/2",
	"-2^-x^2",
	"((1))",
	"1 + // half\n0.5",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range expressionSeeds {
		f.Add([]byte(s))
	}
	f.Add([]byte{})
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.qasm файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".qasm" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
