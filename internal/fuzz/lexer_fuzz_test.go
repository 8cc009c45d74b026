package fuzztests

import (
	"testing"

	"openqasm/internal/source"
	"openqasm/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.qasm", input))

		tokens, errs, err := testkit.ScanChecked(file)
		if err != nil {
			// слишком длинные целые литералы: ожидаемая внутренняя ошибка
			if isInternal(err) {
				return
			}
			t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
		}
		if len(input) > 0 && len(tokens) == 0 && len(errs) == 0 && !allSpace(input) {
			t.Fatalf("non-blank input produced nothing: %q", truncateForLog(input, 200))
		}
	})
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func allSpace(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
