package driver

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"openqasm/internal/diag"
	"openqasm/internal/lexer"
	"openqasm/internal/observ"
	"openqasm/internal/testkit"
	"openqasm/internal/token"
	"openqasm/internal/trace"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, content, 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func sameKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

const program = "OPENQASM 2.0;\n// two qubits\nqreg q[2];\n"

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bell.qasm", []byte(program))

	res, err := Tokenize(context.Background(), path, TokenizeOptions{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	want := []token.Kind{
		token.KwOpenQASM, token.Real, token.Semicolon,
		token.KwQreg, token.Ident, token.LBracket, token.UInt, token.RBracket, token.Semicolon,
	}
	if got := kinds(res.Tokens); !sameKinds(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}

	res, err = Tokenize(context.Background(), path, TokenizeOptions{KeepComments: true})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(res.Tokens) != len(want)+1 || res.Tokens[3].Kind != token.Comment {
		t.Errorf("comment not kept: %v", kinds(res.Tokens))
	}
}

func TestTokenize_LexicalErrorsCollected(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.qasm", []byte("qreg $q[2]; = x;"))

	res, err := Tokenize(context.Background(), path, TokenizeOptions{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	items := res.Bag.Items()
	if len(items) != 2 {
		t.Fatalf("diagnostics = %v, want 2", items)
	}
	if items[0].Code != diag.LexUnknownChar || items[0].Primary.Start != 5 {
		t.Errorf("first = %v at %d", items[0].Code, items[0].Primary.Start)
	}
	if items[1].Code != diag.LexMalformedOperator || items[1].Primary.Start != 12 {
		t.Errorf("second = %v at %d", items[1].Code, items[1].Primary.Start)
	}
	// сканирование продолжается после ошибок
	if got := res.Tokens[len(res.Tokens)-1].Kind; got != token.Semicolon {
		t.Errorf("last token = %v", got)
	}
}

func TestTokenize_Missing(t *testing.T) {
	_, err := Tokenize(context.Background(), filepath.Join(t.TempDir(), "nope.qasm"), TokenizeOptions{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not exist", err)
	}
}

func TestTokenize_EncodingEquivalence(t *testing.T) {
	dir := t.TempDir()
	utf := writeFile(t, dir, "utf8.qasm", []byte("include \"caf\xc3\xa9\";"))
	latin := writeFile(t, dir, "latin1.qasm", []byte("include \"caf\xe9\";"))

	a, err := Tokenize(context.Background(), utf, TokenizeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Tokenize(context.Background(), latin, TokenizeOptions{Encoding: "latin1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Tokens) != len(b.Tokens) {
		t.Fatalf("token counts differ: %d vs %d", len(a.Tokens), len(b.Tokens))
	}
	for i := range a.Tokens {
		if !a.Tokens[i].Equal(b.Tokens[i]) {
			t.Errorf("token %d: %+v vs %+v", i, a.Tokens[i], b.Tokens[i])
		}
	}
	if a.Tokens[1].Text != "café" {
		t.Errorf("string payload = %q", a.Tokens[1].Text)
	}
}

func TestTokenizeSource(t *testing.T) {
	res, err := TokenizeSource(context.Background(), "<stdin>", []byte("measure q -> c;"), TokenizeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	want := []token.Kind{token.KwMeasure, token.Ident, token.Arrow, token.Ident, token.Semicolon}
	if got := kinds(res.Tokens); !sameKinds(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
	if res.File.Path != "<stdin>" {
		t.Errorf("path = %q", res.File.Path)
	}
}

// Поломанный инвариант лексера не должен терять уже собранные диагностики.
func TestTokenizeSource_InternalErrorKeepsBag(t *testing.T) {
	old := crashOutput
	crashOutput = io.Discard
	defer func() { crashOutput = old }()

	res, err := TokenizeSource(context.Background(), "<stdin>", []byte("= 99999999999999999999"), TokenizeOptions{})
	var ie *lexer.InternalError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want *lexer.InternalError", err)
	}
	if res == nil || res.Bag == nil {
		t.Fatal("result dropped on internal error")
	}
	items := res.Bag.Items()
	if len(items) != 2 {
		t.Fatalf("diagnostics = %v", items)
	}
	if items[0].Code != diag.LexMalformedOperator || items[0].Primary.Start != 0 {
		t.Errorf("first = %v", items[0])
	}
	if items[1].Code != diag.LexInternalError || items[1].Primary.Start != 2 {
		t.Errorf("second = %v", items[1])
	}
}

func TestTokenize_InternalErrorKeepsBag(t *testing.T) {
	old := crashOutput
	crashOutput = io.Discard
	defer func() { crashOutput = old }()

	path := writeFile(t, t.TempDir(), "huge.qasm", []byte("= qreg q[99999999999999999999999];"))
	res, err := Tokenize(context.Background(), path, TokenizeOptions{})
	if err == nil {
		t.Fatal("expected internal error")
	}
	if res == nil || res.Bag.Len() != 2 || !res.Bag.HasErrors() {
		t.Fatalf("result = %+v", res)
	}
	if res.Bag.Items()[1].Code != diag.LexInternalError {
		t.Errorf("diagnostics = %v", res.Bag.Items())
	}
}

func TestTokenizeFiles_Ordered(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.qasm", "b.qasm", "c.qasm", "d.qasm"} {
		paths = append(paths, writeFile(t, dir, name, []byte(program)))
	}
	missing := filepath.Join(dir, "missing.qasm")
	paths = append(paths[:2], append([]string{missing}, paths[2:]...)...)

	var mu sync.Mutex
	events := map[Status]int{}
	sink := SinkFunc(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		if e.Stage == StageLex {
			events[e.Status]++
		}
	})

	timer := observ.NewTimer()
	fs, results, err := TokenizeFiles(context.Background(), paths, TokenizeOptions{Jobs: 2, Progress: sink}, timer)
	if err != nil {
		t.Fatalf("TokenizeFiles: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("results = %d", len(results))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Errorf("result %d path = %s, want %s", i, r.Path, paths[i])
		}
		if i == 2 {
			continue
		}
		if r.Failed() || len(r.Tokens) != 9 {
			t.Errorf("%s: failed=%v tokens=%d", r.Path, r.Failed(), len(r.Tokens))
		}
		if got := fs.Get(r.FileID).Path; filepath.Base(got) != filepath.Base(paths[i]) {
			t.Errorf("file id %d maps to %s", r.FileID, got)
		}
	}

	bad := results[2]
	if bad.LoadErr == nil || !bad.Failed() {
		t.Fatalf("missing file not reported: %+v", bad)
	}
	if items := bad.Bag.Items(); len(items) != 1 || items[0].Code != diag.IOLoadFileError {
		t.Errorf("missing file diagnostics = %v", items)
	}
	if events[StatusDone] != 4 || events[StatusWorking] != 4 {
		t.Errorf("lex events = %v", events)
	}
	if len(timer.Report().Phases) != 2 {
		t.Errorf("timer phases = %+v", timer.Report().Phases)
	}
}

func TestTokenizeFiles_DecodeError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "x.qasm", []byte("qreg q[1];"))
	_, results, err := TokenizeFiles(context.Background(), []string{path}, TokenizeOptions{Encoding: "klingon"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if items := results[0].Bag.Items(); len(items) != 1 || items[0].Code != diag.IODecodeError {
		t.Errorf("diagnostics = %v", items)
	}
}

func TestTokenizeFiles_InternalError(t *testing.T) {
	old := crashOutput
	crashOutput = io.Discard
	defer func() { crashOutput = old }()

	dir := t.TempDir()
	ok := writeFile(t, dir, "ok.qasm", []byte(program))
	huge := writeFile(t, dir, "huge.qasm", []byte("qreg q[99999999999999999999999];"))

	_, results, err := TokenizeFiles(context.Background(), []string{ok, huge}, TokenizeOptions{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Failed() {
		t.Errorf("ok.qasm failed: %v", results[0].Bag.Items())
	}
	items := results[1].Bag.Items()
	if len(items) != 1 || items[0].Code != diag.LexInternalError {
		t.Fatalf("diagnostics = %v", items)
	}
	if items[0].Primary.Start != 7 {
		t.Errorf("span start = %d", items[0].Primary.Start)
	}
}

func TestTokenizeFiles_Cancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.qasm", []byte(program))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := TokenizeFiles(ctx, []string{path}, TokenizeOptions{}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.qasm", nil)
	writeFile(t, dir, "a.qasm", nil)
	writeFile(t, dir, "notes.txt", nil)
	writeFile(t, dir, "sub/c.QASM", nil)
	writeFile(t, dir, ".git/d.qasm", nil)
	single := filepath.Join(dir, "a.qasm")

	got, err := ExpandInputs([]string{dir, single, "does-not-exist.qasm"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.qasm"),
		filepath.Join(dir, "b.qasm"),
		filepath.Join(dir, "sub", "c.QASM"),
		"does-not-exist.qasm",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestEvalSource(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		params map[string]float64
		want   float64
	}{
		{"constant", "2*pi", nil, 2 * math.Pi},
		{"param", "theta/2", map[string]float64{"theta": 1}, 0.5},
		{"funcs", "cos(0) + sqrt(4)", nil, 3},
		{"power", "-2^2", nil, -4},
		{"comment", "1 + // one\n1", nil, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := EvalSource(context.Background(), "<expr>", []byte(tt.input), EvalOptions{Params: tt.params})
			if err != nil {
				t.Fatalf("EvalSource: %v (%v)", err, res.Bag.Items())
			}
			if math.Abs(res.Value-tt.want) > 1e-12 {
				t.Errorf("value = %v, want %v", res.Value, tt.want)
			}
		})
	}
}

func TestEvalSource_Unbound(t *testing.T) {
	res, err := EvalSource(context.Background(), "<expr>", []byte("a + b * a"), EvalOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if res.Expr == nil {
		t.Error("parsed expression missing")
	}
	items := res.Bag.Items()
	// повторное "a" имеет другой span и тоже попадает в bag
	if len(items) != 3 {
		t.Fatalf("diagnostics = %v", items)
	}
	for _, d := range items {
		if d.Code != diag.EvalUnboundParam {
			t.Errorf("code = %v", d.Code)
		}
	}
	if items[1].Primary.Start != 4 {
		t.Errorf("second unbound at %d", items[1].Primary.Start)
	}
	if len(res.Params) != 2 || res.Params[0] != "a" || res.Params[1] != "b" {
		t.Errorf("params = %v, want [a b]", res.Params)
	}
}

func TestEvalSource_SyntaxError(t *testing.T) {
	res, err := EvalSource(context.Background(), "<expr>", []byte("(1 +"), EvalOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !res.Bag.HasErrors() || res.Expr != nil {
		t.Errorf("bag = %v expr = %v", res.Bag.Items(), res.Expr)
	}
}

func TestTokenize_Trace(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.qasm", []byte("reset q;"))

	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := Tokenize(ctx, path, TokenizeOptions{}); err != nil {
		t.Fatal(err)
	}

	points := 0
	var lexEnd *trace.Event
	for _, ev := range ring.Snapshot() {
		switch {
		case ev.Kind == trace.KindPoint && ev.Scope == trace.ScopeToken:
			points++
		case ev.Kind == trace.KindSpanEnd && ev.Name == "lex":
			lexEnd = &ev
		}
	}
	if points != 3 {
		t.Errorf("token points = %d, want 3", points)
	}
	if lexEnd == nil || lexEnd.Extra["tokens"] != "3" {
		t.Errorf("lex span end = %+v", lexEnd)
	}
}

func TestTokenizeFiles_Testdata(t *testing.T) {
	paths, err := ExpandInputs([]string{filepath.Join("..", "..", "testdata")})
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) < 3 {
		t.Fatalf("testdata files = %v", paths)
	}
	fs, results, err := TokenizeFiles(context.Background(), paths, TokenizeOptions{KeepComments: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if r.Failed() {
			t.Errorf("%s: %v", r.Path, r.Bag.Items())
		}
		if err := testkit.CheckTokenSpans(r.Tokens, fs.Get(r.FileID)); err != nil {
			t.Errorf("%s: %v", r.Path, err)
		}
	}
}
