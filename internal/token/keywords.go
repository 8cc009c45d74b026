package token

// keywords maps every fixed spelling to its kind. Identifier runs and single
// punctuation bytes are looked up whole; there is no prefix matching.
var keywords = map[string]Kind{
	"OPENQASM": KwOpenQASM,
	"include":  KwInclude,
	"qreg":     KwQreg,
	"creg":     KwCreg,
	"barrier":  KwBarrier,
	"gate":     KwGate,
	"if":       KwIf,
	"measure":  KwMeasure,
	"opaque":   KwOpaque,
	"reset":    KwReset,

	"pi": Pi,

	"U":  GateU,
	"CX": GateCX,

	"sin":  FnSin,
	"cos":  FnCos,
	"tan":  FnTan,
	"exp":  FnExp,
	"ln":   FnLn,
	"sqrt": FnSqrt,

	"+":  Plus,
	"-":  Minus,
	"*":  Star,
	"/":  Slash,
	"^":  Caret,
	",":  Comma,
	";":  Semicolon,
	"==": EqEq,
	"->": Arrow,

	"(": LParen,
	")": RParen,
	"{": LBrace,
	"}": RBrace,
	"[": LBracket,
	"]": RBracket,
}

// spellings is the inverse of keywords.
var spellings = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords))
	for s, k := range keywords {
		out[k] = s
	}
	return out
}()

// LookupKeyword returns the kind for an exact, case-sensitive spelling.
func LookupKeyword(lexeme string) (Kind, bool) {
	k, ok := keywords[lexeme]
	return k, ok
}

// MatchKeyword is LookupKeyword over a byte slice. The conversion in the map
// index does not allocate.
func MatchKeyword(b []byte) (Kind, bool) {
	k, ok := keywords[string(b)]
	return k, ok
}

// Spelling returns the fixed source spelling of k, or "" for payload kinds.
func Spelling(k Kind) string {
	return spellings[k]
}
