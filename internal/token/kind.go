package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token. The lexer never emits it.
	Invalid Kind = iota

	// Real is a floating point literal, payload in Token.Real.
	Real
	// UInt is an unsigned integer literal, payload in Token.UInt.
	UInt
	// Ident is an identifier, payload in Token.Text.
	Ident
	// String is a string literal without quotes, payload in Token.Text.
	String
	// Comment is a line comment without the leading // and the newline,
	// payload in Token.Raw.
	Comment

	KwOpenQASM // OPENQASM
	KwInclude  // include
	KwQreg     // qreg
	KwCreg     // creg
	KwBarrier  // barrier
	KwGate     // gate
	KwIf       // if
	KwMeasure  // measure
	KwOpaque   // opaque
	KwReset    // reset

	// Pi is the builtin constant.
	Pi // pi

	// GateU is the builtin single-qubit gate.
	GateU // U
	// GateCX is the builtin controlled-not gate.
	GateCX // CX

	FnSin  // sin
	FnCos  // cos
	FnTan  // tan
	FnExp  // exp
	FnLn   // ln
	FnSqrt // sqrt

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Caret     // ^
	Comma     // ,
	Semicolon // ;
	EqEq      // ==
	Arrow     // ->

	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]

	kindCount
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	Real:       "Real",
	UInt:       "UInt",
	Ident:      "Ident",
	String:     "String",
	Comment:    "Comment",
	KwOpenQASM: "KwOpenQASM",
	KwInclude:  "KwInclude",
	KwQreg:     "KwQreg",
	KwCreg:     "KwCreg",
	KwBarrier:  "KwBarrier",
	KwGate:     "KwGate",
	KwIf:       "KwIf",
	KwMeasure:  "KwMeasure",
	KwOpaque:   "KwOpaque",
	KwReset:    "KwReset",
	Pi:         "Pi",
	GateU:      "GateU",
	GateCX:     "GateCX",
	FnSin:      "FnSin",
	FnCos:      "FnCos",
	FnTan:      "FnTan",
	FnExp:      "FnExp",
	FnLn:       "FnLn",
	FnSqrt:     "FnSqrt",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Caret:      "Caret",
	Comma:      "Comma",
	Semicolon:  "Semicolon",
	EqEq:       "EqEq",
	Arrow:      "Arrow",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is one of the reserved statement words.
func (k Kind) IsKeyword() bool { return k >= KwOpenQASM && k <= KwReset }

// IsBuiltin reports whether k is pi, a builtin gate or a builtin function.
func (k Kind) IsBuiltin() bool { return k >= Pi && k <= FnSqrt }

// IsFunc reports whether k names one of the unary transcendental functions.
func (k Kind) IsFunc() bool { return k >= FnSin && k <= FnSqrt }

// IsPunct reports whether k is an operator, separator or bracket.
func (k Kind) IsPunct() bool { return k >= Plus && k <= RBracket }

// HasPayload reports whether tokens of kind k carry a decoded value.
func (k Kind) HasPayload() bool { return k >= Real && k <= Comment }
