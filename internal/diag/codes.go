package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexMalformedOperator  Code = 1003
	LexInvalidEncoding    Code = 1004
	LexInternalError      Code = 1005

	// Expression syntax
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynUnclosedParen   Code = 2002
	SynExpectOperand   Code = 2003
	SynTrailingTokens  Code = 2004

	// Evaluation
	EvalUnboundParam Code = 3001

	// I/O
	IOLoadFileError Code = 4001
	IODecodeError   Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string",
	LexMalformedOperator:  "Malformed operator",
	LexInvalidEncoding:    "Invalid text encoding",
	LexInternalError:      "Internal lexer error",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynUnclosedParen:      "Unclosed parenthesis",
	SynExpectOperand:      "Expected operand",
	SynTrailingTokens:     "Unexpected trailing input",
	EvalUnboundParam:      "Unbound parameter",
	IOLoadFileError:       "Failed to load file",
	IODecodeError:         "Failed to decode file",
}

// ID returns the stable identifier of the code, e.g. LEX1001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EVL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
