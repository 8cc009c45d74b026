// Package token defines lexical token kinds and the keyword table for OpenQASM.
// Invariants:
//   - Token.Span points into the original source buffer (offset + length in bytes).
//   - Payload fields (Real, UInt, Text, Raw) are copies; a token never aliases
//     the source buffer, so the buffer may be released once scanning is done.
//   - Exactly one Kind is active per token and only the payload field that
//     belongs to it is meaningful.
//   - Reserved words, pi, U, CX and the builtin functions are recognised by an
//     exact, case-sensitive lookup of a whole identifier run.
package token
