// Package diag defines the diagnostic model shared by the lexer, the
// expression parser and the evaluator driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     such as LEX1001.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span (file handle, byte offset, length) of the
//     offending input.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// Phases report through a diag.Reporter so that emission is decoupled from
// storage. BagReporter aggregates diagnostics into a Bag, which supports a
// capacity limit, sorting and deduplication. DedupReporter filters repeats
// when several phases see the same problem.
//
// Package diag does not perform formatting beyond the one-line short form;
// rendering lives in internal/diagfmt.
package diag
