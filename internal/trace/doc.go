// Package trace is the structured logging layer of the openqasm tools.
//
// Events are spans (begin/end pairs) and points, tagged with a scope that says
// how coarse they are. The level picked on the command line decides which
// scopes reach the output.
//
// # Usage
//
//	openqasm tokenize --trace=- --trace-level=detail circuits/*.qasm
//
// # Tracers
//
//   - Nop: zero-overhead tracer when tracing is off
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for dumping after a crash
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
//   - LevelPhase: ScopeDriver and ScopePass (load, lex, parse, eval)
//   - LevelDetail: adds ScopeFile, one span per input file
//   - LevelDebug: adds ScopeToken, per-token points
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "lex")
//	defer span.End("")
package trace
