// Package trace records what the compiler does: driver runs, passes, files
// and classes, as spans written to a text or NDJSON stream.
//
// Enable it from the CLI:
//
//	basedef compile --trace=- --trace-level=detail src/
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: point events for failures only
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: plus one span per file
//   - LevelDebug: plus one span per class and handler
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:src/a.ts")
//	defer span.End("")
package trace
