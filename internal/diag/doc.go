// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Producers (lexer, parser, the transform orchestrator, the driver) emit
// findings through a Reporter; BagReporter collects them into a Bag which can
// be sorted, deduplicated and merged deterministically. Rendering lives in
// internal/diagfmt.
//
// Codes are grouped by numeric range and carry a stable textual ID:
//
//   - 1000..1999 LEX – lexical errors
//   - 2000..2999 SYN – syntax errors
//   - 3000..3999 SEM – class analysis (decorators, aliases, constants)
//   - 4000..4999 IO  – file access
//   - 5000..5999 PRJ – project manifest
//   - 6000..6999 OBS – observability (timings)
//
// A class-scoped failure is always reported as a Diagnostic attached to the
// class or decorator span; it never aborts the compilation of other classes.
package diag
