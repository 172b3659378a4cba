// Package diag defines the diagnostic model shared by the lexer, the parser
// and the capture rewriter.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     lexing, parsing and rewriting.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Severities
//
// The rewriter never fails. When it has to degrade precision (a precedence
// fold that cannot be resolved, a source prefix that cannot be decoded, an
// anchor that cannot be found) it reports a SevInfo diagnostic from the RW
// range and carries on. Lexer and parser problems are SevError, but callers
// still receive a best-effort tree.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter to decouple emission from storage. Use
// NewReportBuilder (or ReportError/ReportInfo) and chain WithNote before
// calling Emit, or call Reporter.Report directly. BagReporter aggregates
// diagnostics into a Bag, which supports sorting and deduplication.
// FormatShort renders a bag into one line per diagnostic.
package diag
