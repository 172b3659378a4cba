// Package format prints syntax trees back to source text.
//
// Printing emits every token with its leading and trailing trivia, so a
// tree produced by the parser prints back to its exact input. Synthesized
// tokens carry their own spacing as trivia.
package format
