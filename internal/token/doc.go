// Package token defines lexical token kinds and trivia for assertion expressions.
// Invariants:
//   - Token.Text is exactly the source slice covered by Token.Span.
//   - Synthesized tokens (built by the rewriter) have an empty Span and a
//     non-empty Text.
//   - Whitespace and comments never appear in the token stream; they are
//     attached as Leading/Trailing trivia so printing tokens in order with
//     their trivia reproduces the source.
//   - Operators are classified by whitespace binding (prefix, postfix,
//     binary) while lexing; the parser never re-inspects whitespace.
package token
