// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"powerassert/internal/format"
	"powerassert/internal/source"
	"powerassert/internal/syntax"
	"powerassert/internal/token"
)

// CheckTokenInvariants runs span invariants on lexer output:
// 1) spans are within file content bounds and point to the file
// 2) spans are ordered and do not overlap, trivia included
// 3) token and trivia text equal the bytes under their spans
func CheckTokenInvariants(toks []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var pos uint32
	check := func(what string, sp source.Span, text string) error {
		if sp.File != sf.ID {
			return fmt.Errorf("%s %q points to file %d, want %d", what, text, sp.File, sf.ID)
		}
		if sp.End < sp.Start || sp.End > lenContent {
			return fmt.Errorf("%s %q span %v out of bounds (len %d)", what, text, sp, lenContent)
		}
		if sp.Start < pos {
			return fmt.Errorf("%s %q at %v overlaps previous end %d", what, text, sp, pos)
		}
		if got := string(sf.Content[sp.Start:sp.End]); got != text {
			return fmt.Errorf("%s text %q differs from source %q at %v", what, text, got, sp)
		}
		pos = sp.End
		return nil
	}
	for _, tok := range toks {
		for _, tv := range tok.Leading {
			if err := check("leading trivia", tv.Span, tv.Text); err != nil {
				return err
			}
		}
		if err := check(tok.Kind.String(), tok.Span, tok.Text); err != nil {
			return err
		}
		for _, tv := range tok.Trailing {
			if err := check("trailing trivia", tv.Span, tv.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

// CheckTreeInvariants runs invariants on a cleanly parsed tree:
// 1) every token of the tree satisfies CheckTokenInvariants
// 2) printing the tree reproduces the file byte for byte
func CheckTreeInvariants(n *syntax.Node, sf *source.File) error {
	if n == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	ptrs := syntax.Tokens(n)
	toks := make([]token.Token, len(ptrs))
	for i, p := range ptrs {
		toks[i] = *p
	}
	if err := CheckTokenInvariants(toks, sf); err != nil {
		return err
	}
	if got := format.Print(n); got != string(sf.Content) {
		return fmt.Errorf("round trip mismatch:\n got: %q\nwant: %q", got, sf.Content)
	}
	return nil
}

// CheckColumns verifies that every column lies inside the display width of
// line shifted by offset.
func CheckColumns(columns []int, line string, offset int) error {
	width := source.StringWidth(line) + offset
	for i, c := range columns {
		if c < offset || c > width {
			return fmt.Errorf("column %d = %d outside [%d, %d]", i, c, offset, width)
		}
	}
	return nil
}
