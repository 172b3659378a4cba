package fold

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Assoc is operator associativity.
type Assoc uint8

const (
	AssocLeft Assoc = iota
	AssocRight
	AssocNone
)

func (a Assoc) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	case AssocNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseAssoc converts "left"/"right"/"none" to Assoc.
func ParseAssoc(s string) (Assoc, error) {
	switch strings.ToLower(s) {
	case "left", "":
		return AssocLeft, nil
	case "right":
		return AssocRight, nil
	case "none":
		return AssocNone, nil
	default:
		return AssocLeft, fmt.Errorf("invalid associativity: %q (expected: left|right|none)", s)
	}
}

// Operator describes an infix operator. Operators with equal Precedence
// belong to one precedence group.
type Operator struct {
	Precedence int
	Assoc      Assoc
}

// Таблица приоритетов. Чем больше число, тем выше приоритет
const (
	precAssignment     = 90  // = += -= *= /= %= ...
	precTernary        = 100 // ?: (правоассоциативно)
	precDisjunction    = 110 // ||
	precConjunction    = 120 // &&
	precComparison     = 130 // == != < <= > >= === !== ~= (неассоциативно)
	precNilCoalescing  = 131 // ?? (правоассоциативно)
	precRangeFormation = 135 // ... ..< (неассоциативно)
	precAddition       = 140 // + - | ^ &+ &-
	precMultiplication = 150 // * / % & &*
	precBitwiseShift   = 160 // << >>
)

// Table maps operator spellings to their precedence and associativity.
// A Table is not safe for concurrent modification; readers may share it.
type Table struct {
	infix   map[string]Operator
	prefix  map[string]struct{}
	ternary Operator
}

// NewTable returns an empty table; the ternary operator keeps its default
// precedence.
func NewTable() *Table {
	return &Table{
		infix:   make(map[string]Operator),
		prefix:  make(map[string]struct{}),
		ternary: Operator{Precedence: precTernary, Assoc: AssocRight},
	}
}

// DefaultTable returns a fresh table with the standard operator ladder.
func DefaultTable() *Table {
	t := NewTable()
	def := func(prec int, assoc Assoc, ops ...string) {
		for _, op := range ops {
			t.Define(op, Operator{Precedence: prec, Assoc: assoc})
		}
	}
	def(precAssignment, AssocRight, "=", "+=", "-=", "*=", "/=", "%=", "<<=", ">>=", "&=", "|=", "^=")
	def(precDisjunction, AssocLeft, "||")
	def(precConjunction, AssocLeft, "&&")
	def(precComparison, AssocNone, "==", "!=", "<", "<=", ">", ">=", "===", "!==", "~=")
	def(precNilCoalescing, AssocRight, "??")
	def(precRangeFormation, AssocNone, "...", "..<")
	def(precAddition, AssocLeft, "+", "-", "|", "^", "&+", "&-")
	def(precMultiplication, AssocLeft, "*", "/", "%", "&", "&*")
	def(precBitwiseShift, AssocNone, "<<", ">>")

	for _, op := range []string{"-", "+", "!", "~", "..<", "..."} {
		t.DefinePrefix(op)
	}
	return t
}

// Define adds or replaces an infix operator.
func (t *Table) Define(text string, op Operator) {
	t.infix[text] = op
}

// DefinePrefix marks text as a prefix operator.
func (t *Table) DefinePrefix(text string) {
	t.prefix[text] = struct{}{}
}

// Infix looks up an infix operator.
func (t *Table) Infix(text string) (Operator, bool) {
	op, ok := t.infix[text]
	return op, ok
}

// IsPrefix reports whether text is a known prefix operator.
func (t *Table) IsPrefix(text string) bool {
	_, ok := t.prefix[text]
	return ok
}

// Ternary returns the precedence of the conditional operator.
func (t *Table) Ternary() Operator {
	return t.ternary
}

// Fingerprint returns a stable description of the table, used to key
// cached rewrites.
func (t *Table) Fingerprint() string {
	ops := slices.Sorted(maps.Keys(t.infix))
	var sb strings.Builder
	for _, text := range ops {
		op := t.infix[text]
		fmt.Fprintf(&sb, "%s %d %s;", text, op.Precedence, op.Assoc)
	}
	sb.WriteString("|")
	for _, text := range slices.Sorted(maps.Keys(t.prefix)) {
		sb.WriteString(text)
		sb.WriteString(";")
	}
	return sb.String()
}
