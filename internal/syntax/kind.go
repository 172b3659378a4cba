package syntax

import "fmt"

// Kind is the closed set of syntax node kinds.
type Kind uint8

const (
	Token Kind = iota // raw token leaf

	IntLit
	FloatLit
	BoolLit
	StringLit
	NilLit
	Ident

	BinaryOperator  // operator reference inside a Sequence or Infix
	TernaryOperator // `? mid :` element of an unfolded Sequence

	Member        // base.name, .name
	Subscript     // base[args]
	Call          // callee(args) trailing-closure?
	ArgList       // Arg (, Arg)*
	Arg           // label: expr | expr
	Prefix        // op operand
	ForceUnwrap   // operand!
	OptionalChain // operand?
	Infix         // lhs op rhs
	Ternary       // cond ? a : b
	Tuple         // (a, b) and parenthesised expressions
	Array         // [a, b]
	Dictionary    // [k: v] and [:]
	DictElement   // k: v
	KeyPath       // \Type.a.b, \.a
	MacroExpansion
	Closure  // { ... } with an opaque body
	Sequence // unfolded operand/operator run

	kindCount
)

var kindNames = [...]string{
	Token:           "Token",
	IntLit:          "IntLit",
	FloatLit:        "FloatLit",
	BoolLit:         "BoolLit",
	StringLit:       "StringLit",
	NilLit:          "NilLit",
	Ident:           "Ident",
	BinaryOperator:  "BinaryOperator",
	TernaryOperator: "TernaryOperator",
	Member:          "Member",
	Subscript:       "Subscript",
	Call:            "Call",
	ArgList:         "ArgList",
	Arg:             "Arg",
	Prefix:          "Prefix",
	ForceUnwrap:     "ForceUnwrap",
	OptionalChain:   "OptionalChain",
	Infix:           "Infix",
	Ternary:         "Ternary",
	Tuple:           "Tuple",
	Array:           "Array",
	Dictionary:      "Dictionary",
	DictElement:     "DictElement",
	KeyPath:         "KeyPath",
	MacroExpansion:  "MacroExpansion",
	Closure:         "Closure",
	Sequence:        "Sequence",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsLiteral reports whether k is one of the literal kinds.
func (k Kind) IsLiteral() bool {
	return k >= IntLit && k <= NilLit
}

// MarshalText encodes k by name, so JSON and msgpack reports stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i) //nolint:gosec // kindNames is far smaller than 256
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", text)
}
