package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (including `$0` shorthand names).
	Ident
	IntLit    // 123, 0x1F
	FloatLit  // 1.5, 1e3
	StringLit // "..."
	KwTrue    // true
	KwFalse   // false
	KwNil     // nil

	// PrefixOp is an operator bound only to its right operand: -x, !x.
	PrefixOp
	// BinaryOp is an infix operator: a + b, a == b.
	BinaryOp
	// PostfixOp is a custom postfix operator other than ! and ?.
	PostfixOp
	// OptionalMark is a postfix ? (optional chaining).
	OptionalMark
	// ExclaimMark is a postfix ! (force unwrap).
	ExclaimMark
	// Question is the ternary ?.
	Question

	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Colon     // :
	Semicolon // ;
	Dot       // .
	Backslash // \ (key path)
	Hash      // # (macro expansion)
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Ident:        "Ident",
	IntLit:       "IntLit",
	FloatLit:     "FloatLit",
	StringLit:    "StringLit",
	KwTrue:       "KwTrue",
	KwFalse:      "KwFalse",
	KwNil:        "KwNil",
	PrefixOp:     "PrefixOp",
	BinaryOp:     "BinaryOp",
	PostfixOp:    "PostfixOp",
	OptionalMark: "OptionalMark",
	ExclaimMark:  "ExclaimMark",
	Question:     "Question",
	LParen:       "LParen",
	RParen:       "RParen",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
	LBrace:       "LBrace",
	RBrace:       "RBrace",
	Comma:        "Comma",
	Colon:        "Colon",
	Semicolon:    "Semicolon",
	Dot:          "Dot",
	Backslash:    "Backslash",
	Hash:         "Hash",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
