package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Парсерные
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnclosedParen    Code = 2002
	SynUnclosedBracket  Code = 2003
	SynUnclosedBrace    Code = 2004
	SynExpectExpression Code = 2005
	SynExpectIdentifier Code = 2006
	SynExpectColon      Code = 2007
	SynTrailingInput    Code = 2008

	// Rewriter precision notes. Always SevInfo.
	RwInfo           Code = 3000
	RwFoldFallback   Code = 3001
	RwColumnFallback Code = 3002
	RwAnchorFallback Code = 3003

	// I/O
	IOLoadFileError Code = 4001

	// Поиск точек вызова в файле
	DrvInfo             Code = 5000
	DrvUnclosedAssert   Code = 5001
	DrvMissingCondition Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBracket:          "Unclosed bracket",
	SynUnclosedBrace:            "Unclosed brace",
	SynExpectExpression:         "Expected expression",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectColon:              "Expected ':'",
	SynTrailingInput:            "Unexpected input after expression",
	RwInfo:                      "Rewrite information",
	RwFoldFallback:              "Operator sequence captured as a whole",
	RwColumnFallback:            "Column computed from raw offset",
	RwAnchorFallback:            "Anchor not found, using node start",
	IOLoadFileError:             "I/O load file error",
	DrvInfo:                     "Driver information",
	DrvUnclosedAssert:           "Unterminated assertion invocation",
	DrvMissingCondition:         "Assertion without a condition",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RW%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("DRV%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
