package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectExpression   Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectSemicolon    Code = 2004
	SynUnclosedParen      Code = 2005
	SynUnclosedJsxElement Code = 2006
	SynMismatchedJsxTag   Code = 2007
	SynExpectJsxName      Code = 2008

	// Style rules
	StyleInfo                  Code = 3000
	StyleUseSelfClosingElement Code = 3001

	// Suspicious-code rules
	SuspiciousInfo           Code = 4000
	SuspiciousUseValidTypeof Code = 4001

	// I/O and configuration
	IOLoadFileError  Code = 5001
	IOWriteFileError Code = 5002
	IOConfigError    Code = 5003

	// Analyzer
	AnaInfo        Code = 6000
	AnaRuleFailed  Code = 6001
	AnaUnknownRule Code = 6002
	AnaTimings     Code = 6003
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Invalid number literal",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectExpression:         "Expected expression",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectSemicolon:          "Expected semicolon",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedJsxElement:       "Unclosed JSX element",
		SynMismatchedJsxTag:         "Mismatched JSX closing tag",
		SynExpectJsxName:            "Expected JSX element name",
		StyleInfo:                   "Style information",
		StyleUseSelfClosingElement:  "Element without children should be self-closing",
		SuspiciousInfo:              "Suspicious code information",
		SuspiciousUseValidTypeof:    "Invalid typeof comparison",
		IOLoadFileError:             "I/O load file error",
		IOWriteFileError:            "I/O write file error",
		IOConfigError:               "Configuration error",
		AnaInfo:                     "Analyzer information",
		AnaRuleFailed:               "Rule failed",
		AnaUnknownRule:              "Unknown rule",
		AnaTimings:                  "Analyzer timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("STY%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("SUS%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("ANA%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
