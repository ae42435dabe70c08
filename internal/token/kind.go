package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input; it carries the file's final trivia.
	EOF

	// Ident represents an identifier token.
	Ident
	// StringLit is a single or double quoted string literal.
	StringLit
	// NumberLit is a numeric literal.
	NumberLit
	// JsxText is raw text between JSX tags.
	JsxText

	// KwTypeof represents the 'typeof' keyword.
	KwTypeof
	// KwVoid represents the 'void' keyword.
	KwVoid
	// KwDelete represents the 'delete' keyword.
	KwDelete
	// KwTrue represents the 'true' keyword.
	KwTrue
	// KwFalse represents the 'false' keyword.
	KwFalse
	// KwNull represents the 'null' keyword.
	KwNull
	// KwConst represents the 'const' keyword.
	KwConst
	// KwLet represents the 'let' keyword.
	KwLet
	// KwVar represents the 'var' keyword.
	KwVar

	Plus             // +
	Minus            // -
	Star             // *
	Slash            // /
	Percent          // %
	Bang             // !
	Tilde            // ~
	Assign           // =
	EqEq             // ==
	EqEqEq           // ===
	BangEq           // !=
	BangEqEq         // !==
	Lt               // <
	LtEq             // <=
	Gt               // >
	GtEq             // >=
	AndAnd           // &&
	OrOr             // ||
	QuestionQuestion // ??
	Question         // ?
	Colon            // :
	Semicolon        // ;
	Comma            // ,
	Dot              // .
	LParen           // (
	RParen           // )
	LBrace           // {
	RBrace           // }
	LBracket         // [
	RBracket         // ]

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Ident:            "Ident",
	StringLit:        "StringLit",
	NumberLit:        "NumberLit",
	JsxText:          "JsxText",
	KwTypeof:         "typeof",
	KwVoid:           "void",
	KwDelete:         "delete",
	KwTrue:           "true",
	KwFalse:          "false",
	KwNull:           "null",
	KwConst:          "const",
	KwLet:            "let",
	KwVar:            "var",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	Slash:            "/",
	Percent:          "%",
	Bang:             "!",
	Tilde:            "~",
	Assign:           "=",
	EqEq:             "==",
	EqEqEq:           "===",
	BangEq:           "!=",
	BangEqEq:         "!==",
	Lt:               "<",
	LtEq:             "<=",
	Gt:               ">",
	GtEq:             ">=",
	AndAnd:           "&&",
	OrOr:             "||",
	QuestionQuestion: "??",
	Question:         "?",
	Colon:            ":",
	Semicolon:        ";",
	Comma:            ",",
	Dot:              ".",
	LParen:           "(",
	RParen:           ")",
	LBrace:           "{",
	RBrace:           "}",
	LBracket:         "[",
	RBracket:         "]",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Text returns the fixed spelling of keyword and punctuation kinds, or ""
// for kinds whose text varies (identifiers, literals, JSX text).
func (k Kind) Text() string {
	if k.IsKeyword() || k.IsPunctOrOp() {
		return kindNames[k]
	}
	return ""
}

// IsKeyword reports whether the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwTypeof && k <= KwVar
}

// IsPunctOrOp reports whether the kind is punctuation or an operator.
func (k Kind) IsPunctOrOp() bool {
	return k >= Plus && k < kindCount
}

// IsLiteral reports whether the kind is a string, number, boolean or null literal.
func (k Kind) IsLiteral() bool {
	switch k {
	case StringLit, NumberLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}
