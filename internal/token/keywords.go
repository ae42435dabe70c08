package token

var keywords = map[string]Kind{
	"typeof": KwTypeof,
	"void":   KwVoid,
	"delete": KwDelete,
	"true":   KwTrue,
	"false":  KwFalse,
	"null":   KwNull,
	"const":  KwConst,
	"let":    KwLet,
	"var":    KwVar,
}

// LookupKeyword reports the keyword kind for ident. Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
