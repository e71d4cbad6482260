package token

var keywords = map[string]Kind{
	"import":     KwImport,
	"export":     KwExport,
	"const":      KwConst,
	"let":        KwLet,
	"class":      KwClass,
	"extends":    KwExtends,
	"implements": KwImplements,
	"abstract":   KwAbstract,
	"true":       KwTrue,
	"false":      KwFalse,
	"null":       KwNull,
	"undefined":  KwUndefined,
}

// LookupKeyword returns the keyword kind for ident. Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
