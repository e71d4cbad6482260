package token

import (
	"basedef/internal/source"
)

// Token represents a single source token with its location.
// Text is the raw source slice, except for identifiers, which are NFC-normalised.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// NewlineBefore is set when a line break separates the token from the
	// previous one. The parser uses it for automatic semicolon insertion.
	NewlineBefore bool
}

// IsLiteral reports whether the token is a string, number, boolean or null literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case StringLit, TemplateLit, NumberLit, KwTrue, KwFalse, KwNull, KwUndefined:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwImport && t.Kind <= KwUndefined
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsContextual reports whether t is the identifier word (from, as, get...).
func (t Token) IsContextual(word string) bool {
	return t.Kind == Ident && t.Text == word
}

// IsName reports whether the token can name a member or object key:
// identifiers and reserved words are both allowed there.
func (t Token) IsName() bool {
	return t.Kind == Ident || t.IsKeyword()
}
