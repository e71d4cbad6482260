package lexer

import (
	"unicode/utf8"

	"basedef/internal/diag"
	"basedef/internal/token"
)

// scanString scans '...', "..." and `...`. Escapes are validated later by
// Unquote; here we only need to find the closing quote.
// Quoted strings may not span lines; template literals may.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	kind := token.StringLit
	if quote == '`' {
		kind = token.TemplateLit
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == quote:
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case b == '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
		case b == '\n' && quote != '`':
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case b >= utf8RuneSelf:
			lx.scanStringRune()
		default:
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanStringRune consumes one multi-byte rune. A run of bytes that is not
// valid UTF-8 is consumed whole and reported once.
func (lx *Lexer) scanStringRune() {
	if r, size := lx.cursor.PeekRune(); r != utf8.RuneError || size != 1 {
		lx.cursor.BumpN(size)
		return
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		if r, size := lx.cursor.PeekRune(); r != utf8.RuneError || size != 1 {
			break
		}
		lx.cursor.Bump()
	}
	lx.warn(diag.LexInvalidUTF8, lx.cursor.SpanFrom(start), "invalid UTF-8 in string literal; bytes are replaced with U+FFFD")
}
