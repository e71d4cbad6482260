package lexer

import (
	"golang.org/x/text/unicode/norm"

	"basedef/internal/diag"
	"basedef/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет его через LookupKeyword.
// Non-ASCII identifiers are NFC-normalised so that member names written with
// combining sequences compare equal to their precomposed forms.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	ascii := true
	first := true
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) || (first && isDec(b)) {
				break
			}
			lx.cursor.Bump()
			first = false
			continue
		}
		r, sz := lx.cursor.PeekRune()
		ok := isIdentContinueRune(r)
		if first {
			ok = isIdentStartRune(r)
		}
		if !ok {
			break
		}
		ascii = false
		lx.cursor.BumpN(sz)
		first = false
	}

	if first {
		// ни одного символа идентификатора: неизвестный символ
		_, sz := lx.cursor.PeekRune()
		lx.cursor.BumpN(max(sz, 1))
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if !ascii {
		text = norm.NFC.String(text)
	}
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
