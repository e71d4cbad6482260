package lexer

import (
	"basedef/internal/token"
)

var singleOps = [utf8RuneSelf]token.Kind{
	'@': token.At,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	',': token.Comma,
	';': token.Semicolon,
	':': token.Colon,
	'?': token.Question,
	'!': token.Bang,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'<': token.Lt,
	'>': token.Gt,
	'|': token.Pipe,
	'&': token.Amp,
}

// scanOperatorOrPunct handles punctuation. Multi-char operators the parser
// does not care about collapse to Other.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	kind := token.Other
	switch {
	case b == '.':
		kind = token.Dot
		if lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) == '.' {
			lx.cursor.BumpN(2)
			kind = token.Ellipsis
		}
	case b == '=':
		switch lx.cursor.Peek() {
		case '>':
			lx.cursor.Bump()
			kind = token.Arrow
		case '=':
			// == и === — сравнения, парсеру не интересны
			for lx.cursor.Peek() == '=' {
				lx.cursor.Bump()
			}
		default:
			kind = token.Assign
		}
	case b < utf8RuneSelf && singleOps[b] != token.Invalid:
		kind = singleOps[b]
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
