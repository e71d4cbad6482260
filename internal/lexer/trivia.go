package lexer

import (
	"basedef/internal/diag"
)

// skipTrivia пропускает пробелы, переводы строк и комментарии.
// Незакрытый блочный комментарий репортится и обрезается на EOF.
// Returns true when a line break was skipped.
func (lx *Lexer) skipTrivia() (newline bool) {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\n':
			newline = true
			lx.cursor.Bump()
		case b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v':
			lx.cursor.Bump()
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			start := lx.cursor.Mark()
			lx.cursor.BumpN(2)
			closed := false
			for !lx.cursor.EOF() {
				if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
					lx.cursor.BumpN(2)
					closed = true
					break
				}
				if lx.cursor.Bump() == '\n' {
					newline = true
				}
			}
			if !closed {
				lx.report(diag.LexUnterminatedBlock, lx.cursor.SpanFrom(start), "unterminated block comment")
			}
		default:
			return newline
		}
	}
	return newline
}
