package parser

import (
	"basedef/internal/diag"
	"basedef/internal/token"
)

func isOpen(k token.Kind) bool {
	return k == token.LParen || k == token.LBracket || k == token.LBrace
}

func isClose(k token.Kind) bool {
	return k == token.RParen || k == token.RBracket || k == token.RBrace
}

// skipBalanced consumes a bracketed group starting at the current open token.
func (p *Parser) skipBalanced() bool {
	open := p.advance()
	depth := 1
	for depth > 0 {
		tok := p.lx.Peek()
		switch {
		case tok.Kind == token.EOF:
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed "+open.Kind.String())
			return false
		case isOpen(tok.Kind):
			depth++
		case isClose(tok.Kind):
			depth--
		}
		p.advance()
	}
	return true
}

// skipAngles consumes a `<...>` type parameter or argument list.
func (p *Parser) skipAngles() {
	p.advance() // <
	depth := 1
	for depth > 0 && !p.at(token.EOF) {
		switch tok := p.lx.Peek(); {
		case isOpen(tok.Kind):
			p.skipBalanced()
			continue
		case tok.Kind == token.Lt:
			depth++
		case tok.Kind == token.Gt:
			depth--
		case isClose(tok.Kind) || tok.Kind == token.Semicolon:
			return
		}
		p.advance()
	}
}

func continuesType(k token.Kind) bool {
	switch k {
	case token.Pipe, token.Amp, token.Arrow, token.Comma, token.Colon, token.Dot, token.Question, token.Lt:
		return true
	}
	return false
}

// skipType consumes a type annotation. It stops at depth 0 before '=', ';',
// ',', a closing bracket, a body '{', or a line break that cannot continue
// the type.
func (p *Parser) skipType() {
	first := true
	for {
		tok := p.lx.Peek()
		switch {
		case tok.Kind == token.EOF, tok.Kind == token.Assign, tok.Kind == token.Semicolon,
			tok.Kind == token.Comma, isClose(tok.Kind):
			return
		case !first && tok.NewlineBefore && !continuesType(p.prev.Kind) && !continuesType(tok.Kind) && tok.Kind != token.Gt:
			return
		case !first && tok.Kind == token.LBrace && !continuesType(p.prev.Kind):
			// `get x(): T { ... }` — тело метода, не object type
			return
		case tok.Kind == token.Arrow && p.prev.Kind != token.RParen:
			// return type of an arrow function ends here
			return
		case isOpen(tok.Kind):
			p.skipBalanced()
		case tok.Kind == token.Lt:
			p.skipAngles()
		default:
			p.advance()
		}
		first = false
	}
}

func startsItem(tok token.Token) bool {
	switch tok.Kind {
	case token.KwImport, token.KwExport, token.KwClass, token.KwAbstract, token.At, token.KwConst, token.KwLet:
		return true
	}
	return false
}

// skipStatement — восстановление на верхнем уровне: крутим до ';' на нулевой
// глубине, до '}' закрывающего блок в конце строки, или до начала следующего item.
func (p *Parser) skipStatement() {
	consumed := false
	for {
		tok := p.lx.Peek()
		switch {
		case tok.Kind == token.EOF:
			return
		case consumed && tok.NewlineBefore && startsItem(tok):
			return
		case tok.Kind == token.Semicolon:
			p.advance()
			return
		case isOpen(tok.Kind):
			closed := p.skipBalanced()
			if !closed {
				return
			}
			if tok.Kind == token.LBrace {
				next := p.lx.Peek()
				if next.NewlineBefore || next.Kind == token.EOF || next.Kind == token.Semicolon {
					p.eatSemicolon()
					return
				}
			}
		default:
			p.advance()
		}
		consumed = true
	}
}

// skipMember recovers inside a class body: up to ';' or the start of the next line.
func (p *Parser) skipMember() {
	consumed := false
	for {
		tok := p.lx.Peek()
		switch {
		case tok.Kind == token.EOF, tok.Kind == token.RBrace:
			return
		case consumed && tok.NewlineBefore:
			return
		case tok.Kind == token.Semicolon:
			p.advance()
			return
		case isOpen(tok.Kind):
			p.skipBalanced()
		default:
			p.advance()
		}
		consumed = true
	}
}
