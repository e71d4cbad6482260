package parser

import (
	"basedef/internal/diag"
	"basedef/internal/source"
	"basedef/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
		p.prev = tok
	}
	return tok
}

// diagnosticSpan prefers the position right after the last token when the
// parser is stuck at EOF.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// expectName accepts an identifier or reserved word, as member names allow both.
func (p *Parser) expectName(msg string) (token.Token, bool) {
	if p.lx.Peek().IsName() {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	p.report(diag.SynExpectIdentifier, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// eatSemicolon consumes an optional ';'.
func (p *Parser) eatSemicolon() {
	if p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.quiet > 0 || p.opts.Reporter == nil {
		return false
	}
	if p.opts.Enough() {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// speculate runs fn with diagnostics muted. When fn returns false the lexer
// is rewound to where it was.
func (p *Parser) speculate(fn func() bool) bool {
	snap := p.lx.Snapshot()
	last, prev := p.lastSpan, p.prev
	p.quiet++
	ok := fn()
	p.quiet--
	if !ok {
		p.lx.Restore(snap)
		p.lastSpan, p.prev = last, prev
	}
	return ok
}

// peekSecond returns the token after the next one without consuming anything.
func (p *Parser) peekSecond() token.Token {
	var second token.Token
	snap := p.lx.Snapshot()
	p.lx.Next()
	second = p.lx.Peek()
	p.lx.Restore(snap)
	return second
}
