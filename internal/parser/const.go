package parser

import (
	"basedef/internal/ast"
	"basedef/internal/diag"
	"basedef/internal/token"
)

// parseConst handles `const a = 1, b: T = 2;` and the `let` form.
// Destructuring patterns are skipped; nothing can reference them by name here.
func (p *Parser) parseConst(exported bool) {
	kw := p.advance()
	for {
		if !p.at(token.Ident) {
			if p.atOr(token.LBrace, token.LBracket) {
				p.skipStatement()
				return
			}
			p.report(diag.SynExpectIdentifier, diag.SevError, p.diagnosticSpan(), "expected binding name")
			p.skipStatement()
			return
		}
		name := p.advance()
		c := ast.Const{
			Name:     name.Text,
			NameSpan: name.Span,
			Exported: exported,
			Mutable:  kw.Kind == token.KwLet,
			Span:     kw.Span.Cover(name.Span),
		}
		if p.at(token.Bang) {
			p.advance()
		}
		if p.at(token.Colon) {
			p.advance()
			p.skipType()
		}
		if p.at(token.Assign) {
			p.advance()
			c.Value = p.parseExpr()
			if e := p.file.Expr(c.Value); e != nil {
				c.Span = c.Span.Cover(e.Span)
			}
		}
		p.file.Consts = append(p.file.Consts, c)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.endStatement()
}

// endStatement accepts ';', or a line break / closing brace / EOF by ASI.
func (p *Parser) endStatement() {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.Semicolon:
		p.advance()
	case tok.NewlineBefore, tok.Kind == token.EOF, tok.Kind == token.RBrace:
	default:
		p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "expected ';' after declaration, found "+tok.Kind.String())
		p.skipStatement()
	}
}
