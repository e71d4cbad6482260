package parser

import (
	"basedef/internal/ast"
	"basedef/internal/diag"
	"basedef/internal/token"
)

// parseDecorators reads consecutive `@...` decorators.
func (p *Parser) parseDecorators() []ast.Decorator {
	var decs []ast.Decorator
	for p.at(token.At) {
		if d, ok := p.parseDecorator(); ok {
			decs = append(decs, d)
		}
	}
	return decs
}

// parseDecorator handles `@Name`, `@Name(args)` and `@ns.Name(args)`.
// For deeper chains the qualifier keeps everything before the last dot.
func (p *Parser) parseDecorator() (ast.Decorator, bool) {
	at := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected decorator name after '@'")
	if !ok {
		return ast.Decorator{}, false
	}
	d := ast.Decorator{Name: name.Text, NameSpan: name.Span, Span: at.Span.Cover(name.Span)}
	for p.at(token.Dot) {
		p.advance()
		next, ok := p.expectName("expected name after '.'")
		if !ok {
			return ast.Decorator{}, false
		}
		if d.Qualifier == "" {
			d.Qualifier = d.Name
		} else {
			d.Qualifier += "." + d.Name
		}
		d.Name, d.NameSpan = next.Text, next.Span
		d.Span = d.Span.Cover(next.Span)
	}
	if p.at(token.LParen) {
		d.Called = true
		args, end, ok := p.parseArgs()
		d.Args = args
		d.Span = d.Span.Cover(end)
		if !ok {
			return d, true
		}
	}
	return d, true
}
