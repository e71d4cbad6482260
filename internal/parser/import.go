package parser

import (
	"basedef/internal/ast"
	"basedef/internal/diag"
	"basedef/internal/lexer"
	"basedef/internal/source"
	"basedef/internal/token"
)

// parseImport handles the ES import forms:
//
//	import 'side-effect';
//	import D from 'm';
//	import * as ns from 'm';
//	import {A, B as C} from 'm';
//	import D, {A} from 'm';
//	import type {T} from 'm';
func (p *Parser) parseImport() {
	start := p.advance().Span // import
	imp := ast.Import{}

	if p.atWord("type") {
		next := p.peekSecond()
		if !next.IsContextual("from") && next.Kind != token.Comma {
			p.advance()
		}
	}

	if p.at(token.StringLit) {
		p.finishImport(&imp, start)
		return
	}

	if p.at(token.Ident) && !p.atWord("from") {
		tok := p.advance()
		imp.Specs = append(imp.Specs, ast.ImportSpec{Name: "default", Local: tok.Text, Span: tok.Span})
		if !p.at(token.Comma) {
			p.expectFrom(&imp, start)
			return
		}
		p.advance()
	}

	switch {
	case p.at(token.Star):
		p.advance()
		if !p.atWord("as") {
			p.report(diag.SynUnexpectedToken, diag.SevError, p.diagnosticSpan(), "expected 'as' after '*' in import")
			p.skipStatement()
			return
		}
		p.advance()
		ns, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected namespace name")
		if !ok {
			p.skipStatement()
			return
		}
		imp.Namespace = ns.Text
	case p.at(token.LBrace):
		if !p.parseImportSpecs(&imp) {
			p.skipStatement()
			return
		}
	}
	p.expectFrom(&imp, start)
}

func (p *Parser) parseImportSpecs(imp *ast.Import) bool {
	p.advance() // {
	for !p.at(token.RBrace) {
		if p.atWord("type") && p.peekSecond().IsName() {
			p.advance()
		}
		name, ok := p.expectName("expected imported name")
		if !ok {
			return false
		}
		spec := ast.ImportSpec{Name: name.Text, Local: name.Text, Span: name.Span}
		if p.atWord("as") {
			p.advance()
			local, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected local name after 'as'")
			if !ok {
				return false
			}
			spec.Local = local.Text
			spec.Span = name.Span.Cover(local.Span)
		}
		imp.Specs = append(imp.Specs, spec)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	_, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close import list")
	return ok
}

func (p *Parser) expectFrom(imp *ast.Import, start source.Span) {
	if !p.atWord("from") {
		p.report(diag.SynUnexpectedToken, diag.SevError, p.diagnosticSpan(), "expected 'from' in import")
		p.skipStatement()
		return
	}
	p.advance()
	p.finishImport(imp, start)
}

// finishImport reads the module specifier and records the import.
func (p *Parser) finishImport(imp *ast.Import, start source.Span) {
	tok, ok := p.expect(token.StringLit, diag.SynExpectModulePath, "expected module path string")
	if !ok {
		p.skipStatement()
		return
	}
	from, err := lexer.Unquote(tok.Text)
	if err != nil {
		p.report(diag.SynExpectModulePath, diag.SevError, tok.Span, "invalid module path: "+err.Error())
		p.skipStatement()
		return
	}
	imp.From = from
	imp.FromSpan = tok.Span
	imp.Span = start.Cover(tok.Span)
	p.eatSemicolon()
	p.file.Imports = append(p.file.Imports, *imp)
}
