package parser

import (
	"basedef/internal/ast"
	"basedef/internal/diag"
	"basedef/internal/lexer"
	"basedef/internal/token"
)

// parseClass handles
//
//	[abstract] class Name [<T>] [extends Base[<T>]] [implements I, J] { members }
func (p *Parser) parseClass(decs []ast.Decorator, exported bool) {
	start := p.lx.Peek().Span
	if len(decs) > 0 {
		start = decs[0].Span
	}
	cls := ast.Class{Exported: exported, Decorators: decs}
	if p.at(token.KwAbstract) {
		p.advance()
		cls.Abstract = true
	}
	if _, ok := p.expect(token.KwClass, diag.SynUnexpectedToken, "expected 'class'"); !ok {
		p.skipStatement()
		return
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected class name")
	if !ok {
		p.skipStatement()
		return
	}
	cls.Name, cls.NameSpan = name.Text, name.Span
	if p.at(token.Lt) {
		p.skipAngles()
	}
	if p.at(token.KwExtends) {
		p.advance()
		cls.Extends = p.parseHeritage()
	}
	if p.at(token.KwImplements) {
		p.advance()
		for !p.atOr(token.LBrace, token.EOF) {
			if p.at(token.Lt) {
				p.skipAngles()
				continue
			}
			p.advance()
		}
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectClassBody, "expected '{' to open class body"); !ok {
		p.skipStatement()
		return
	}
	for !p.atOr(token.RBrace, token.EOF) {
		if m, ok := p.parseMember(); ok {
			cls.Members = append(cls.Members, m)
		}
	}
	end, _ := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close class body")
	cls.Span = start.Cover(end.Span)
	p.file.Classes = append(p.file.Classes, cls)
}

// parseHeritage reads the extends clause and returns the base expression as
// written, without type arguments. `Mixin(Base)` style calls are kept whole.
func (p *Parser) parseHeritage() string {
	var text string
	for {
		tok := p.lx.Peek()
		switch {
		case tok.IsName() && (text == "" || p.prev.Kind == token.Dot):
			text += p.advance().Text
		case tok.Kind == token.Dot:
			text += p.advance().Text
		case tok.Kind == token.Lt:
			p.skipAngles()
		case tok.Kind == token.LParen:
			start := tok.Span
			p.skipBalanced()
			text += string(p.lx.File().Content[start.Start:p.lastSpan.End])
		default:
			return text
		}
	}
}

var memberModifiers = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"static":    true,
	"readonly":  true,
	"declare":   true,
	"override":  true,
	"accessor":  true,
	"async":     true,
}

// startsMemberName reports whether tok can follow a modifier, i.e. the
// modifier word really is a modifier and not the member name itself.
func startsMemberName(tok token.Token) bool {
	if tok.NewlineBefore && tok.Kind != token.At {
		return tok.IsName() || tok.Kind == token.StringLit || tok.Kind == token.LBracket
	}
	return tok.IsName() || tok.Kind == token.StringLit || tok.Kind == token.NumberLit ||
		tok.Kind == token.LBracket || tok.Kind == token.Star
}

// parseMember parses one class element. Constructors, index signatures and
// computed names are consumed but not returned.
func (p *Parser) parseMember() (ast.Member, bool) {
	if p.at(token.Semicolon) {
		p.advance()
		return ast.Member{}, false
	}
	start := p.lx.Peek().Span
	m := ast.Member{Kind: ast.MemberProperty, Decorators: p.parseDecorators()}
	if p.atOr(token.RBrace, token.EOF) {
		p.reportDanglingDecorators(m.Decorators)
		return ast.Member{}, false
	}

	for {
		tok := p.lx.Peek()
		isMod := (tok.Kind == token.Ident && memberModifiers[tok.Text]) || tok.Kind == token.KwAbstract
		if !isMod || !startsMemberName(p.peekSecond()) {
			break
		}
		p.advance()
		switch tok.Text {
		case "static":
			m.Static = true
		case "readonly":
			m.Readonly = true
		}
	}
	if p.atWord("get") || p.atWord("set") {
		if next := p.peekSecond(); next.IsName() || next.Kind == token.StringLit || next.Kind == token.LBracket {
			if p.advance().Text == "get" {
				m.Kind = ast.MemberGetter
			} else {
				m.Kind = ast.MemberSetter
			}
		}
	}
	if p.at(token.Star) {
		p.advance()
		m.Kind = ast.MemberMethod
	}

	computed := false
	tok := p.lx.Peek()
	switch {
	case tok.IsName():
		p.advance()
		m.Name = tok.Text
	case tok.Kind == token.StringLit:
		p.advance()
		name, err := lexer.Unquote(tok.Text)
		if err != nil {
			p.report(diag.SynExpectIdentifier, diag.SevError, tok.Span, "invalid member name: "+err.Error())
		}
		m.Name = name
	case tok.Kind == token.NumberLit:
		p.advance()
		m.Name = tok.Text
	case tok.Kind == token.LBracket:
		computed = true
		p.skipBalanced()
	default:
		p.report(diag.SynExpectIdentifier, diag.SevError, tok.Span, "expected class member, found "+tok.Kind.String())
		p.skipMember()
		return ast.Member{}, false
	}
	m.NameSpan = tok.Span

	if p.at(token.Question) || p.at(token.Bang) {
		m.Optional = p.advance().Kind == token.Question
	}

	if p.atOr(token.Lt, token.LParen) {
		if m.Kind == ast.MemberProperty {
			m.Kind = ast.MemberMethod
		}
		p.skipCallable()
	} else {
		if p.at(token.Colon) {
			p.advance()
			p.skipType()
		}
		if p.at(token.Assign) {
			p.advance()
			m.Initializer = p.parseExpr()
		}
		if !p.endMember() {
			return ast.Member{}, false
		}
	}
	m.Span = start.Cover(p.lastSpan)

	if computed || (m.Name == "constructor" && m.Kind == ast.MemberMethod) {
		return ast.Member{}, false
	}
	return m, true
}

// skipCallable consumes the signature and body of a method or accessor.
func (p *Parser) skipCallable() {
	if p.at(token.Lt) {
		p.skipAngles()
	}
	if !p.at(token.LParen) {
		p.report(diag.SynUnexpectedToken, diag.SevError, p.diagnosticSpan(), "expected '(' in method signature")
		p.skipMember()
		return
	}
	p.skipBalanced()
	if p.at(token.Colon) {
		p.advance()
		p.skipType()
	}
	if p.at(token.LBrace) {
		p.skipBalanced()
		return
	}
	p.endMember()
}

// endMember finishes a property declaration: ';' or ASI.
func (p *Parser) endMember() bool {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.Semicolon:
		p.advance()
	case tok.NewlineBefore, tok.Kind == token.RBrace, tok.Kind == token.EOF:
	default:
		p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "expected ';' after class member, found "+tok.Kind.String())
		p.skipMember()
		return false
	}
	return true
}
