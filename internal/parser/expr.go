package parser

import (
	"strconv"
	"strings"

	"basedef/internal/ast"
	"basedef/internal/diag"
	"basedef/internal/lexer"
	"basedef/internal/source"
	"basedef/internal/token"
)

func (p *Parser) newExpr(e ast.Expr) ast.ExprID {
	return p.file.Exprs.New(e)
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.file.Expr(id); e != nil {
		return e.Span
	}
	return p.lastSpan
}

// parseExpr parses an assignment-level expression. Conditionals and arrow
// functions are kept as opaque nodes.
func (p *Parser) parseExpr() ast.ExprID {
	cond := p.parseOperand()
	if !p.at(token.Question) {
		return cond
	}
	p.advance()
	p.parseExpr()
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional expression"); !ok {
		return cond
	}
	alt := p.parseExpr()
	return p.newExpr(ast.Expr{Kind: ast.ExprOpaque, Span: p.exprSpan(cond).Cover(p.exprSpan(alt))})
}

// parseOperand folds + - * / and keeps comparison and logical operators opaque.
func (p *Parser) parseOperand() ast.ExprID {
	x := p.parseBinary(0)
	for p.atOpaqueOperator() {
		p.advance()
		for p.atOr(token.Pipe, token.Amp, token.Question, token.Gt, token.Lt, token.Assign, token.Other) {
			p.advance()
		}
		y := p.parseBinary(0)
		x = p.newExpr(ast.Expr{Kind: ast.ExprOpaque, Span: p.exprSpan(x).Cover(p.exprSpan(y))})
	}
	return x
}

func (p *Parser) atOpaqueOperator() bool {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Other, token.Pipe, token.Amp, token.Lt, token.Gt:
		return true
	case token.Question:
		return p.peekSecond().Kind == token.Question
	}
	return false
}

func binaryPrec(k token.Kind) int {
	switch k {
	case token.Plus, token.Minus:
		return 1
	case token.Star, token.Slash:
		return 2
	}
	return 0
}

// parseBinary — precedence climbing по + - * /.
func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	left := p.parseUnary()
	for {
		op := p.lx.Peek()
		prec := binaryPrec(op.Kind)
		if prec == 0 || prec <= minPrec {
			return left
		}
		p.advance()
		right := p.parseBinary(prec)
		left = p.newExpr(ast.Expr{
			Kind: ast.ExprBinary,
			Op:   op.Kind,
			X:    left,
			Y:    right,
			Span: p.exprSpan(left).Cover(p.exprSpan(right)),
		})
	}
}

func (p *Parser) parseUnary() ast.ExprID {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Minus, token.Plus, token.Bang:
		p.advance()
		x := p.parseUnary()
		return p.newExpr(ast.Expr{Kind: ast.ExprUnary, Op: tok.Kind, X: x, Span: tok.Span.Cover(p.exprSpan(x))})
	}
	if tok.IsContextual("typeof") || tok.IsContextual("void") || tok.IsContextual("await") {
		p.advance()
		x := p.parseUnary()
		return p.newExpr(ast.Expr{Kind: ast.ExprOpaque, Span: tok.Span.Cover(p.exprSpan(x))})
	}
	return p.parsePostfix(p.parsePrimary())
}

// parsePostfix handles member access, indexing, calls, `x!` and `x as T`.
func (p *Parser) parsePostfix(x ast.ExprID) ast.ExprID {
	for {
		tok := p.lx.Peek()
		switch {
		case tok.Kind == token.Dot:
			p.advance()
			name, ok := p.expectName("expected property name after '.'")
			if !ok {
				return x
			}
			x = p.newExpr(ast.Expr{Kind: ast.ExprMember, X: x, Text: name.Text, Span: p.exprSpan(x).Cover(name.Span)})
		case tok.Kind == token.LBracket && !tok.NewlineBefore:
			p.advance()
			idx := p.parseExpr()
			end, _ := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']'")
			x = p.newExpr(ast.Expr{Kind: ast.ExprIndex, X: x, Y: idx, Span: p.exprSpan(x).Cover(end.Span)})
		case tok.Kind == token.LParen && !tok.NewlineBefore:
			args, end, _ := p.parseArgs()
			x = p.newExpr(ast.Expr{Kind: ast.ExprCall, X: x, Elems: args, Span: p.exprSpan(x).Cover(end)})
		case tok.Kind == token.Question && p.peekSecond().Kind == token.Dot:
			p.advance() // ?. — дальше обычный member access
		case tok.Kind == token.Bang && !tok.NewlineBefore:
			p.advance()
		case (tok.IsContextual("as") || tok.IsContextual("satisfies")) && !tok.NewlineBefore:
			p.advance()
			p.skipType()
		default:
			return x
		}
	}
}

// parseArgs parses `(a, b, ...)` starting at '('. Trailing commas are allowed.
func (p *Parser) parseArgs() ([]ast.ExprID, source.Span, bool) {
	open := p.advance()
	var args []ast.ExprID
	for !p.atOr(token.RParen, token.EOF) {
		args = append(args, p.parseElement())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	end, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close argument list")
	if !ok {
		return args, open.Span.Cover(p.lastSpan), false
	}
	return args, open.Span.Cover(end.Span), true
}

// parseElement is an argument or array element: an expression or `...spread`.
func (p *Parser) parseElement() ast.ExprID {
	if p.at(token.Ellipsis) {
		tok := p.advance()
		x := p.parseExpr()
		return p.newExpr(ast.Expr{Kind: ast.ExprUnary, Op: token.Ellipsis, X: x, Span: tok.Span.Cover(p.exprSpan(x))})
	}
	return p.parseExpr()
}

func (p *Parser) parsePrimary() ast.ExprID {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		switch tok.Text {
		case "function":
			return p.parseOpaqueFunction()
		case "new":
			p.advance()
			p.parsePrimary()
			for p.at(token.Dot) {
				p.advance()
				p.expectName("expected property name after '.'")
			}
			if p.at(token.Lt) {
				p.skipAngles()
			}
			if p.at(token.LParen) {
				p.parseArgs()
			}
			return p.newExpr(ast.Expr{Kind: ast.ExprOpaque, Span: tok.Span.Cover(p.lastSpan)})
		case "async":
			if next := p.peekSecond(); !next.NewlineBefore && (next.Kind == token.LParen || next.Kind == token.Ident) {
				p.advance()
				return p.parsePrimary()
			}
		}
		p.advance()
		if p.at(token.Arrow) {
			return p.finishArrow(tok.Span)
		}
		return p.newExpr(ast.Expr{Kind: ast.ExprIdent, Text: tok.Text, Span: tok.Span})
	case token.KwClass:
		return p.parseOpaqueFunction()
	case token.StringLit:
		p.advance()
		s, err := lexer.Unquote(tok.Text)
		if err != nil {
			p.report(diag.SynExpectExpression, diag.SevError, tok.Span, "invalid string literal: "+err.Error())
		}
		return p.newExpr(ast.Expr{Kind: ast.ExprString, Text: s, Span: tok.Span})
	case token.TemplateLit:
		p.advance()
		s, err := lexer.Unquote(tok.Text)
		if err != nil {
			return p.newExpr(ast.Expr{Kind: ast.ExprTemplate, Text: tok.Text, Span: tok.Span})
		}
		return p.newExpr(ast.Expr{Kind: ast.ExprString, Text: s, Span: tok.Span})
	case token.NumberLit:
		p.advance()
		num, err := parseNumber(tok.Text)
		if err != nil {
			p.report(diag.SynExpectExpression, diag.SevError, tok.Span, "invalid number literal")
		}
		return p.newExpr(ast.Expr{Kind: ast.ExprNumber, Text: tok.Text, Num: num, Span: tok.Span})
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.newExpr(ast.Expr{Kind: ast.ExprBool, Bool: tok.Kind == token.KwTrue, Text: tok.Text, Span: tok.Span})
	case token.KwNull:
		p.advance()
		return p.newExpr(ast.Expr{Kind: ast.ExprNull, Text: tok.Text, Span: tok.Span})
	case token.KwUndefined:
		p.advance()
		return p.newExpr(ast.Expr{Kind: ast.ExprUndefined, Text: tok.Text, Span: tok.Span})
	case token.LParen:
		if id, ok := p.tryArrow(); ok {
			return id
		}
		p.advance()
		x := p.parseExpr()
		end, _ := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
		return p.newExpr(ast.Expr{Kind: ast.ExprParen, X: x, Span: tok.Span.Cover(end.Span)})
	case token.Lt:
		// generic arrow `<T>(x: T) => x`
		p.skipAngles()
		if id, ok := p.tryArrow(); ok {
			return id
		}
	case token.LBracket:
		return p.parseArray()
	case token.LBrace:
		return p.parseObject()
	}
	p.report(diag.SynExpectExpression, diag.SevError, tok.Span, "expected expression, found "+tok.Kind.String())
	if !isClose(tok.Kind) && tok.Kind != token.EOF && tok.Kind != token.Comma && tok.Kind != token.Semicolon {
		p.advance()
	}
	return p.newExpr(ast.Expr{Kind: ast.ExprInvalid, Span: tok.Span})
}

// tryArrow speculatively reads `(params) [: T] => body`.
func (p *Parser) tryArrow() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	isArrow := p.speculate(func() bool {
		if !p.skipBalanced() {
			return false
		}
		if p.at(token.Colon) {
			p.advance()
			p.skipType()
		}
		return p.at(token.Arrow)
	})
	if !isArrow {
		return ast.NoExprID, false
	}
	return p.finishArrow(start), true
}

// finishArrow consumes `=> body` and returns an opaque node.
func (p *Parser) finishArrow(start source.Span) ast.ExprID {
	p.advance() // =>
	if p.at(token.LBrace) {
		p.skipBalanced()
	} else {
		p.parseExpr()
	}
	return p.newExpr(ast.Expr{Kind: ast.ExprOpaque, Span: start.Cover(p.lastSpan)})
}

// parseOpaqueFunction skips a function or class expression.
func (p *Parser) parseOpaqueFunction() ast.ExprID {
	start := p.advance().Span
	for !p.atOr(token.LBrace, token.EOF) {
		if isOpen(p.lx.Peek().Kind) {
			p.skipBalanced()
			continue
		}
		p.advance()
	}
	if p.at(token.LBrace) {
		p.skipBalanced()
	}
	return p.newExpr(ast.Expr{Kind: ast.ExprOpaque, Span: start.Cover(p.lastSpan)})
}

func (p *Parser) parseArray() ast.ExprID {
	open := p.advance()
	var elems []ast.ExprID
	for !p.atOr(token.RBracket, token.EOF) {
		if p.at(token.Comma) {
			// hole
			elems = append(elems, p.newExpr(ast.Expr{Kind: ast.ExprUndefined, Span: p.lx.Peek().Span}))
			p.advance()
			continue
		}
		elems = append(elems, p.parseElement())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	end, _ := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close array literal")
	return p.newExpr(ast.Expr{Kind: ast.ExprArray, Elems: elems, Span: open.Span.Cover(end.Span)})
}

// parseObject reads an object literal. Spread entries have an empty Key and a
// spread value; methods and computed keys are kept with opaque values.
func (p *Parser) parseObject() ast.ExprID {
	open := p.advance()
	var props []ast.Property
	for !p.atOr(token.RBrace, token.EOF) {
		prop, ok := p.parseProperty()
		if !ok {
			break
		}
		props = append(props, prop)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	end, _ := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close object literal")
	return p.newExpr(ast.Expr{Kind: ast.ExprObject, Props: props, Span: open.Span.Cover(end.Span)})
}

func (p *Parser) parseProperty() (ast.Property, bool) {
	tok := p.lx.Peek()
	if tok.Kind == token.Ellipsis {
		v := p.parseElement()
		return ast.Property{Value: v, Span: p.exprSpan(v)}, true
	}
	var key string
	computed := false
	switch {
	case tok.IsName():
		key = tok.Text
		p.advance()
	case tok.Kind == token.StringLit:
		p.advance()
		s, err := lexer.Unquote(tok.Text)
		if err != nil {
			p.report(diag.SynExpectExpression, diag.SevError, tok.Span, "invalid property name: "+err.Error())
		}
		key = s
	case tok.Kind == token.NumberLit:
		p.advance()
		num, err := parseNumber(tok.Text)
		if err != nil {
			p.report(diag.SynExpectExpression, diag.SevError, tok.Span, "invalid number literal")
		}
		key = strconv.FormatFloat(num, 'f', -1, 64)
	case tok.Kind == token.LBracket:
		computed = true
		p.skipBalanced()
	default:
		p.report(diag.SynExpectIdentifier, diag.SevError, tok.Span, "expected property name, found "+tok.Kind.String())
		return ast.Property{}, false
	}

	switch {
	case p.at(token.Colon):
		p.advance()
		v := p.parseExpr()
		if computed {
			v = p.newExpr(ast.Expr{Kind: ast.ExprOpaque, Span: tok.Span.Cover(p.exprSpan(v))})
		}
		return ast.Property{Key: key, Value: v, Span: tok.Span.Cover(p.exprSpan(v))}, true
	case p.atOr(token.LParen, token.Lt):
		p.skipCallable()
		v := p.newExpr(ast.Expr{Kind: ast.ExprOpaque, Span: tok.Span.Cover(p.lastSpan)})
		return ast.Property{Key: key, Value: v, Span: tok.Span.Cover(p.lastSpan)}, true
	case tok.Kind == token.Ident && !computed:
		v := p.newExpr(ast.Expr{Kind: ast.ExprIdent, Text: tok.Text, Span: tok.Span})
		return ast.Property{Key: key, Value: v, Span: tok.Span}, true
	}
	p.report(diag.SynUnexpectedToken, diag.SevError, p.diagnosticSpan(), "expected ':' after property name")
	return ast.Property{}, false
}

// parseNumber decodes decimal, hex, octal and binary literals with `_` separators.
func parseNumber(text string) (float64, error) {
	clean := strings.ReplaceAll(text, "_", "")
	if len(clean) > 2 && clean[0] == '0' {
		switch clean[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			n, err := strconv.ParseUint(strings.ToLower(clean[:2])+clean[2:], 0, 64)
			return float64(n), err
		}
	}
	return strconv.ParseFloat(clean, 64)
}
