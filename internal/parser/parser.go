package parser

import (
	"slices"

	"basedef/internal/ast"
	"basedef/internal/diag"
	"basedef/internal/lexer"
	"basedef/internal/source"
	"basedef/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *ast.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
	prev     token.Token
	quiet    int // >0 while speculating: diagnostics are suppressed
}

// ParseFile parses one source file. Syntax errors go to opts.Reporter; the
// returned file always holds whatever could be recovered.
func ParseFile(f *source.File, opts Options) *ast.File {
	lx := lexer.New(f, lexer.Options{Reporter: opts.Reporter})
	p := Parser{
		lx:       lx,
		file:     ast.NewFile(f.ID, f.Path),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	p.parseItems()
	return p.file
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) atWord(word string) bool {
	return p.lx.Peek().IsContextual(word)
}

// parseItems — основной цикл верхнего уровня.
func (p *Parser) parseItems() {
	start := p.lx.Peek().Span
	for !p.at(token.EOF) {
		p.parseItem()
	}
	p.file.Span = start.Cover(p.lx.Peek().Span)
}

// tsStatementStarters are TypeScript top-level constructs that carry no class
// metadata; they are skipped without a diagnostic.
var tsStatementStarters = map[string]bool{
	"function":  true,
	"interface": true,
	"type":      true,
	"enum":      true,
	"declare":   true,
	"namespace": true,
	"module":    true,
	"async":     true,
	"var":       true,
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Semicolon:
		p.advance()
	case token.KwImport:
		p.parseImport()
	case token.KwConst, token.KwLet:
		p.parseConst(false)
	case token.KwExport:
		p.parseExport(nil)
	case token.KwClass, token.KwAbstract:
		p.parseClass(nil, false)
	case token.At:
		decs := p.parseDecorators()
		p.parseDecoratedItem(decs)
	case token.Ident:
		if !tsStatementStarters[tok.Text] {
			p.report(diag.SynUnexpectedTopLevel, diag.SevError, tok.Span, "unexpected top-level construct")
		}
		p.skipStatement()
	default:
		p.report(diag.SynUnexpectedTopLevel, diag.SevError, tok.Span, "unexpected top-level construct")
		p.skipStatement()
	}
}

func (p *Parser) parseDecoratedItem(decs []ast.Decorator) {
	switch {
	case p.at(token.KwExport):
		p.parseExport(decs)
	case p.atOr(token.KwClass, token.KwAbstract):
		p.parseClass(decs, false)
	default:
		p.reportDanglingDecorators(decs)
		p.skipStatement()
	}
}

func (p *Parser) reportDanglingDecorators(decs []ast.Decorator) {
	if len(decs) == 0 {
		return
	}
	p.report(diag.SynDecoratorNoTarget, diag.SevError, decs[0].Span.Cover(decs[len(decs)-1].Span),
		"decorators are only allowed on classes and class members")
}

// parseExport handles `export [default] ...`. Only classes and constants are
// recorded; re-exports and other declarations are skipped.
func (p *Parser) parseExport(decs []ast.Decorator) {
	p.advance() // export
	if p.atWord("default") {
		p.advance()
	}
	switch {
	case p.at(token.At):
		decs = append(decs, p.parseDecorators()...)
		if !p.atOr(token.KwClass, token.KwAbstract) {
			p.reportDanglingDecorators(decs)
			p.skipStatement()
			return
		}
		p.parseClass(decs, true)
	case p.atOr(token.KwClass, token.KwAbstract):
		p.parseClass(decs, true)
	case p.atOr(token.KwConst, token.KwLet):
		p.reportDanglingDecorators(decs)
		p.parseConst(true)
	default:
		p.reportDanglingDecorators(decs)
		p.skipStatement()
	}
}
