package output

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ImportAlias binds a module to the namespace alias generated code uses for it.
type ImportAlias struct {
	Module string
	Alias  string
}

// Printer renders generated code. External references are printed through
// namespace aliases (i0, i1, ...) assigned in order of first use.
type Printer struct {
	aliases map[string]string
	order   []ImportAlias
}

func NewPrinter() *Printer {
	return &Printer{aliases: make(map[string]string)}
}

// Imports returns the aliases used so far in assignment order.
func (p *Printer) Imports() []ImportAlias {
	return append([]ImportAlias(nil), p.order...)
}

// ImportStatements renders `import * as i0 from '...';` lines.
func (p *Printer) ImportStatements() []string {
	out := make([]string, 0, len(p.order))
	for _, imp := range p.order {
		out = append(out, fmt.Sprintf("import * as %s from %s;", imp.Alias, quote(imp.Module)))
	}
	return out
}

func (p *Printer) alias(module string) string {
	if a, ok := p.aliases[module]; ok {
		return a
	}
	a := "i" + strconv.Itoa(len(p.order))
	p.aliases[module] = a
	p.order = append(p.order, ImportAlias{Module: module, Alias: a})
	return a
}

func (p *Printer) Expr(e Expr) string {
	var sb strings.Builder
	p.writeExpr(&sb, e)
	return sb.String()
}

func (p *Printer) Type(t Type) string {
	var sb strings.Builder
	p.writeType(&sb, t)
	return sb.String()
}

func (p *Printer) writeExpr(sb *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *LiteralExpr:
		sb.WriteString(literal(e.Value))
	case *LiteralArrayExpr:
		sb.WriteByte('[')
		for i, el := range e.Entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			p.writeExpr(sb, el)
		}
		sb.WriteByte(']')
	case *LiteralMapExpr:
		if len(e.Entries) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteByte('{')
		for i, en := range e.Entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			if en.Quoted || !IsIdentifier(en.Key) {
				sb.WriteString(quote(en.Key))
			} else {
				sb.WriteString(en.Key)
			}
			sb.WriteString(": ")
			p.writeExpr(sb, en.Value)
		}
		sb.WriteByte('}')
	case *ExternalExpr:
		if e.Ref.ModuleName != "" {
			sb.WriteString(p.alias(e.Ref.ModuleName))
			sb.WriteByte('.')
		}
		sb.WriteString(e.Ref.Name)
	case *InvokeFunctionExpr:
		p.writeExpr(sb, e.Fn)
		sb.WriteByte('(')
		for i, a := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			p.writeExpr(sb, a)
		}
		sb.WriteByte(')')
	case nil:
		sb.WriteString("undefined")
	default:
		panic(fmt.Sprintf("output: unknown expression %T", e))
	}
}

func (p *Printer) writeType(sb *strings.Builder, t Type) {
	switch t := t.(type) {
	case *ExpressionType:
		p.writeExpr(sb, t.Value)
		if len(t.TypeParams) == 0 {
			return
		}
		sb.WriteByte('<')
		for i, tp := range t.TypeParams {
			if i > 0 {
				sb.WriteString(", ")
			}
			p.writeType(sb, tp)
		}
		sb.WriteByte('>')
	case nil:
		sb.WriteString("any")
	default:
		panic(fmt.Sprintf("output: unknown type %T", t))
	}
}

func literal(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	panic(fmt.Sprintf("output: unsupported literal %T", v))
}

// quote renders s as a single-quoted string literal.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\x%02X`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

// IsIdentifier reports whether key can be written as a bare property name.
func IsIdentifier(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		if r == utf8.RuneError {
			return false
		}
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
