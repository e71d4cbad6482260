package eval

import (
	"math"

	"basedef/internal/ast"
	"basedef/internal/token"
)

// PartialEvaluator folds constant expressions over a Program. It holds no
// mutable state of its own, so one evaluator may serve many goroutines.
type PartialEvaluator struct {
	program *Program
}

func NewPartialEvaluator(program *Program) *PartialEvaluator {
	if program == nil {
		program = NewProgram()
	}
	return &PartialEvaluator{program: program}
}

// Evaluate folds expr of file. Anything not statically known yields a *DynamicError.
func (e *PartialEvaluator) Evaluate(file *ast.File, expr ast.ExprID) (Value, error) {
	st := &evalState{program: e.program, visiting: make(map[constKey]bool)}
	return st.eval(file, expr)
}

type constKey struct {
	file *ast.File
	name string
}

// evalState живёт один вызов Evaluate: стек посещённых констант для поиска циклов.
type evalState struct {
	program  *Program
	visiting map[constKey]bool
}

func (st *evalState) eval(file *ast.File, id ast.ExprID) (Value, error) {
	x := file.Expr(id)
	if x == nil {
		return Value{}, &DynamicError{Reason: ReasonInvalid, Detail: "missing expression"}
	}
	switch x.Kind {
	case ast.ExprString:
		return String(x.Text), nil
	case ast.ExprNumber:
		return Number(x.Num), nil
	case ast.ExprBool:
		return Bool(x.Bool), nil
	case ast.ExprNull:
		return Null(), nil
	case ast.ExprUndefined:
		return Undefined(), nil
	case ast.ExprParen:
		return st.eval(file, x.X)
	case ast.ExprIdent:
		return st.identifier(file, x)
	case ast.ExprUnary:
		return st.unary(file, x)
	case ast.ExprBinary:
		return st.binary(file, x)
	case ast.ExprArray:
		return st.array(file, x)
	case ast.ExprObject:
		return st.object(file, x)
	case ast.ExprMember:
		return st.member(file, x)
	case ast.ExprIndex:
		return st.index(file, x)
	case ast.ExprInvalid:
		return Value{}, dynamic(ReasonInvalid, x.Span, "expression has syntax errors")
	}
	return Value{}, dynamic(ReasonUnsupported, x.Span, "%s cannot be evaluated statically", x.Kind)
}

func (st *evalState) identifier(file *ast.File, x *ast.Expr) (Value, error) {
	if c, ok := file.Const(x.Text); ok {
		return st.constant(file, c)
	}
	imp, spec, ns, ok := file.LookupImport(x.Text)
	if !ok {
		return Value{}, dynamic(ReasonUnknownIdentifier, x.Span, "%q is not a constant in scope", x.Text)
	}
	if ns {
		return Value{Kind: KindReference, Ref: &Reference{Name: x.Text, From: imp.From}}, nil
	}
	if !IsRelative(imp.From) {
		return Value{Kind: KindReference, Ref: &Reference{Name: spec.Name, From: imp.From}}, nil
	}
	return st.export(file, imp.From, spec.Name, x)
}

// export resolves `name` exported by the module `from` imported in file.
func (st *evalState) export(file *ast.File, from, name string, at *ast.Expr) (Value, error) {
	target, ok := st.program.ResolveImport(file.Path, from)
	if !ok {
		return Value{}, dynamic(ReasonMissingImport, at.Span, "module %q is not part of the program", from)
	}
	c, ok := target.Const(name)
	if !ok || !c.Exported {
		return Value{}, dynamic(ReasonMissingImport, at.Span, "module %q has no exported constant %q", from, name)
	}
	return st.constant(target, c)
}

func (st *evalState) constant(file *ast.File, c *ast.Const) (Value, error) {
	key := constKey{file: file, name: c.Name}
	if st.visiting[key] {
		return Value{}, dynamic(ReasonCycle, c.NameSpan, "%q refers to itself", c.Name)
	}
	if !c.Value.IsValid() {
		return Undefined(), nil
	}
	st.visiting[key] = true
	defer delete(st.visiting, key)
	return st.eval(file, c.Value)
}

func (st *evalState) unary(file *ast.File, x *ast.Expr) (Value, error) {
	if x.Op == token.Ellipsis {
		return Value{}, dynamic(ReasonUnsupported, x.Span, "spread is only allowed in array and object literals")
	}
	v, err := st.eval(file, x.X)
	if err != nil {
		return Value{}, err
	}
	if v.Kind == KindReference {
		return Value{}, dynamic(ReasonUnsupported, x.Span, "operator %s applied to an external reference", x.Op)
	}
	switch x.Op {
	case token.Minus:
		return Number(-v.toNumber()), nil
	case token.Plus:
		return Number(v.toNumber()), nil
	case token.Bang:
		return Bool(!v.truthy()), nil
	}
	return Value{}, dynamic(ReasonUnsupported, x.Span, "unary operator %s", x.Op)
}

func (st *evalState) binary(file *ast.File, x *ast.Expr) (Value, error) {
	l, err := st.eval(file, x.X)
	if err != nil {
		return Value{}, err
	}
	r, err := st.eval(file, x.Y)
	if err != nil {
		return Value{}, err
	}
	if l.Kind == KindReference || r.Kind == KindReference {
		return Value{}, dynamic(ReasonUnsupported, x.Span, "operator %s applied to an external reference", x.Op)
	}
	switch x.Op {
	case token.Plus:
		if isStringy(l) || isStringy(r) {
			return String(l.String() + r.String()), nil
		}
		return Number(l.toNumber() + r.toNumber()), nil
	case token.Minus:
		return Number(l.toNumber() - r.toNumber()), nil
	case token.Star:
		return Number(l.toNumber() * r.toNumber()), nil
	case token.Slash:
		return Number(l.toNumber() / r.toNumber()), nil
	}
	return Value{}, dynamic(ReasonUnsupported, x.Span, "binary operator %s", x.Op)
}

// isStringy: с точки зрения `+` массивы и объекты приводятся к строке.
func isStringy(v Value) bool {
	return v.Kind == KindString || v.Kind == KindArray || v.Kind == KindObject
}

func (st *evalState) array(file *ast.File, x *ast.Expr) (Value, error) {
	out := Value{Kind: KindArray, Elems: make([]Value, 0, len(x.Elems))}
	for _, id := range x.Elems {
		el := file.Expr(id)
		if el != nil && el.Kind == ast.ExprUnary && el.Op == token.Ellipsis {
			v, err := st.eval(file, el.X)
			if err != nil {
				return Value{}, err
			}
			if v.Kind != KindArray {
				return Value{}, dynamic(ReasonUnsupported, el.Span, "cannot spread %s into an array", v.Kind)
			}
			out.Elems = append(out.Elems, v.Elems...)
			continue
		}
		v, err := st.eval(file, id)
		if err != nil {
			return Value{}, err
		}
		out.Elems = append(out.Elems, v)
	}
	return out, nil
}

func (st *evalState) object(file *ast.File, x *ast.Expr) (Value, error) {
	out := Value{Kind: KindObject}
	for _, p := range x.Props {
		el := file.Expr(p.Value)
		if p.Key == "" && el != nil && el.Kind == ast.ExprUnary && el.Op == token.Ellipsis {
			v, err := st.eval(file, el.X)
			if err != nil {
				return Value{}, err
			}
			switch v.Kind {
			case KindObject:
				for _, sp := range v.Props {
					out.set(sp.Key, sp.Value)
				}
			case KindUndefined, KindNull:
			default:
				return Value{}, dynamic(ReasonUnsupported, el.Span, "cannot spread %s into an object", v.Kind)
			}
			continue
		}
		v, err := st.eval(file, p.Value)
		if err != nil {
			return Value{}, err
		}
		out.set(p.Key, v)
	}
	return out, nil
}

func (st *evalState) member(file *ast.File, x *ast.Expr) (Value, error) {
	// ns.NAME where ns is `import * as ns from './relative'`
	if base := file.Expr(x.X); base != nil && base.Kind == ast.ExprIdent {
		if _, ok := file.Const(base.Text); !ok {
			if imp, _, ns, ok := file.LookupImport(base.Text); ok && ns && IsRelative(imp.From) {
				return st.export(file, imp.From, x.Text, x)
			}
		}
	}
	v, err := st.eval(file, x.X)
	if err != nil {
		return Value{}, err
	}
	return st.property(v, x.Text, x)
}

func (st *evalState) index(file *ast.File, x *ast.Expr) (Value, error) {
	v, err := st.eval(file, x.X)
	if err != nil {
		return Value{}, err
	}
	k, err := st.eval(file, x.Y)
	if err != nil {
		return Value{}, err
	}
	if k.Kind == KindNumber && (v.Kind == KindArray || v.Kind == KindString) {
		i := k.Num
		if i != math.Trunc(i) || i < 0 {
			return Undefined(), nil
		}
		// границы проверяются до перевода в int: Infinity и 1e19 не влезают в int
		if v.Kind == KindArray {
			if i >= float64(len(v.Elems)) {
				return Undefined(), nil
			}
			return v.Elems[int(i)], nil
		}
		runes := []rune(v.Str)
		if i >= float64(len(runes)) {
			return Undefined(), nil
		}
		return String(string(runes[int(i)])), nil
	}
	if k.Kind != KindString && k.Kind != KindNumber {
		return Value{}, dynamic(ReasonUnsupported, x.Span, "index of kind %s", k.Kind)
	}
	return st.property(v, k.String(), x)
}

func (st *evalState) property(v Value, name string, at *ast.Expr) (Value, error) {
	switch v.Kind {
	case KindObject:
		if p, ok := v.Get(name); ok {
			return p, nil
		}
		return Undefined(), nil
	case KindArray:
		if name == "length" {
			return Number(float64(len(v.Elems))), nil
		}
		return Undefined(), nil
	case KindString:
		if name == "length" {
			return Number(float64(len([]rune(v.Str)))), nil
		}
		return Undefined(), nil
	case KindReference:
		return Value{Kind: KindReference, Ref: &Reference{Name: v.Ref.Name + "." + name, From: v.Ref.From}}, nil
	case KindUndefined, KindNull:
		return Value{}, dynamic(ReasonInvalid, at.Span, "cannot read property %q of %s", name, v.Kind)
	}
	return Undefined(), nil
}
