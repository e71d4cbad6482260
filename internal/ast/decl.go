package ast

import (
	"basedef/internal/source"
)

// Import is one import declaration.
//
//	import {A, B as C} from 'm';   Specs: {A,A} {B,C}
//	import * as ns from 'm';       Namespace: ns
//	import D from 'm';             Specs: {default,D}
type Import struct {
	From      string
	FromSpan  source.Span
	Specs     []ImportSpec
	Namespace string
	Span      source.Span
}

// ImportSpec binds exported Name under Local.
type ImportSpec struct {
	Name  string
	Local string
	Span  source.Span
}

// Const is a top-level `const`/`let` binding.
type Const struct {
	Name     string
	NameSpan source.Span
	Exported bool
	Mutable  bool // declared with let
	Value    ExprID
	Span     source.Span
}

// Decorator is `@Name(args)` or `@Qualifier.Name(args)` as written.
type Decorator struct {
	Qualifier string
	Name      string
	NameSpan  source.Span
	Args      []ExprID
	Called    bool // false for bare `@Name`
	Span      source.Span
}

type MemberKind uint8

const (
	MemberProperty MemberKind = iota
	MemberGetter
	MemberSetter
	MemberMethod
)

func (k MemberKind) String() string {
	switch k {
	case MemberProperty:
		return "property"
	case MemberGetter:
		return "getter"
	case MemberSetter:
		return "setter"
	case MemberMethod:
		return "method"
	}
	return "unknown"
}

// Member is a property, accessor or method of a class.
type Member struct {
	Name        string
	NameSpan    source.Span
	Kind        MemberKind
	Static      bool
	Readonly    bool
	Optional    bool
	Decorators  []Decorator // nil when the member carries none
	Initializer ExprID
	Span        source.Span
}

// Class is a class declaration with its decorators and members in source order.
type Class struct {
	Name       string
	NameSpan   source.Span
	Exported   bool
	Abstract   bool
	Extends    string
	Decorators []Decorator
	Members    []Member
	Span       source.Span
}
