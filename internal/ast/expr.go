package ast

import (
	"basedef/internal/source"
	"basedef/internal/token"
)

type ExprID uint32

const NoExprID ExprID = 0

func (id ExprID) IsValid() bool { return id != NoExprID }

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprString
	ExprNumber
	ExprBool
	ExprNull
	ExprUndefined
	ExprTemplate // template literal with substitutions; never constant here
	ExprUnary
	ExprBinary
	ExprParen
	ExprArray
	ExprObject
	ExprMember // X.Name
	ExprIndex  // X[Y]
	ExprCall   // X(Elems...)
	ExprOpaque // arrow functions and other code the evaluator does not fold
)

var exprKindNames = [...]string{
	ExprInvalid:   "invalid",
	ExprIdent:     "identifier",
	ExprString:    "string",
	ExprNumber:    "number",
	ExprBool:      "boolean",
	ExprNull:      "null",
	ExprUndefined: "undefined",
	ExprTemplate:  "template literal",
	ExprUnary:     "unary expression",
	ExprBinary:    "binary expression",
	ExprParen:     "parenthesized expression",
	ExprArray:     "array literal",
	ExprObject:    "object literal",
	ExprMember:    "property access",
	ExprIndex:     "element access",
	ExprCall:      "call expression",
	ExprOpaque:    "function expression",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "unknown"
}

// Property is one `key: value` entry of an object literal.
// Shorthand `{ a }` is stored with Value pointing to an ExprIdent.
type Property struct {
	Key   string
	Value ExprID
	Span  source.Span
}

// Expr is a single expression node. Which fields are meaningful depends on Kind:
//
//   - Ident, String, Number: Text (decoded string value for String; raw for Number)
//   - Number: Num
//   - Bool: Bool
//   - Unary: Op, X
//   - Binary: Op, X, Y
//   - Paren: X
//   - Array: Elems
//   - Object: Props
//   - Member: X, Text (property name)
//   - Index: X, Y
//   - Call: X (callee), Elems (arguments)
type Expr struct {
	Kind  ExprKind
	Span  source.Span
	Text  string
	Num   float64
	Bool  bool
	Op    token.Kind
	X, Y  ExprID
	Elems []ExprID
	Props []Property
}

// Exprs owns the expression arena of one file.
type Exprs struct {
	Arena *Arena[Expr]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Exprs{Arena: NewArena[Expr](capHint)}
}

func (e *Exprs) New(expr Expr) ExprID {
	return ExprID(e.Arena.Allocate(expr))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}
