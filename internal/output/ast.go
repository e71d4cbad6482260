package output

// Expr is a node of generated code.
type Expr interface {
	exprNode()
}

// Type is a type annotation of generated code.
type Type interface {
	typeNode()
}

// LiteralExpr is a string, number (float64), bool or nil (null) literal.
type LiteralExpr struct {
	Value any
}

type LiteralArrayExpr struct {
	Entries []Expr
}

// LiteralMapEntry is one `key: value` pair. Quoted forces a quoted key;
// keys that are not identifiers are quoted regardless.
type LiteralMapEntry struct {
	Key    string
	Value  Expr
	Quoted bool
}

type LiteralMapExpr struct {
	Entries []LiteralMapEntry
}

// ExternalReference names a symbol exported by another module.
type ExternalReference struct {
	ModuleName string
	Name       string
}

type ExternalExpr struct {
	Ref ExternalReference
}

type InvokeFunctionExpr struct {
	Fn   Expr
	Args []Expr
}

// ExpressionType is a type written as an expression with optional type arguments.
type ExpressionType struct {
	Value      Expr
	TypeParams []Type
}

func (*LiteralExpr) exprNode()        {}
func (*LiteralArrayExpr) exprNode()   {}
func (*LiteralMapExpr) exprNode()     {}
func (*ExternalExpr) exprNode()       {}
func (*InvokeFunctionExpr) exprNode() {}
func (*ExpressionType) typeNode()     {}

func Literal(v any) *LiteralExpr { return &LiteralExpr{Value: v} }

func LiteralArray(entries ...Expr) *LiteralArrayExpr { return &LiteralArrayExpr{Entries: entries} }

func LiteralMap(entries ...LiteralMapEntry) *LiteralMapExpr { return &LiteralMapExpr{Entries: entries} }

func ImportExpr(ref ExternalReference) *ExternalExpr { return &ExternalExpr{Ref: ref} }

func (e *ExternalExpr) CallFn(args ...Expr) *InvokeFunctionExpr {
	return &InvokeFunctionExpr{Fn: e, Args: args}
}

func ExprType(value Expr, params ...Type) *ExpressionType {
	return &ExpressionType{Value: value, TypeParams: params}
}
