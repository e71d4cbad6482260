package output

// InputBinding maps a class property to its public input name.
// When Aliased is false the binding is written as the bare property name.
type InputBinding struct {
	Property string
	Alias    string
	Aliased  bool
}

// OutputBinding maps a class property to its public event name.
type OutputBinding struct {
	Property string
	Public   string
}

// R3BaseRefMetadata is the analysed input/output metadata of one class.
// A nil list omits the key from the definition; an empty non-nil list
// emits an empty map.
type R3BaseRefMetadata struct {
	Inputs  []InputBinding
	Outputs []OutputBinding
	// CoreModule is the module the runtime is imported from; "" means
	// DefaultCoreModule.
	CoreModule string
}

// R3CompiledExpression is a generated initializer with its declared type.
type R3CompiledExpression struct {
	Expression Expr
	Type       Type
}

// CompileBaseDefFromMetadata emits
//
//	i0.ɵɵdefineBase({inputs: {...}, outputs: {...}})
//
// typed as i0.ɵɵBaseDef.
func CompileBaseDefFromMetadata(meta R3BaseRefMetadata) R3CompiledExpression {
	var def []LiteralMapEntry
	if meta.Inputs != nil {
		def = append(def, LiteralMapEntry{Key: "inputs", Value: inputsMap(meta.Inputs)})
	}
	if meta.Outputs != nil {
		def = append(def, LiteralMapEntry{Key: "outputs", Value: outputsMap(meta.Outputs)})
	}
	ids := IdentifiersFor(meta.CoreModule)
	return R3CompiledExpression{
		Expression: ImportExpr(ids.DefineBase).CallFn(LiteralMap(def...)),
		Type:       ExprType(ImportExpr(ids.BaseDef)),
	}
}

func inputsMap(inputs []InputBinding) *LiteralMapExpr {
	entries := make([]LiteralMapEntry, 0, len(inputs))
	for _, in := range inputs {
		var value Expr = Literal(in.Property)
		if in.Aliased {
			value = LiteralArray(Literal(in.Alias), Literal(in.Property))
		}
		entries = append(entries, LiteralMapEntry{Key: in.Property, Value: value})
	}
	return LiteralMap(entries...)
}

func outputsMap(outputs []OutputBinding) *LiteralMapExpr {
	entries := make([]LiteralMapEntry, 0, len(outputs))
	for _, out := range outputs {
		entries = append(entries, LiteralMapEntry{Key: out.Property, Value: Literal(out.Public)})
	}
	return LiteralMap(entries...)
}
