package eval

import (
	"math"
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
	KindReference
)

var kindNames = [...]string{
	KindUndefined: "undefined",
	KindNull:      "null",
	KindString:    "string",
	KindNumber:    "number",
	KindBool:      "boolean",
	KindArray:     "array",
	KindObject:    "object",
	KindReference: "reference",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Reference is a symbol imported from a module the evaluator does not load,
// e.g. `@angular/core`. Name is dotted for property chains (`ns.A.b`).
type Reference struct {
	Name string
	From string
}

// Prop is one object entry; objects keep insertion order.
type Prop struct {
	Key   string
	Value Value
}

// Value is the result of evaluating a constant expression.
type Value struct {
	Kind  Kind
	Str   string
	Num   float64
	Bool  bool
	Elems []Value
	Props []Prop
	Ref   *Reference
}

func Undefined() Value           { return Value{Kind: KindUndefined} }
func Null() Value                { return Value{Kind: KindNull} }
func String(s string) Value      { return Value{Kind: KindString, Str: s} }
func Number(n float64) Value     { return Value{Kind: KindNumber, Num: n} }
func Bool(b bool) Value          { return Value{Kind: KindBool, Bool: b} }
func Array(elems ...Value) Value { return Value{Kind: KindArray, Elems: elems} }

// AsString returns the string payload when v is a string.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// Get looks up an object property.
func (v Value) Get(key string) (Value, bool) {
	for _, p := range v.Props {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// set assigns key with object semantics: an existing key keeps its position.
func (v *Value) set(key string, val Value) {
	for i := range v.Props {
		if v.Props[i].Key == key {
			v.Props[i].Value = val
			return
		}
	}
	v.Props = append(v.Props, Prop{Key: key, Value: val})
}

func (v Value) truthy() bool {
	switch v.Kind {
	case KindUndefined, KindNull:
		return false
	case KindString:
		return v.Str != ""
	case KindNumber:
		return v.Num != 0 && !math.IsNaN(v.Num)
	case KindBool:
		return v.Bool
	}
	return true
}

func (v Value) toNumber() float64 {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	case KindNull:
		return 0
	case KindString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return 0
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n
		}
	}
	return math.NaN()
}

// formatNumber renders n the way JavaScript's String(n) does for the common cases.
func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}
	if a := math.Abs(n); a >= 1e21 || a < 1e-6 {
		s := strconv.FormatFloat(n, 'e', -1, 64)
		// Go: 1e+21, 1e-07 — JS: 1e+21, 1e-7
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + exp
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// String renders v with JavaScript string-conversion semantics.
func (v Value) String() string {
	switch v.Kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindString:
		return v.Str
	case KindNumber:
		return formatNumber(v.Num)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindArray:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			if e.Kind != KindUndefined && e.Kind != KindNull {
				parts[i] = e.String()
			}
		}
		return strings.Join(parts, ",")
	case KindObject:
		return "[object Object]"
	case KindReference:
		return v.Ref.Name
	}
	return ""
}

// Describe is a short form for diagnostics: the kind, plus the value for scalars.
func (v Value) Describe() string {
	switch v.Kind {
	case KindNumber, KindBool:
		return v.Kind.String() + " " + v.String()
	case KindString:
		return "string " + strconv.Quote(v.Str)
	case KindReference:
		return "reference to " + v.Ref.Name + " from " + strconv.Quote(v.Ref.From)
	}
	return v.Kind.String()
}
