package eval

import (
	"errors"
	"math"
	"testing"

	"basedef/internal/ast"
	"basedef/internal/diag"
	"basedef/internal/parser"
	"basedef/internal/source"
)

func buildProgram(t *testing.T, files map[string]string) (*Program, map[string]*ast.File) {
	t.Helper()
	fs := source.NewFileSet("")
	parsed := make(map[string]*ast.File, len(files))
	prog := NewProgram()
	for name, src := range files {
		bag := diag.NewBag(20)
		f := parser.ParseFile(fs.Get(fs.AddVirtual(name, []byte(src))), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
		if bag.HasErrors() {
			t.Fatalf("%s: parse errors: %+v", name, bag.Items())
		}
		parsed[name] = f
		prog.Add(f)
	}
	return prog, parsed
}

func evalConst(t *testing.T, ev *PartialEvaluator, f *ast.File, name string) (Value, error) {
	t.Helper()
	c, ok := f.Const(name)
	if !ok {
		t.Fatalf("const %s not found", name)
	}
	return ev.Evaluate(f, c.Value)
}

func TestEvaluateScalars(t *testing.T) {
	prog, files := buildProgram(t, map[string]string{"src/main.ts": `
const S = 'a' + 'b';
const N = (1 + 2) * 3 - 4 / 2;
const NEG = -N;
const MIX = 'n' + 1 + 2;
const NUMSTR = 1 + 2 + 'n';
const NOT = !'';
const DIV0 = 1 / 0;
const FLOAT = 0.1 * 3;
const BIG = 1e21 + 'x';
const ARR = ['a', ...['b', 'c']];
const OBJ = {a: 1, b: 2, ...{a: 3}};
const LEN = ARR.length;
const PICK = OBJ.a + OBJ['b'];
const IDX = ARR[1];
const MISSING = OBJ.zzz;
const STRIDX = 'héllo'[1];
const UNDEF_LET;
const ARRSTR = [1, null, 'x'] + '';
const IDXINF = ['a'][1 / 0];
const IDXHUGE = 'abc'[1e19];
const IDXNAN = ['a'][0 / 0];
const IDXFRAC = ['a', 'b'][0.5];
`})
	f := files["src/main.ts"]
	ev := NewPartialEvaluator(prog)
	tests := []struct {
		name string
		want string
		kind Kind
	}{
		{"S", "ab", KindString},
		{"N", "7", KindNumber},
		{"NEG", "-7", KindNumber},
		{"MIX", "n12", KindString},
		{"NUMSTR", "3n", KindString},
		{"NOT", "true", KindBool},
		{"DIV0", "Infinity", KindNumber},
		{"FLOAT", "0.30000000000000004", KindNumber},
		{"BIG", "1e+21x", KindString},
		{"ARR", "a,b,c", KindArray},
		{"LEN", "3", KindNumber},
		{"PICK", "5", KindNumber},
		{"IDX", "b", KindString},
		{"MISSING", "undefined", KindUndefined},
		{"STRIDX", "é", KindString},
		{"UNDEF_LET", "undefined", KindUndefined},
		{"ARRSTR", "1,,x", KindString},
		{"IDXINF", "undefined", KindUndefined},
		{"IDXHUGE", "undefined", KindUndefined},
		{"IDXNAN", "undefined", KindUndefined},
		{"IDXFRAC", "undefined", KindUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := evalConst(t, ev, f, tt.name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.Kind != tt.kind || v.String() != tt.want {
				t.Errorf("got %s %q, want %s %q", v.Kind, v.String(), tt.kind, tt.want)
			}
		})
	}

	obj, err := evalConst(t, ev, f, "OBJ")
	if err != nil {
		t.Fatal(err)
	}
	if len(obj.Props) != 2 || obj.Props[0].Key != "a" || obj.Props[0].Value.Num != 3 {
		t.Errorf("spread should overwrite in place: %+v", obj.Props)
	}
}

func TestEvaluateImports(t *testing.T) {
	prog, files := buildProgram(t, map[string]string{
		"src/dir.ts": `
import {Input} from '@angular/core';
import {PREFIX, ALIASES} from './consts';
import * as c from './consts';
import {HIDDEN} from './consts';
import {NOPE} from './missing';
const LOCAL = PREFIX + '-local';
const FROM_NS = c.PREFIX;
const ALIAS = ALIASES.first;
const REF = Input;
const BAD_HIDDEN = HIDDEN;
const BAD_MISSING = NOPE;
`,
		"src/consts.ts": `
export const PREFIX = 'app';
export const ALIASES = {first: PREFIX + 'First'};
const HIDDEN = 'secret';
`,
	})
	f := files["src/dir.ts"]
	ev := NewPartialEvaluator(prog)

	for name, want := range map[string]string{
		"LOCAL":   "app-local",
		"FROM_NS": "app",
		"ALIAS":   "appFirst",
	} {
		v, err := evalConst(t, ev, f, name)
		if err != nil || v.String() != want {
			t.Errorf("%s = %q, %v; want %q", name, v.String(), err, want)
		}
	}

	ref, err := evalConst(t, ev, f, "REF")
	if err != nil || ref.Kind != KindReference || ref.Ref.Name != "Input" || ref.Ref.From != "@angular/core" {
		t.Errorf("REF = %+v, %v", ref, err)
	}

	for _, name := range []string{"BAD_HIDDEN", "BAD_MISSING"} {
		_, err := evalConst(t, ev, f, name)
		var dyn *DynamicError
		if !errors.As(err, &dyn) || dyn.Reason != ReasonMissingImport {
			t.Errorf("%s: expected missing import error, got %v", name, err)
		}
	}
}

func TestEvaluateErrors(t *testing.T) {
	prog, files := buildProgram(t, map[string]string{"src/main.ts": `
import {Input} from '@angular/core';
const A = B;
const B = A;
const UNKNOWN = nope;
const CALL = make('x');
const ARROW = () => 'x';
const TMPL = ` + "`a${A}`" + `;
const REF_MATH = Input + 1;
const NULL_PROP = null.x;
const SPREAD = [...'abc'];
`})
	f := files["src/main.ts"]
	ev := NewPartialEvaluator(prog)
	tests := []struct {
		name   string
		reason Reason
	}{
		{"A", ReasonCycle},
		{"UNKNOWN", ReasonUnknownIdentifier},
		{"CALL", ReasonUnsupported},
		{"ARROW", ReasonUnsupported},
		{"TMPL", ReasonUnsupported},
		{"REF_MATH", ReasonUnsupported},
		{"NULL_PROP", ReasonInvalid},
		{"SPREAD", ReasonUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evalConst(t, ev, f, tt.name)
			var dyn *DynamicError
			if !errors.As(err, &dyn) {
				t.Fatalf("expected *DynamicError, got %v", err)
			}
			if dyn.Reason != tt.reason {
				t.Errorf("reason = %s, want %s (%v)", dyn.Reason, tt.reason, err)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{-1.5, "-1.5"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{math.NaN(), "NaN"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCandidates(t *testing.T) {
	got := Candidates("src/app/dir.ts", "../shared/consts")
	want := []string{"src/shared/consts.ts", "src/shared/consts/index.ts"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Candidates = %v, want %v", got, want)
	}
	if IsRelative("@angular/core") || !IsRelative("./x") {
		t.Errorf("IsRelative misclassifies specifiers")
	}
}
