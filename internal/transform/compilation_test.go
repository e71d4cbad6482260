package transform

import (
	"context"
	"errors"
	"testing"

	"basedef/internal/ast"
	"basedef/internal/diag"
	"basedef/internal/eval"
	"basedef/internal/output"
	"basedef/internal/parser"
	"basedef/internal/reflection"
	"basedef/internal/source"
)

// fakeHandler matches classes whose name is in match and emits one field
// named after itself.
type fakeHandler struct {
	name  string
	prec  Precedence
	match map[string]bool
	fail  map[string]error
}

func (h *fakeHandler) Name() string           { return h.name }
func (h *fakeHandler) Precedence() Precedence { return h.prec }

func (h *fakeHandler) Detect(class *reflection.Class, _ []reflection.Decorator) (DetectResult[string], bool) {
	if !h.match[class.Name] {
		return DetectResult[string]{}, false
	}
	return DetectResult[string]{Metadata: class.Name}, true
}

func (h *fakeHandler) Analyze(class *reflection.Class, md string) (AnalysisOutput[int], error) {
	if err := h.fail[md]; err != nil {
		return AnalysisOutput[int]{}, err
	}
	return AnalysisOutput[int]{Analysis: len(md)}, nil
}

func (h *fakeHandler) Compile(class *reflection.Class, n int) []CompileResult {
	return []CompileResult{{Name: h.name, Initializer: output.Literal(float64(n))}}
}

func handler(name string, prec Precedence, classes ...string) *fakeHandler {
	h := &fakeHandler{name: name, prec: prec, match: map[string]bool{}, fail: map[string]error{}}
	for _, c := range classes {
		h.match[c] = true
	}
	return h
}

func parseClasses(t *testing.T, src string) *ast.File {
	t.Helper()
	fs := source.NewFileSet("")
	id := fs.AddVirtual("a.ts", []byte(src))
	return parser.ParseFile(fs.Get(id), parser.Options{})
}

func fieldNames(res ClassResult) []string {
	out := make([]string, 0, len(res.Fields))
	for _, f := range res.Fields {
		out = append(out, f.Name)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPrecedence(t *testing.T) {
	file := parseClasses(t, `
class OnlyWeak {}
class WeakAndShared {}
class All {}
class TwoPrimaries {}
class Nothing {}
`)
	primary := handler("primary", PrecedencePrimary, "All", "TwoPrimaries")
	primary2 := handler("primary2", PrecedencePrimary, "TwoPrimaries")
	shared := handler("shared", PrecedenceShared, "WeakAndShared", "All")
	weak := handler("weak", PrecedenceWeak, "OnlyWeak", "WeakAndShared", "All", "TwoPrimaries")

	comp := NewCompilation(reflection.NewHost(""),
		Erase[string, int](weak), Erase[string, int](primary), Erase[string, int](shared), Erase[string, int](primary2))
	bag := diag.NewBag(10)
	results := comp.CompileFile(context.Background(), file, diag.BagReporter{Bag: bag})

	want := map[string][]string{
		"OnlyWeak":      {"weak"},
		"WeakAndShared": {"shared"},
		"All":           {"primary", "shared"},
	}
	if len(results) != len(want) {
		t.Fatalf("expected %d class results, got %d", len(want), len(results))
	}
	order := []string{"OnlyWeak", "WeakAndShared", "All"}
	for i, res := range results {
		if res.Name != order[i] {
			t.Errorf("result %d is %s, want %s", i, res.Name, order[i])
		}
		if got := fieldNames(res); !equal(got, want[res.Name]) {
			t.Errorf("%s: fields %v, want %v", res.Name, got, want[res.Name])
		}
	}

	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.SemaMultiplePrimaryHandlers {
		t.Fatalf("expected one multiple-primary diagnostic, got %+v", items)
	}
}

type codedErr struct{ span source.Span }

func (codedErr) Error() string             { return "alias is not a string" }
func (codedErr) DiagnosticCode() diag.Code { return diag.SemaAliasNotString }
func (e codedErr) ErrorSpan() source.Span  { return e.span }

func TestAnalysisErrorsAreClassScoped(t *testing.T) {
	file := parseClasses(t, `
class Coded {}
class Dynamic {}
class Plain {}
class Fine {}
`)
	h := handler("weak", PrecedenceWeak, "Coded", "Dynamic", "Plain", "Fine")
	alt := source.Span{File: file.ID, Start: 1, End: 3}
	h.fail["Coded"] = codedErr{span: alt}
	h.fail["Dynamic"] = errors.Join(errors.New("context"), &eval.DynamicError{Reason: eval.ReasonUnknownIdentifier})
	h.fail["Plain"] = errors.New("boom")

	comp := NewCompilation(reflection.NewHost(""), Erase[string, int](h))
	bag := diag.NewBag(10)
	results := comp.CompileFile(context.Background(), file, diag.BagReporter{Bag: bag})
	if len(results) != 1 || results[0].Name != "Fine" {
		t.Fatalf("only Fine should compile, got %+v", results)
	}

	wantCodes := []diag.Code{diag.SemaAliasNotString, diag.SemaNotConstant, diag.SemaAnalysisFailed}
	items := bag.Items()
	if len(items) != len(wantCodes) {
		t.Fatalf("expected %d diagnostics, got %+v", len(wantCodes), items)
	}
	for i, code := range wantCodes {
		if items[i].Code != code {
			t.Errorf("diagnostic %d: %s, want %s", i, items[i].Code.ID(), code.ID())
		}
	}
	if items[0].Primary != alt || len(items[0].Notes) != 1 {
		t.Errorf("coded error should point at its own span with a class note: %+v", items[0])
	}
	if len(items[2].Notes) != 0 {
		t.Errorf("plain error anchored at the class should have no note")
	}
}

func TestEraseRejectsForeignMetadata(t *testing.T) {
	h := Erase[string, int](handler("weak", PrecedenceWeak))
	if _, _, err := h.Analyze(&reflection.Class{Name: "X"}, 42); err == nil {
		t.Errorf("expected error for metadata of the wrong type")
	}
	if got := h.Compile(&reflection.Class{Name: "X"}, "not an int"); got != nil {
		t.Errorf("expected nil fields for analysis of the wrong type, got %v", got)
	}
}

func TestPrecedenceString(t *testing.T) {
	for p, want := range map[Precedence]string{
		PrecedencePrimary: "primary",
		PrecedenceShared:  "shared",
		PrecedenceWeak:    "weak",
	} {
		if p.String() != want {
			t.Errorf("%d.String() = %s, want %s", p, p.String(), want)
		}
	}
}
