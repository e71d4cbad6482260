package annotations

import (
	"fmt"

	"basedef/internal/ast"
	"basedef/internal/diag"
	"basedef/internal/eval"
	"basedef/internal/output"
	"basedef/internal/reflection"
	"basedef/internal/transform"
)

// BaseDefFieldName is the static field the generated definition is stored in.
const BaseDefFieldName = "ngBaseDef"

// Evaluator folds an expression of file to a constant value.
type Evaluator interface {
	Evaluate(file *ast.File, expr ast.ExprID) (eval.Value, error)
}

// BaseDefHandler generates `ngBaseDef` for classes with bound members but no
// primary annotation.
type BaseDefHandler struct {
	host      *reflection.Host
	evaluator Evaluator
}

var _ transform.DecoratorHandler[BaseDefDetection, output.R3BaseRefMetadata] = (*BaseDefHandler)(nil)

func NewBaseDefHandler(host *reflection.Host, evaluator Evaluator) *BaseDefHandler {
	return &BaseDefHandler{host: host, evaluator: evaluator}
}

func (h *BaseDefHandler) Name() string { return "BaseDefHandler" }

func (h *BaseDefHandler) Precedence() transform.Precedence {
	return transform.PrecedenceWeak
}

// Detect yields for classes with a trusted primary annotation; those get
// their definition from the primary handler.
func (h *BaseDefHandler) Detect(class *reflection.Class, decorators []reflection.Decorator) (transform.DetectResult[BaseDefDetection], bool) {
	if HasPrimaryAnnotation(decorators) {
		return transform.DetectResult[BaseDefDetection]{}, false
	}
	det := scanMembers(h.host.GetMembersOfClass(class))
	if det.Empty() {
		return transform.DetectResult[BaseDefDetection]{}, false
	}
	return transform.DetectResult[BaseDefDetection]{Metadata: det}, true
}

// Analyze resolves aliases. Any failure aborts the class with no partial result.
func (h *BaseDefHandler) Analyze(class *reflection.Class, det BaseDefDetection) (transform.AnalysisOutput[output.R3BaseRefMetadata], error) {
	meta := output.R3BaseRefMetadata{CoreModule: h.host.CoreModule()}
	var diags []diag.Diagnostic
	if len(det.Inputs) > 0 {
		inputs := newBindings[output.InputBinding]("input")
		for _, c := range det.Inputs {
			alias, aliased, err := h.resolveAlias(class, c, "input")
			if err != nil {
				return transform.AnalysisOutput[output.R3BaseRefMetadata]{}, err
			}
			binding := output.InputBinding{Property: c.Property}
			if aliased {
				binding.Alias, binding.Aliased = alias, true
			}
			if d, dup := inputs.put(c, binding); dup {
				diags = append(diags, d)
			}
		}
		meta.Inputs = inputs.items
	}
	if len(det.Outputs) > 0 {
		outputs := newBindings[output.OutputBinding]("output")
		for _, c := range det.Outputs {
			alias, aliased, err := h.resolveAlias(class, c, "output")
			if err != nil {
				return transform.AnalysisOutput[output.R3BaseRefMetadata]{}, err
			}
			public := c.Property
			if aliased {
				public = alias
			}
			if d, dup := outputs.put(c, output.OutputBinding{Property: c.Property, Public: public}); dup {
				diags = append(diags, d)
			}
		}
		meta.Outputs = outputs.items
	}
	return transform.AnalysisOutput[output.R3BaseRefMetadata]{Analysis: meta, Diagnostics: diags}, nil
}

// resolveAlias evaluates the first decorator argument. ok is false when the
// decorator has no arguments.
func (h *BaseDefHandler) resolveAlias(class *reflection.Class, c Candidate, binding string) (alias string, ok bool, err error) {
	if len(c.Decorator.Args) == 0 {
		return "", false, nil
	}
	arg := c.Decorator.Args[0]
	v, err := h.evaluator.Evaluate(class.File, arg)
	if err != nil {
		return "", false, fmt.Errorf("%s alias of %s.%s: %w", binding, class.Name, c.Property, err)
	}
	s, isString := v.AsString()
	if !isString {
		aerr := &AliasResolutionError{
			Class:   class.Name,
			Member:  c.Property,
			Binding: binding,
			Got:     v.Describe(),
			Span:    c.Decorator.Span,
		}
		if e := class.File.Expr(arg); e != nil {
			aerr.Span = e.Span
		}
		return "", false, aerr
	}
	return s, true, nil
}

// Compile emits the definition. It has no failure path.
func (h *BaseDefHandler) Compile(class *reflection.Class, meta output.R3BaseRefMetadata) []transform.CompileResult {
	res := output.CompileBaseDefFromMetadata(meta)
	return []transform.CompileResult{{
		Name:        BaseDefFieldName,
		Initializer: res.Expression,
		Type:        res.Type,
		Statements:  nil,
	}}
}
