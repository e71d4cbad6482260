package transform

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"basedef/internal/ast"
	"basedef/internal/diag"
	"basedef/internal/eval"
	"basedef/internal/reflection"
	"basedef/internal/source"
	"basedef/internal/trace"
)

// Coded is implemented by analysis errors that map to a specific diagnostic code.
type Coded interface {
	DiagnosticCode() diag.Code
}

// Located is implemented by analysis errors that point at source.
type Located interface {
	ErrorSpan() source.Span
}

// ClassResult is the generated output for one class.
type ClassResult struct {
	Class  *reflection.Class
	Name   string
	Span   source.Span
	Fields []CompileResult
}

// Compilation runs the registered handlers over classes. Handlers are tried
// in registration order.
type Compilation struct {
	host     *reflection.Host
	handlers []Handler
}

func NewCompilation(host *reflection.Host, handlers ...Handler) *Compilation {
	return &Compilation{host: host, handlers: handlers}
}

type match struct {
	handler   Handler
	detection Detection
}

// CompileFile runs every class of file through the handlers. Classes that
// produce no fields are left out of the result.
func (c *Compilation) CompileFile(ctx context.Context, file *ast.File, r diag.Reporter) []ClassResult {
	if r == nil {
		r = diag.NopReporter{}
	}
	var out []ClassResult
	for _, cls := range c.host.Classes(file) {
		if res, ok := c.CompileClass(ctx, cls, r); ok {
			out = append(out, res)
		}
	}
	return out
}

// CompileClass drives one class through detect → analyze → compile.
func (c *Compilation) CompileClass(ctx context.Context, cls *reflection.Class, r diag.Reporter) (ClassResult, bool) {
	if r == nil {
		r = diag.NopReporter{}
	}
	ctx, span := trace.Start(ctx, trace.ScopeClass, "class:"+cls.Name)

	var matches []match
	for _, h := range c.handlers {
		if det, ok := h.Detect(cls, cls.Decorators); ok {
			matches = append(matches, match{handler: h, detection: det})
		}
	}
	matches, ok := c.selectMatches(cls, matches, r)
	if !ok || len(matches) == 0 {
		span.End("no match")
		return ClassResult{}, false
	}

	res := ClassResult{Class: cls, Name: cls.Name, Span: cls.Span}
	for _, m := range matches {
		res.Fields = append(res.Fields, c.runHandler(ctx, cls, m, r)...)
	}
	span.WithExtra("fields", strconv.Itoa(len(res.Fields))).End("")
	return res, len(res.Fields) > 0
}

// selectMatches applies precedence: WEAK only survives alone, SHARED runs
// next to a PRIMARY, and a second PRIMARY is an error for the class.
func (c *Compilation) selectMatches(cls *reflection.Class, matches []match, r diag.Reporter) ([]match, bool) {
	hasNonWeak := false
	var primaries []string
	for _, m := range matches {
		switch m.handler.Precedence() {
		case PrecedencePrimary:
			primaries = append(primaries, m.handler.Name())
			hasNonWeak = true
		case PrecedenceShared:
			hasNonWeak = true
		}
	}
	if len(primaries) > 1 {
		diag.ReportError(r, diag.SemaMultiplePrimaryHandlers, cls.NameSpan,
			fmt.Sprintf("class %s is claimed by more than one primary handler: %s", cls.Name, strings.Join(primaries, ", "))).
			Emit()
		return nil, false
	}
	if !hasNonWeak {
		return matches, true
	}
	kept := matches[:0:0]
	for _, m := range matches {
		if m.handler.Precedence() != PrecedenceWeak {
			kept = append(kept, m)
		}
	}
	return kept, true
}

func (c *Compilation) runHandler(ctx context.Context, cls *reflection.Class, m match, r diag.Reporter) []CompileResult {
	ctx, span := trace.Start(ctx, trace.ScopeClass, "handler:"+m.handler.Name())
	analysis, diags, err := m.handler.Analyze(cls, m.detection.Metadata)
	for _, d := range diags {
		r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
	if err != nil {
		reportAnalysisError(cls, m.handler, err, r)
		trace.Failure(ctx, trace.ScopeClass, "analyze:"+cls.Name, err.Error())
		span.End("failed")
		return nil
	}
	fields := m.handler.Compile(cls, analysis)
	span.End("")
	return fields
}

// AnalysisErrorCode maps an analysis error to its diagnostic code.
func AnalysisErrorCode(err error) diag.Code {
	var coded Coded
	if errors.As(err, &coded) {
		return coded.DiagnosticCode()
	}
	var dyn *eval.DynamicError
	if errors.As(err, &dyn) {
		return diag.SemaNotConstant
	}
	return diag.SemaAnalysisFailed
}

func reportAnalysisError(cls *reflection.Class, h Handler, err error, r diag.Reporter) {
	primary := cls.NameSpan
	var loc Located
	if errors.As(err, &loc) {
		if sp := loc.ErrorSpan(); !sp.Empty() {
			primary = sp
		}
	}
	b := diag.ReportError(r, AnalysisErrorCode(err), primary, err.Error())
	if primary != cls.NameSpan {
		b.WithNote(cls.NameSpan, fmt.Sprintf("while analyzing class %s (%s)", cls.Name, h.Name()))
	}
	b.Emit()
}
