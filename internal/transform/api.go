package transform

import (
	"basedef/internal/diag"
	"basedef/internal/output"
	"basedef/internal/reflection"
)

// Precedence orders handlers that match the same class.
type Precedence uint8

const (
	// PrecedencePrimary handlers own the class; at most one may match.
	PrecedencePrimary Precedence = iota
	// PrecedenceShared handlers run next to the primary one.
	PrecedenceShared
	// PrecedenceWeak handlers only run when nothing stronger matched.
	PrecedenceWeak
)

func (p Precedence) String() string {
	switch p {
	case PrecedencePrimary:
		return "primary"
	case PrecedenceShared:
		return "shared"
	case PrecedenceWeak:
		return "weak"
	}
	return "unknown"
}

// DetectResult is what Detect found. Trigger is the decorator that caused the
// match, nil when the match came from members.
type DetectResult[D any] struct {
	Metadata D
	Trigger  *reflection.Decorator
}

// AnalysisOutput carries the analysis and any non-fatal diagnostics.
type AnalysisOutput[A any] struct {
	Analysis    A
	Diagnostics []diag.Diagnostic
}

// CompileResult is one generated static field of a class.
type CompileResult struct {
	Name        string
	Initializer output.Expr
	Type        output.Type
	Statements  []output.Expr
}

// DecoratorHandler is the detect → analyze → compile protocol of one handler.
// Handlers hold no per-class state; the orchestrator threads D and A through.
type DecoratorHandler[D, A any] interface {
	Name() string
	Precedence() Precedence
	Detect(class *reflection.Class, decorators []reflection.Decorator) (DetectResult[D], bool)
	Analyze(class *reflection.Class, metadata D) (AnalysisOutput[A], error)
	Compile(class *reflection.Class, analysis A) []CompileResult
}
