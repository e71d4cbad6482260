package transform

import (
	"fmt"

	"basedef/internal/diag"
	"basedef/internal/reflection"
)

// Handler is a DecoratorHandler with its type parameters erased, so handlers
// with different metadata types can share one registry.
type Handler interface {
	Name() string
	Precedence() Precedence
	Detect(class *reflection.Class, decorators []reflection.Decorator) (Detection, bool)
	Analyze(class *reflection.Class, metadata any) (any, []diag.Diagnostic, error)
	Compile(class *reflection.Class, analysis any) []CompileResult
}

// Detection is an erased DetectResult.
type Detection struct {
	Metadata any
	Trigger  *reflection.Decorator
}

// Erase adapts a typed handler to Handler.
func Erase[D, A any](h DecoratorHandler[D, A]) Handler {
	return erased[D, A]{h: h}
}

type erased[D, A any] struct {
	h DecoratorHandler[D, A]
}

func (e erased[D, A]) Name() string           { return e.h.Name() }
func (e erased[D, A]) Precedence() Precedence { return e.h.Precedence() }

func (e erased[D, A]) Detect(class *reflection.Class, decorators []reflection.Decorator) (Detection, bool) {
	res, ok := e.h.Detect(class, decorators)
	if !ok {
		return Detection{}, false
	}
	return Detection{Metadata: res.Metadata, Trigger: res.Trigger}, true
}

func (e erased[D, A]) Analyze(class *reflection.Class, metadata any) (any, []diag.Diagnostic, error) {
	md, ok := metadata.(D)
	if !ok {
		return nil, nil, fmt.Errorf("handler %s: metadata has type %T", e.h.Name(), metadata)
	}
	out, err := e.h.Analyze(class, md)
	if err != nil {
		return nil, nil, err
	}
	return out.Analysis, out.Diagnostics, nil
}

func (e erased[D, A]) Compile(class *reflection.Class, analysis any) []CompileResult {
	a, ok := analysis.(A)
	if !ok {
		return nil
	}
	return e.h.Compile(class, a)
}
