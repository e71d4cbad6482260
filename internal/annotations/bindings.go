package annotations

import (
	"fmt"

	"basedef/internal/diag"
)

// bindings is an ordered map keyed by property name with object-assignment
// semantics: a repeated key keeps its first position and takes the last value.
type bindings[T any] struct {
	kind  string
	items []T
	index map[string]int
}

func newBindings[T any](kind string) *bindings[T] {
	return &bindings[T]{kind: kind, items: []T{}, index: make(map[string]int)}
}

// put stores v under c.Property. On a repeated key it returns a warning.
func (b *bindings[T]) put(c Candidate, v T) (diag.Diagnostic, bool) {
	if i, ok := b.index[c.Property]; ok {
		b.items[i] = v
		return diag.New(diag.SevWarning, diag.SemaDuplicateBinding, c.Decorator.Span,
			fmt.Sprintf("%s %q is bound more than once; the last binding wins", b.kind, c.Property)), true
	}
	b.index[c.Property] = len(b.items)
	b.items = append(b.items, v)
	return diag.Diagnostic{}, false
}
