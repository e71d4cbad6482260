package annotations

import (
	"fmt"

	"basedef/internal/diag"
	"basedef/internal/source"
)

// AliasResolutionError is returned when an @Input/@Output alias argument
// folds to something other than a string. It aborts analysis of the class.
type AliasResolutionError struct {
	Class   string
	Member  string
	Binding string // "input" or "output"
	Got     string // description of the value found
	Span    source.Span
}

func (e *AliasResolutionError) Error() string {
	return fmt.Sprintf("%s alias does not resolve to a string value (%s.%s is %s)", e.Binding, e.Class, e.Member, e.Got)
}

func (e *AliasResolutionError) DiagnosticCode() diag.Code {
	return diag.SemaAliasNotString
}

func (e *AliasResolutionError) ErrorSpan() source.Span {
	return e.Span
}
