package driver

import (
	"fmt"

	"basedef/internal/diag"
	"basedef/internal/observ"
	"basedef/internal/source"
)

// Field is one generated static field, already printed.
type Field struct {
	Name        string
	Initializer string
	Type        string
}

// ClassOutput is the generated output of one class.
type ClassOutput struct {
	Name   string
	Span   source.Span
	Fields []Field
}

// FileResult holds the outcome for one source file.
type FileResult struct {
	Path    string
	FileID  source.FileID
	Bag     *diag.Bag // parse + compile diagnostics, sorted
	Classes []ClassOutput
	Imports []string // import statements the printed fields need
	Cached  bool
}

// Result is the outcome of a Compile run. Files are ordered by path.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	Bag     *diag.Bag // диагностики уровня запуска: нет исходников, тайминги
	Timer   *observ.Timer
}

// Diagnostics merges every file bag and the run bag into one sorted bag.
func (r *Result) Diagnostics() *diag.Bag {
	out := diag.NewBag(1)
	if r == nil {
		return out
	}
	for _, f := range r.Files {
		out.Merge(f.Bag)
	}
	out.Merge(r.Bag)
	out.Sort()
	return out
}

// HasErrors reports whether any file or the run itself has errors.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	if r.Bag != nil && r.Bag.HasErrors() {
		return true
	}
	for _, f := range r.Files {
		if f.Bag != nil && f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Lines renders every generated field as `Class.field = initializer;`.
func (r *Result) Lines() []string {
	if r == nil {
		return nil
	}
	var out []string
	for _, f := range r.Files {
		for _, cls := range f.Classes {
			for _, fld := range cls.Fields {
				out = append(out, fmt.Sprintf("%s.%s = %s;", cls.Name, fld.Name, fld.Initializer))
			}
		}
	}
	return out
}

// ClassCount returns the number of classes that received generated fields.
func (r *Result) ClassCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Classes)
	}
	return n
}
