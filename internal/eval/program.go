package eval

import (
	"path"
	"strings"
	"sync"

	"basedef/internal/ast"
)

// Program is the set of parsed files the evaluator may follow imports into.
// Files are keyed by slash-separated path.
type Program struct {
	mu    sync.RWMutex
	files map[string]*ast.File
}

func NewProgram(files ...*ast.File) *Program {
	p := &Program{files: make(map[string]*ast.File, len(files))}
	for _, f := range files {
		p.Add(f)
	}
	return p
}

func (p *Program) Add(f *ast.File) {
	if f == nil {
		return
	}
	p.mu.Lock()
	p.files[cleanPath(f.Path)] = f
	p.mu.Unlock()
}

// File returns the file registered under path.
func (p *Program) File(filePath string) (*ast.File, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	f, ok := p.files[cleanPath(filePath)]
	return f, ok
}

// IsRelative reports whether a module specifier points into the program.
func IsRelative(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") || spec == "." || spec == ".."
}

// Candidates lists the paths a relative specifier may resolve to, in lookup order.
func Candidates(fromFile, spec string) []string {
	base := path.Join(path.Dir(cleanPath(fromFile)), spec)
	if strings.HasSuffix(base, ".ts") {
		return []string{base}
	}
	return []string{base + ".ts", path.Join(base, "index.ts")}
}

// ResolveImport finds the file a relative import in fromFile refers to.
func (p *Program) ResolveImport(fromFile, spec string) (*ast.File, bool) {
	if !IsRelative(spec) {
		return nil, false
	}
	for _, c := range Candidates(fromFile, spec) {
		if f, ok := p.File(c); ok {
			return f, true
		}
	}
	return nil, false
}

func cleanPath(p string) string {
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}
