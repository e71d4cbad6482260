package ast

import (
	"basedef/internal/source"
)

// File is the parse result of one source file. It owns its expression arena,
// so ExprIDs are only meaningful together with their File.
type File struct {
	ID      source.FileID
	Path    string
	Span    source.Span
	Imports []Import
	Consts  []Const
	Classes []Class
	Exprs   *Exprs
}

func NewFile(id source.FileID, path string) *File {
	return &File{
		ID:    id,
		Path:  path,
		Exprs: NewExprs(0),
	}
}

// Expr is a shortcut for f.Exprs.Get.
func (f *File) Expr(id ExprID) *Expr {
	if f == nil || f.Exprs == nil {
		return nil
	}
	return f.Exprs.Get(id)
}

// Const finds a top-level binding by name.
func (f *File) Const(name string) (*Const, bool) {
	for i := range f.Consts {
		if f.Consts[i].Name == name {
			return &f.Consts[i], true
		}
	}
	return nil, false
}

// Class finds a class by name.
func (f *File) Class(name string) (*Class, bool) {
	for i := range f.Classes {
		if f.Classes[i].Name == name {
			return &f.Classes[i], true
		}
	}
	return nil, false
}

// LookupImport resolves a local identifier to the import that binds it.
// For namespace imports the returned spec is zero and ns is true.
func (f *File) LookupImport(local string) (imp *Import, spec ImportSpec, ns bool, ok bool) {
	for i := range f.Imports {
		im := &f.Imports[i]
		if im.Namespace != "" && im.Namespace == local {
			return im, ImportSpec{}, true, true
		}
		for _, s := range im.Specs {
			if s.Local == local {
				return im, s, false, true
			}
		}
	}
	return nil, ImportSpec{}, false, false
}
