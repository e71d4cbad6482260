package reflection

import (
	"basedef/internal/ast"
	"basedef/internal/output"
	"basedef/internal/source"
)

// Class is a class declaration as seen by the handlers.
type Class struct {
	Name       string
	NameSpan   source.Span
	File       *ast.File
	Decl       *ast.Class
	Decorators []Decorator // nil when the class carries none
	Span       source.Span
}

// ClassMember is one member of a class with resolved decorators.
type ClassMember struct {
	Name       string
	Kind       ast.MemberKind
	Static     bool
	Decorators []Decorator // nil when the member carries none
	Span       source.Span
}

// Host resolves decorators against a file's imports. It keeps no per-file
// state and is safe for concurrent use.
type Host struct {
	coreModule string
}

func NewHost(coreModule string) *Host {
	if coreModule == "" {
		coreModule = output.DefaultCoreModule
	}
	return &Host{coreModule: coreModule}
}

// CoreModule returns the module specifier decorators must come from to be trusted.
func (h *Host) CoreModule() string {
	return h.coreModule
}

// Classes returns the classes of file in declaration order.
func (h *Host) Classes(file *ast.File) []*Class {
	if file == nil {
		return nil
	}
	out := make([]*Class, 0, len(file.Classes))
	for i := range file.Classes {
		decl := &file.Classes[i]
		out = append(out, &Class{
			Name:       decl.Name,
			NameSpan:   decl.NameSpan,
			File:       file,
			Decl:       decl,
			Decorators: h.resolveAll(file, decl.Decorators),
			Span:       decl.Span,
		})
	}
	return out
}

// GetMembersOfClass returns members in declaration order.
func (h *Host) GetMembersOfClass(class *Class) []ClassMember {
	if class == nil || class.Decl == nil {
		return nil
	}
	out := make([]ClassMember, 0, len(class.Decl.Members))
	for _, m := range class.Decl.Members {
		out = append(out, ClassMember{
			Name:       m.Name,
			Kind:       m.Kind,
			Static:     m.Static,
			Decorators: h.resolveAll(class.File, m.Decorators),
			Span:       m.Span,
		})
	}
	return out
}

func (h *Host) resolveAll(file *ast.File, decs []ast.Decorator) []Decorator {
	if len(decs) == 0 {
		return nil
	}
	out := make([]Decorator, 0, len(decs))
	for _, d := range decs {
		out = append(out, h.Resolve(file, d))
	}
	return out
}

// Resolve binds a syntactic decorator to its import and classifies it.
//
//	import {Input as In} from '@angular/core';  @In()      -> Name Input, trusted
//	import * as core from '@angular/core';      @core.Input -> Name Input, trusted
//	@Input() without an import                               -> Name Input, untrusted
func (h *Host) Resolve(file *ast.File, d ast.Decorator) Decorator {
	out := Decorator{
		Name:  d.Name,
		Local: d.Name,
		Args:  d.Args,
		Span:  d.Span,
	}
	if d.Qualifier != "" {
		out.Local = d.Qualifier + "." + d.Name
		if imp, _, ns, ok := file.LookupImport(d.Qualifier); ok && ns {
			out.Import = &Import{Name: d.Name, From: imp.From}
		}
	} else if imp, spec, ns, ok := file.LookupImport(d.Name); ok && !ns {
		out.Name = spec.Name
		out.Import = &Import{Name: spec.Name, From: imp.From}
	}
	out.Marker = MarkerOf(out.Name)
	out.Trusted = out.Import != nil && out.Import.From == h.coreModule
	return out
}
