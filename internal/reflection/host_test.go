package reflection

import (
	"testing"

	"basedef/internal/ast"
	"basedef/internal/diag"
	"basedef/internal/parser"
	"basedef/internal/source"
)

func parseFile(t *testing.T, src string) *ast.File {
	t.Helper()
	fs := source.NewFileSet("")
	id := fs.AddVirtual("dir.ts", []byte(src))
	bag := diag.NewBag(50)
	f := parser.ParseFile(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %+v", bag.Items())
	}
	return f
}

func TestResolveClassifiesDecorators(t *testing.T) {
	f := parseFile(t, `
import {Directive, Input as In, Output} from '@angular/core';
import * as core from '@angular/core';
import {Input as FakeInput} from './fake';

@Directive({selector: 'x'})
class Dir {
  @In() a: string;
  @core.Output() b = 1;
  @FakeInput() c: string;
  @Input() d: string;
  @Output() @In('e2') e: string;
  plain = 1;
}
`)
	h := NewHost("")
	classes := h.Classes(f)
	if len(classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(classes))
	}
	cls := classes[0]
	if cls.File != f || cls.Decl == nil || cls.Name != "Dir" {
		t.Fatalf("class: %+v", cls)
	}
	if len(cls.Decorators) != 1 || !cls.Decorators[0].Is(MarkerPrimary) {
		t.Errorf("class decorators: %+v", cls.Decorators)
	}

	members := h.GetMembersOfClass(cls)
	if len(members) != 6 {
		t.Fatalf("expected 6 members, got %d", len(members))
	}

	tests := []struct {
		member  int
		dec     int
		name    string
		local   string
		marker  Marker
		trusted bool
	}{
		{0, 0, "Input", "In", MarkerInput, true},
		{1, 0, "Output", "core.Output", MarkerOutput, true},
		{2, 0, "Input", "FakeInput", MarkerInput, false},
		{3, 0, "Input", "Input", MarkerInput, false},
		{4, 0, "Output", "Output", MarkerOutput, true},
		{4, 1, "Input", "In", MarkerInput, true},
	}
	for _, tt := range tests {
		d := members[tt.member].Decorators[tt.dec]
		if d.Name != tt.name || d.Local != tt.local || d.Marker != tt.marker || d.Trusted != tt.trusted {
			t.Errorf("member %d decorator %d: got {%s %s %s %v}, want {%s %s %s %v}",
				tt.member, tt.dec, d.Name, d.Local, d.Marker, d.Trusted,
				tt.name, tt.local, tt.marker, tt.trusted)
		}
	}
	if members[3].Decorators[0].Import != nil {
		t.Errorf("unresolved decorator should have nil Import")
	}
	if members[5].Decorators != nil {
		t.Errorf("undecorated member should have nil decorators")
	}
	if args := members[4].Decorators[1].Args; len(args) != 1 {
		t.Errorf("expected alias argument, got %d args", len(args))
	}
}

func TestCustomCoreModule(t *testing.T) {
	f := parseFile(t, `
import {Input} from '@acme/core';
class A { @Input() x: string; }
`)
	for _, tt := range []struct {
		core    string
		trusted bool
	}{
		{"", false},
		{"@acme/core", true},
	} {
		h := NewHost(tt.core)
		members := h.GetMembersOfClass(h.Classes(f)[0])
		if got := members[0].Decorators[0].Trusted; got != tt.trusted {
			t.Errorf("core %q: trusted=%v, want %v", tt.core, got, tt.trusted)
		}
	}
}

func TestMarkerOf(t *testing.T) {
	tests := map[string]Marker{
		"Input":      MarkerInput,
		"Output":     MarkerOutput,
		"Component":  MarkerPrimary,
		"Directive":  MarkerPrimary,
		"NgModule":   MarkerPrimary,
		"Injectable": MarkerUnknown,
		"input":      MarkerUnknown,
	}
	for name, want := range tests {
		if got := MarkerOf(name); got != want {
			t.Errorf("MarkerOf(%q) = %s, want %s", name, got, want)
		}
	}
}
