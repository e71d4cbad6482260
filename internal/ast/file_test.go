package ast

import "testing"

func TestArenaIDsAreOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Error("id 0 must be nil")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 {
		t.Errorf("Allocate = %d, value %v", id, a.Get(id))
	}
	if a.Get(2) != nil {
		t.Error("out of range id must be nil")
	}
}

func TestLookupImport(t *testing.T) {
	f := NewFile(0, "a.ts")
	f.Imports = []Import{
		{From: "@angular/core", Specs: []ImportSpec{{Name: "Input", Local: "In"}}},
		{From: "@angular/core", Namespace: "core"},
	}

	imp, spec, ns, ok := f.LookupImport("In")
	if !ok || ns || spec.Name != "Input" || imp.From != "@angular/core" {
		t.Errorf("In: %v %+v %v %v", imp, spec, ns, ok)
	}
	if _, _, ns, ok = f.LookupImport("core"); !ok || !ns {
		t.Errorf("core: ns=%v ok=%v", ns, ok)
	}
	if _, _, _, ok = f.LookupImport("Input"); ok {
		t.Error("exported name must not resolve without local binding")
	}
}
