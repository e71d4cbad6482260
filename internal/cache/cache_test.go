package cache

import (
	"os"
	"path/filepath"
	"testing"

	"basedef/internal/diag"
	"basedef/internal/project"
	"basedef/internal/source"
)

func samplePayload(hash project.Digest) *Payload {
	return &Payload{
		Schema:  SchemaVersion,
		Path:    "src/base.ts",
		Hash:    hash,
		Imports: []string{"import * as i0 from '@angular/core';"},
		Classes: []ClassPayload{{
			Name: "Base", Start: 10, End: 40,
			Fields: []FieldPayload{{Name: "ngBaseDef", Initializer: "i0.ɵɵdefineBase({inputs: {a: 'a'}})", Type: "i0.ɵɵBaseDef"}},
		}},
		Diagnostics: []DiagPayload{{Severity: uint8(diag.SevWarning), Code: uint16(diag.SemaDuplicateBinding), Message: "dup", Start: 1, End: 2}},
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "basedef"))
	if err != nil {
		t.Fatal(err)
	}
	hash := project.Digest{7}
	key := Key("@angular/core", hash)

	var miss Payload
	if ok, err := c.Get(key, &miss); ok || err != nil {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}

	if err := c.Put(key, samplePayload(hash)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var got Payload
	ok, err := c.Get(key, &got)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !got.Valid(hash) || got.Valid(project.Digest{8}) {
		t.Errorf("Valid mismatch")
	}
	if len(got.Classes) != 1 || got.Classes[0].Fields[0].Type != "i0.ɵɵBaseDef" || got.Diagnostics[0].Message != "dup" {
		t.Errorf("payload: %+v", got)
	}

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(c.pathFor(key)))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one cache file, got %d", len(entries))
	}

	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if ok, _ := c.Get(key, &got); ok {
		t.Errorf("expected miss after DropAll")
	}
}

func TestDiskCacheCorruptEntry(t *testing.T) {
	c, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Key("@angular/core", project.Digest{1})
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}
	var out Payload
	if ok, err := c.Get(key, &out); ok || err == nil {
		t.Errorf("corrupt entry: ok=%v err=%v", ok, err)
	}
}

func TestKeyDependsOnCoreModule(t *testing.T) {
	h := project.Digest{1}
	if Key("@angular/core", h) == Key("@my/core", h) {
		t.Errorf("key must change with the core module")
	}
	if Key("@angular/core", h) != Key("@angular/core", h) {
		t.Errorf("key must be deterministic")
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory(4)
	hash := project.Digest{3}
	key := Key("@angular/core", hash)
	m.Put(key, samplePayload(hash))
	if _, ok := m.Get("src/base.ts", Key("@my/core", hash)); ok {
		t.Errorf("expected miss on different key")
	}
	if p, ok := m.Get("src/base.ts", key); !ok || p.Classes[0].Name != "Base" {
		t.Errorf("expected hit")
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d", m.Len())
	}
	var nilMem *Memory
	nilMem.Put(key, samplePayload(hash))
	if _, ok := nilMem.Get("src/base.ts", key); ok || nilMem.Len() != 0 {
		t.Errorf("nil cache must be inert")
	}
}

func TestDiagnosticsRoundTrip(t *testing.T) {
	const file source.FileID = 3
	d := diag.New(diag.SevError, diag.SemaAliasNotString, source.Span{File: file, Start: 4, End: 6}, "bad alias").
		WithNote(source.Span{File: file, Start: 0, End: 1}, "while analyzing class A (BaseDefHandler)")

	enc, ok := EncodeDiagnostics(file, []diag.Diagnostic{d})
	if !ok {
		t.Fatal("expected cacheable diagnostics")
	}
	dec := DecodeDiagnostics(9, enc)
	if len(dec) != 1 || dec[0].Primary != (source.Span{File: 9, Start: 4, End: 6}) || dec[0].Code != diag.SemaAliasNotString {
		t.Errorf("decoded: %+v", dec)
	}
	if len(dec[0].Notes) != 1 || dec[0].Notes[0].Span.File != 9 {
		t.Errorf("notes: %+v", dec[0].Notes)
	}

	foreign := diag.New(diag.SevError, diag.SemaNotConstant, source.Span{File: file + 1}, "elsewhere")
	if _, ok := EncodeDiagnostics(file, []diag.Diagnostic{foreign}); ok {
		t.Errorf("diagnostic in another file must not be cacheable")
	}
}
