package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"basedef/internal/cache"
	"basedef/internal/diag"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

var sampleTree = map[string]string{
	"src/base.ts": `import {Input, Output, EventEmitter} from '@angular/core';
import {CHANGE_SUFFIX} from './names';

export abstract class Base {
  @Input() a: string;
  @Input('bAlias') b: string;
  @Output('c' + CHANGE_SUFFIX) c = new EventEmitter<string>();
}
`,
	"src/names.ts": `export const CHANGE_SUFFIX = 'Change';
`,
	"src/dir.ts": `import {Directive, Input} from '@angular/core';

@Directive({selector: '[dir]'})
export class Dir {
  @Input() value: string;
}
`,
	"src/bad.ts": `import {Input} from '@angular/core';

export class Bad {
  @Input(42) x: string;
}
`,
	"src/base.spec.ts":        `import {Input} from '@angular/core'; class T { @Input() t: string; }`,
	"src/types.d.ts":          `declare class X {}`,
	"src/node_modules/lib.ts": `import {Input} from '@angular/core'; class L { @Input() l: string; }`,
}

func TestListSources(t *testing.T) {
	root := writeTree(t, sampleTree)
	files, err := ListSources(filepath.Join(root, "src"))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	want := []string{"bad.ts", "base.ts", "dir.ts", "names.ts"}
	if !slices.Equal(names, want) {
		t.Errorf("ListSources = %v, want %v", names, want)
	}
}

func TestCompileEndToEnd(t *testing.T) {
	root := writeTree(t, sampleTree)
	var phases []string
	res, err := Compile(context.Background(), []string{filepath.Join(root, "src")}, Options{
		Jobs:     2,
		Timings:  true,
		Observer: func(ev PhaseEvent) {
			if ev.Status == PhaseEnd {
				phases = append(phases, ev.Name)
			}
		},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if !slices.Equal(phases, []string{"discover", "parse", "compile"}) {
		t.Errorf("phases = %v", phases)
	}
	if len(res.Files) != 4 {
		t.Fatalf("files = %d", len(res.Files))
	}
	for i := 1; i < len(res.Files); i++ {
		if res.Files[i-1].Path > res.Files[i].Path {
			t.Errorf("files not ordered by path: %s > %s", res.Files[i-1].Path, res.Files[i].Path)
		}
	}

	want := []string{
		"Base.ngBaseDef = i0.ɵɵdefineBase({inputs: {a: 'a', b: ['bAlias', 'b']}, outputs: {c: 'cChange'}});",
	}
	if got := res.Lines(); !slices.Equal(got, want) {
		t.Errorf("lines:\n got %q\nwant %q", got, want)
	}

	base := res.Files[1]
	if !strings.HasSuffix(base.Path, "src/base.ts") || len(base.Imports) != 1 || base.Imports[0] != "import * as i0 from '@angular/core';" {
		t.Errorf("base file: %+v", base)
	}
	if base.Classes[0].Fields[0].Type != "i0.ɵɵBaseDef" {
		t.Errorf("type: %s", base.Classes[0].Fields[0].Type)
	}

	if !res.HasErrors() {
		t.Fatalf("expected the alias error from bad.ts")
	}
	all := res.Diagnostics().Items()
	var codes []diag.Code
	for _, d := range all {
		codes = append(codes, d.Code)
	}
	if !slices.Contains(codes, diag.SemaAliasNotString) || !slices.Contains(codes, diag.ObsTimings) {
		t.Errorf("codes = %v", codes)
	}
	if res.Timer.Count("classes") != 1 || res.Timer.Count("files") != 4 {
		t.Errorf("counters: %+v", res.Timer.Report().Counters)
	}
}

func TestCompileUsesCache(t *testing.T) {
	root := writeTree(t, sampleTree)
	src := filepath.Join(root, "src")
	dc, err := cache.OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	first, err := Compile(context.Background(), []string{src}, Options{DiskCache: dc})
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range first.Files {
		if f.Cached {
			t.Errorf("%s: unexpected cache hit on a cold cache", f.Path)
		}
	}

	second, err := Compile(context.Background(), []string{src}, Options{DiskCache: dc})
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range second.Files {
		if !f.Cached {
			t.Errorf("%s: expected cache hit", f.Path)
		}
	}
	if !slices.Equal(first.Lines(), second.Lines()) {
		t.Errorf("cached output differs:\n%q\n%q", first.Lines(), second.Lines())
	}
	if !second.HasErrors() {
		t.Errorf("cached diagnostics must be replayed")
	}

	// changing an imported constant invalidates the importer
	if err := os.WriteFile(filepath.Join(src, "names.ts"), []byte("export const CHANGE_SUFFIX = 'Changed';\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	third, err := Compile(context.Background(), []string{src}, Options{DiskCache: dc})
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range third.Files {
		switch filepath.Base(f.Path) {
		case "base.ts", "names.ts":
			if f.Cached {
				t.Errorf("%s: must be recompiled after its dependency changed", f.Path)
			}
		default:
			if !f.Cached {
				t.Errorf("%s: unrelated file should stay cached", f.Path)
			}
		}
	}
	if lines := third.Lines(); len(lines) != 1 || !strings.Contains(lines[0], "'cChanged'") {
		t.Errorf("lines after change: %q", lines)
	}
}

func TestCompileMemoryCacheHonoursCoreModule(t *testing.T) {
	root := writeTree(t, sampleTree)
	src := filepath.Join(root, "src")
	mem := cache.NewMemory(8)

	if _, err := Compile(context.Background(), []string{src}, Options{Memory: mem}); err != nil {
		t.Fatal(err)
	}
	res, err := Compile(context.Background(), []string{src}, Options{Memory: mem, CoreModule: "@my/core"})
	if err != nil {
		t.Fatal(err)
	}
	if lines := res.Lines(); len(lines) != 0 {
		t.Errorf("nothing is trusted under another core module, got %q", lines)
	}
	if res.HasErrors() {
		t.Errorf("no alias is analysed when no decorator is trusted")
	}
}

func TestCompileNoSources(t *testing.T) {
	root := writeTree(t, map[string]string{"readme.md": "# nothing"})
	res, err := Compile(context.Background(), []string{root}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.ProjNoSources {
		t.Errorf("bag: %+v", items)
	}
}

func TestCompileCanceled(t *testing.T) {
	root := writeTree(t, sampleTree)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Compile(ctx, []string{filepath.Join(root, "src")}, Options{})
	if !IsCanceled(err) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func TestCompileMissingRoot(t *testing.T) {
	_, err := Compile(context.Background(), []string{filepath.Join(t.TempDir(), "absent")}, Options{})
	if err == nil {
		t.Errorf("expected an error for a missing root")
	}
}

func TestCompileOutOfRangeAliasIndex(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/index.ts": `import {Input} from '@angular/core';

export class A {
  @Input(['x'][1 / 0]) a: string;
}

export class B {
  @Input('bb') b: string;
}

export class C {
  @Input('abc'[1e19]) c: string;
}
`,
	})
	res, err := Compile(context.Background(), []string{filepath.Join(root, "src")}, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := []string{"B.ngBaseDef = i0.ɵɵdefineBase({inputs: {b: ['bb', 'b']}});"}
	if got := res.Lines(); !slices.Equal(got, want) {
		t.Errorf("lines:\n got %q\nwant %q", got, want)
	}
	var aliasErrors int
	for _, d := range res.Diagnostics().Items() {
		if d.Code == diag.SemaAliasNotString {
			aliasErrors++
		}
	}
	if aliasErrors != 2 {
		t.Errorf("alias errors = %d, want 2", aliasErrors)
	}
}

func TestCompileImportsRuntimeFromCoreModule(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/base.ts": `import {Input} from '@acme/core';

export class Base {
  @Input() a: string;
}
`,
	})
	res, err := Compile(context.Background(), []string{filepath.Join(root, "src")}, Options{CoreModule: "@acme/core"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(res.Files) != 1 || res.Files[0].Classes == nil {
		t.Fatalf("files: %+v", res.Files)
	}
	want := []string{"import * as i0 from '@acme/core';"}
	if got := res.Files[0].Imports; !slices.Equal(got, want) {
		t.Errorf("imports = %q, want %q", got, want)
	}
}

func TestCompileWarnsOnInvalidUTF8Alias(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/base.ts": "import {Output} from '@angular/core';\n\nexport class Base {\n  @Output('\xff\xfe') c: any;\n}\n",
	})
	res, err := Compile(context.Background(), []string{filepath.Join(root, "src")}, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(res.Lines()) != 1 {
		t.Fatalf("lines = %q", res.Lines())
	}
	if res.HasErrors() {
		t.Errorf("invalid UTF-8 must only warn")
	}
	items := res.Diagnostics().Items()
	if len(items) != 1 || items[0].Code != diag.LexInvalidUTF8 {
		t.Errorf("diagnostics = %+v", items)
	}
}
