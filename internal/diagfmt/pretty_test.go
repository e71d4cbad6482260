package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"basedef/internal/diag"
	"basedef/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet("/home/user/project")
	content := []byte("const x = 'unterminated\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.ts", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 10, End: 23},
		"Unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/test.ts:1:11"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/test.ts:1:11"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.ts:1:11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR LEX1002: Unterminated string literal") {
				t.Errorf("Expected header line, got:\n%s", output)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet("")
	content := []byte("class A {\n  @Input(42) a: string;\n}\n")
	fileID := fs.AddVirtual("a.ts", content)
	start := uint32(strings.Index(string(content), "42"))

	bag := diag.NewBag(4)
	d := diag.New(diag.SevError, diag.SemaAliasNotString, source.Span{File: fileID, Start: start, End: start + 2}, "input alias does not resolve to a string value")
	d = d.WithNote(source.Span{File: fileID, Start: 6, End: 7}, "while analyzing class A (BaseDefHandler)")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowNotes: true, Summary: true})
	want := strings.Join([]string{
		"a.ts:2:10: ERROR SEM3101: input alias does not resolve to a string value",
		" 1 | class A {",
		" 2 |   @Input(42) a: string;",
		"   |          ^~",
		"  note: a.ts:1:7: while analyzing class A (BaseDefHandler)",
		"1 error, 0 warnings",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("pretty output mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyWideCharacters(t *testing.T) {
	fs := source.NewFileSet("")
	content := []byte("const 名前 = 1 + x;\n")
	fileID := fs.AddVirtual("w.ts", content)
	start := uint32(strings.Index(string(content), "x"))

	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevWarning, diag.SemaNotConstant, source.Span{File: fileID, Start: start, End: start + 1}, "not constant"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	// "const 名前 = 1 + " is 17 columns wide: each CJK rune takes two cells.
	caret := lines[2]
	if idx := strings.Index(caret, "^"); idx != len("   | ")+17 {
		t.Errorf("caret at %d, line %q", idx, caret)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet("")
	fileID := fs.AddVirtual("c.ts", []byte("x\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.SynUnexpectedToken, source.Span{File: fileID, Start: 0, End: 1}, "boom"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output has escape codes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escape codes: %q", colored.String())
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{"": PathModeAuto, "abs": PathModeAbsolute, "relative": PathModeRelative, "basename": PathModeBasename} {
		if got, ok := ParsePathMode(in); !ok || got != want {
			t.Errorf("ParsePathMode(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParsePathMode("weird"); ok {
		t.Errorf("expected unknown mode to fail")
	}
}
