package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeClass, false},
		{LevelDebug, ScopeClass, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error for unknown level")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(ndjson) = %v, %v", f, err)
	}
}

func TestStartNestsSpans(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithTracer(context.Background(), tr)
	ctx, outer := Start(ctx, ScopeDriver, "compile")
	_, inner := Start(ctx, ScopeClass, "class:Base")
	inner.WithExtra("fields", "1").End("")
	outer.End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Name != "class:Base" || ev.Kind != "begin" || ev.ParentID != outer.ID() {
		t.Errorf("inner begin: %+v (outer id %d)", ev, outer.ID())
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Extra["fields"] != "1" {
		t.Errorf("inner end extra: %+v", ev.Extra)
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), tr)
	ctx, pass := Start(ctx, ScopePass, "parse")
	_, file := Start(ctx, ScopeFile, "file:a.ts")
	file.End("")
	Failure(ctx, ScopeFile, "io", "boom")
	pass.End("")

	out := buf.String()
	if strings.Contains(out, "file:a.ts") {
		t.Errorf("file span should be filtered at phase level:\n%s", out)
	}
	if !strings.Contains(out, "io (boom)") || !strings.Contains(out, "\u2192 parse") {
		t.Errorf("missing events:\n%s", out)
	}
}

func TestNopContext(t *testing.T) {
	ctx, span := Start(context.Background(), ScopeDriver, "x")
	if span.End("") != 0 || CurrentSpan(ctx).SpanID != 0 {
		t.Errorf("nop tracer should not create spans")
	}
	if FromContext(nil) != Nop { //nolint:staticcheck
		t.Errorf("FromContext(nil) should be Nop")
	}
}
