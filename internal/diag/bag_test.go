package diag

import (
	"testing"

	"basedef/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(SevWarning, SynUnexpectedToken, source.Span{}, "w")) {
		t.Fatal("first add rejected")
	}
	if b.HasErrors() {
		t.Error("warning counted as error")
	}
	b.Add(NewError(SemaAliasNotString, source.Span{}, "e"))
	if b.Add(NewError(SemaAliasNotString, source.Span{}, "overflow")) {
		t.Error("add beyond limit accepted")
	}
	if !b.HasErrors() || !b.HasWarnings() || b.Len() != 2 {
		t.Errorf("unexpected bag state: len=%d", b.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	sp := func(file source.FileID, start uint32) source.Span {
		return source.Span{File: file, Start: start, End: start + 1}
	}
	b.Add(NewError(SemaNotConstant, sp(1, 0), "b"))
	b.Add(New(SevWarning, SemaAliasNotString, sp(0, 5), "a-warn"))
	b.Add(NewError(SemaAliasNotString, sp(0, 5), "a"))
	b.Add(NewError(SemaAliasNotString, sp(0, 5), "a"))

	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0].Severity != SevError || items[0].Primary.File != 0 {
		t.Errorf("first item = %+v", items[0])
	}
	if items[2].Primary.File != 1 {
		t.Errorf("last item should be from file 1: %+v", items[2])
	}
}

func TestMergeGrowsLimit(t *testing.T) {
	a, b := NewBag(1), NewBag(1)
	a.Add(NewError(UnknownCode, source.Span{}, "x"))
	b.Add(NewError(UnknownCode, source.Span{}, "y"))
	a.Merge(b)
	if a.Len() != 2 || a.Cap() != 2 {
		t.Errorf("merge: len=%d cap=%d", a.Len(), a.Cap())
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynUnexpectedToken, "SYN2001"},
		{SemaAliasNotString, "SEM3101"},
		{IOLoadFileError, "IO4001"},
		{ProjInvalidManifest, "PRJ5001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if Code(3999).Title() != "Unknown error" {
		t.Errorf("unknown code title = %q", Code(3999).Title())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(4)
	rb := ReportError(BagReporter{Bag: b}, SemaNotConstant, source.Span{}, "x").
		WithNote(source.Span{Start: 1, End: 2}, "here")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 || len(b.Items()[0].Notes) != 1 {
		t.Errorf("bag = %+v", b.Items())
	}
}
