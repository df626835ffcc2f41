package model_test

import (
	"testing"

	"github.com/go-orcus/orcus/model"
)

func TestCellWriteOverwritesVariant(t *testing.T) {
	c := model.NumericCell(1.5)
	if c.Type != model.CellNumeric {
		t.Fatalf("type = %v, want numeric", c.Type)
	}
	c = model.StringCell(model.StringID(7))
	if c.Type != model.CellString || c.String != 7 {
		t.Fatalf("overwrite failed: %+v", c)
	}
}

func TestRangeContainsAndOverlaps(t *testing.T) {
	r := model.Range{
		First: model.Address{Sheet: 0, Row: 1, Column: 1},
		Last:  model.Address{Sheet: 0, Row: 5, Column: 5},
	}
	if !r.Contains(model.Address{Sheet: 0, Row: 3, Column: 3}) {
		t.Fatal("expected containment")
	}
	if r.Contains(model.Address{Sheet: 0, Row: 6, Column: 3}) {
		t.Fatal("unexpected containment")
	}
	other := model.Range{
		First: model.Address{Sheet: 0, Row: 5, Column: 5},
		Last:  model.Address{Sheet: 0, Row: 8, Column: 8},
	}
	if !r.Overlaps(other) {
		t.Fatal("expected overlap")
	}
	disjoint := model.Range{
		First: model.Address{Sheet: 0, Row: 10, Column: 10},
		Last:  model.Address{Sheet: 0, Row: 12, Column: 12},
	}
	if r.Overlaps(disjoint) {
		t.Fatal("unexpected overlap")
	}
}

func TestTokenGroupRefCounting(t *testing.T) {
	g := model.NewTokenGroup(model.Address{Sheet: 0, Row: 0, Column: 0}, []byte("B1+C1"))
	g.Retain()
	if g.RefCount() != 2 {
		t.Fatalf("refcount = %d, want 2", g.RefCount())
	}
	if g.Release() {
		t.Fatal("should not yet be released")
	}
	if !g.Release() {
		t.Fatal("expected release on last reference")
	}
}

func TestValidateRunsRejectsOverlap(t *testing.T) {
	ok := model.ValidateRuns([]model.RichTextRun{{Position: 0, Length: 3}, {Position: 2, Length: 2}})
	if ok {
		t.Fatal("expected overlap rejection")
	}
	ok = model.ValidateRuns([]model.RichTextRun{{Position: 0, Length: 3}, {Position: 3, Length: 2}})
	if !ok {
		t.Fatal("expected adjacent runs to be valid")
	}
}
