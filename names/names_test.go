package names

import (
	"testing"

	"github.com/go-orcus/orcus/formula"
	"github.com/go-orcus/orcus/formula/refengine"
	"github.com/go-orcus/orcus/model"
)

type fakeResolver struct{}

func (fakeResolver) ResolveAddress(ref string) (model.Address, error) { return model.Address{}, nil }
func (fakeResolver) ResolveRange(ref string) (model.Range, error)     { return model.Range{}, nil }

func TestCommitDefaultsBasePosition(t *testing.T) {
	eng := refengine.New()
	scope := NewScope()

	expr, err := NewBuilder("PROFIT").SetNamedExpression("B2-C2").Commit(eng, fakeResolver{}, scope)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	want := model.Address{Sheet: 0, Row: 0, Column: 0}
	if expr.Base != want {
		t.Fatalf("expected default base %+v, got %+v", want, expr.Base)
	}
	if got, ok := scope.Get("PROFIT"); !ok || got != expr {
		t.Fatalf("expected PROFIT to be stored in scope")
	}
}

func TestCommitHonorsExplicitBasePosition(t *testing.T) {
	eng := refengine.New()
	scope := NewScope()
	base := model.Address{Sheet: 1, Row: 4, Column: 2}

	expr, err := NewBuilder("TOTAL").SetBasePosition(base).SetNamedRange("A1:A10").Commit(eng, fakeResolver{}, scope)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if expr.Base != base || expr.Kind != KindRange {
		t.Fatalf("unexpected expression %+v", expr)
	}
}

func TestCollectionResolvesSheetLocalBeforeGlobal(t *testing.T) {
	eng := refengine.New()
	coll := NewCollection()

	NewBuilder("FOO").SetNamedExpression("1+1").Commit(eng, fakeResolver{}, coll.Global)

	sheetScope := coll.Sheet(0)
	NewBuilder("FOO").SetBasePosition(model.Address{Sheet: 0}).SetNamedExpression("2+2").Commit(eng, fakeResolver{}, sheetScope)

	local, ok := coll.Resolve(0, "FOO")
	if !ok || local.Text != "2+2" {
		t.Fatalf("expected sheet-local FOO to shadow global, got %+v", local)
	}

	otherSheet, ok := coll.Resolve(1, "FOO")
	if !ok || otherSheet.Text != "1+1" {
		t.Fatalf("expected sheet 1 to fall back to global FOO, got %+v", otherSheet)
	}
}

var _ formula.Engine = (*refengine.Engine)(nil)
