package tables

import (
	"testing"

	"github.com/go-orcus/orcus/model"
)

func rng() model.Range {
	return model.Range{
		First: model.Address{Sheet: 0, Row: 0, Column: 0},
		Last:  model.Address{Sheet: 0, Row: 9, Column: 2},
	}
}

func TestTableCommitRejectsDuplicateName(t *testing.T) {
	coll := NewCollection()

	b1 := NewBuilder("Sales", rng())
	b1.AppendColumn(Column{Name: "Region"})
	first, ok := b1.Commit(coll)
	if !ok || first == nil {
		t.Fatalf("expected first commit to succeed")
	}

	b2 := NewBuilder("Sales", rng())
	b2.AppendColumn(Column{Name: "Other"})
	second, ok := b2.Commit(coll)
	if ok || second != nil {
		t.Fatalf("expected duplicate-name commit to be discarded")
	}

	got, ok := coll.Get("Sales")
	if !ok || len(got.Columns) != 1 || got.Columns[0].Name != "Region" {
		t.Fatalf("duplicate commit must not overwrite original, got %+v", got)
	}
}

func TestTableEmbeddedAutoFilterFlatColumns(t *testing.T) {
	coll := NewCollection()
	b := NewBuilder("Orders", rng())
	af := b.AutoFilter()
	af.SetColumn(0).AppendColumnMatchValue("East").AppendColumnMatchValue("West").CommitColumn()

	tbl, ok := b.Commit(coll)
	if !ok {
		t.Fatalf("commit failed")
	}
	if tbl.AutoFilter == nil || len(tbl.AutoFilter.Columns) != 1 {
		t.Fatalf("expected one auto-filter column, got %+v", tbl.AutoFilter)
	}
	col := tbl.AutoFilter.Columns[0]
	if col.ColumnOffset != 0 || len(col.Values) != 2 || col.Values[1] != "West" {
		t.Fatalf("unexpected filter column %+v", col)
	}
}

func TestAutoFilterNestedRuleTree(t *testing.T) {
	b := NewAutoFilterBuilder(rng())
	root := b.StartColumn(1, BoolAnd)
	root.AppendItem(CompareGreaterThan, "100")
	child := root.AppendItemNode(BoolOr)
	child.AppendItem(CompareEqual, "red").AppendItem(CompareEqual, "blue")

	af := b.Commit()
	if len(af.Columns) != 1 {
		t.Fatalf("expected one column, got %d", len(af.Columns))
	}
	tree := af.Columns[0].Tree
	if tree == nil || tree.Connector != BoolAnd || len(tree.Items) != 1 {
		t.Fatalf("unexpected root node %+v", tree)
	}
	if len(tree.Children) != 1 || tree.Children[0].Connector != BoolOr || len(tree.Children[0].Items) != 2 {
		t.Fatalf("unexpected child node %+v", tree.Children)
	}
}

func TestAutoFilterMixedFlatAndTreeColumns(t *testing.T) {
	b := NewAutoFilterBuilder(rng())
	b.SetColumn(0).AppendColumnMatchValues("A", "B").CommitColumn()
	root := b.StartColumn(2, BoolAnd)
	root.AppendItem(CompareLessOrEqual, "50")

	af := b.Commit()
	if len(af.Columns) != 2 {
		t.Fatalf("expected two columns, got %d", len(af.Columns))
	}
	if af.Columns[0].Tree != nil || af.Columns[1].Values != nil {
		t.Fatalf("flat and tree columns must stay independent: %+v", af.Columns)
	}
}
