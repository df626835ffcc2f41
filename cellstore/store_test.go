package cellstore_test

import (
	"testing"
	"time"

	"github.com/go-orcus/orcus/cellstore"
	"github.com/go-orcus/orcus/model"
)

type fakeInterner struct {
	next int64
	ids  map[string]model.StringID
}

func newFakeInterner() *fakeInterner {
	return &fakeInterner{ids: make(map[string]model.StringID)}
}

func (f *fakeInterner) InternString(s string) model.StringID {
	if id, ok := f.ids[s]; ok {
		return id
	}
	id := model.StringID(f.next)
	f.next++
	f.ids[s] = id
	return id
}

func TestSetAutoInfersType(t *testing.T) {
	interner := newFakeInterner()
	s := cellstore.New(0, cellstore.DefaultSize, cellstore.System1900, interner)

	if err := s.SetAuto(0, 0, "TRUE"); err != nil {
		t.Fatalf("SetAuto bool: %v", err)
	}
	if s.GetCellType(0, 0) != model.CellBoolean {
		t.Fatalf("type = %v, want boolean", s.GetCellType(0, 0))
	}

	if err := s.SetAuto(0, 1, "3.5"); err != nil {
		t.Fatalf("SetAuto numeric: %v", err)
	}
	if s.GetCellType(0, 1) != model.CellNumeric || s.GetNumericValue(0, 1) != 3.5 {
		t.Fatalf("numeric cell wrong: type=%v value=%v", s.GetCellType(0, 1), s.GetNumericValue(0, 1))
	}

	if err := s.SetAuto(0, 2, "hello"); err != nil {
		t.Fatalf("SetAuto string: %v", err)
	}
	if s.GetCellType(0, 2) != model.CellString {
		t.Fatalf("type = %v, want string", s.GetCellType(0, 2))
	}
}

func TestCellWriteOverwrites(t *testing.T) {
	s := cellstore.New(0, cellstore.DefaultSize, cellstore.System1900, nil)
	_ = s.SetValue(2, 2, 10)
	if s.GetCellType(2, 2) != model.CellNumeric {
		t.Fatal("expected numeric")
	}
	_ = s.SetBool(2, 2, true)
	if s.GetCellType(2, 2) != model.CellBoolean {
		t.Fatal("expected overwrite to boolean")
	}
}

func TestGetDataRangeAnchoredAtOrigin(t *testing.T) {
	s := cellstore.New(0, cellstore.DefaultSize, cellstore.System1900, nil)
	_ = s.SetValue(5, 3, 1)
	_ = s.SetValue(2, 9, 1)
	r := s.GetDataRange()
	if r.First.Row != 0 || r.First.Column != 0 {
		t.Fatalf("first = %+v, want anchored at origin", r.First)
	}
	if r.Last.Row != 5 || r.Last.Column != 9 {
		t.Fatalf("last = %+v, want (5,9)", r.Last)
	}
}

func TestFillDownNeverExpandsPastSheetSize(t *testing.T) {
	s := cellstore.New(0, cellstore.Size{Rows: 3, Columns: 3}, cellstore.System1900, nil)
	_ = s.SetValue(1, 0, 42)
	if err := s.FillDown(1, 0, 5); err != nil {
		t.Fatalf("filldown: %v", err)
	}
	if s.GetCellType(2, 0) != model.CellNumeric || s.GetNumericValue(2, 0) != 42 {
		t.Fatalf("row 2 not filled correctly")
	}
	// row 3 is out of bounds (Rows=3 means valid rows 0,1,2) and must not
	// have been written.
	if s.GetCellType(3, 0) != model.CellEmpty {
		t.Fatal("fill-down expanded past sheet bounds")
	}
}

func TestRowsIteratesPopulatedOnly(t *testing.T) {
	s := cellstore.New(0, cellstore.DefaultSize, cellstore.System1900, nil)
	_ = s.SetValue(0, 0, 1)
	_ = s.SetValue(0, 2, 2)
	_ = s.SetValue(3, 1, 3)

	var gotRows []int32
	for row := range s.Rows(0, 10, 0, 10) {
		gotRows = append(gotRows, row.Index)
		if row.Index == 0 && len(row.Cells) != 2 {
			t.Fatalf("row 0 cells = %v, want 2", row.Cells)
		}
	}
	want := []int32{0, 3}
	if len(gotRows) != len(want) || gotRows[0] != want[0] || gotRows[1] != want[1] {
		t.Fatalf("rows = %v, want %v", gotRows, want)
	}
}

func TestDateTimeRoundTrip(t *testing.T) {
	s := cellstore.New(0, cellstore.DefaultSize, cellstore.System1900, nil)
	in := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	if err := s.SetDateTime(0, 0, in); err != nil {
		t.Fatalf("SetDateTime: %v", err)
	}
	out, err := s.GetDateTime(0, 0)
	if err != nil {
		t.Fatalf("GetDateTime: %v", err)
	}
	if out.Year() != 2024 || out.Month() != 3 || out.Day() != 15 {
		t.Fatalf("round-trip date = %v, want 2024-03-15", out)
	}
}

func TestBoundsRejected(t *testing.T) {
	s := cellstore.New(0, cellstore.Size{Rows: 2, Columns: 2}, cellstore.System1900, nil)
	if err := s.SetValue(5, 0, 1); err == nil {
		t.Fatal("expected out-of-bounds error")
	}
}
