package views

import (
	"testing"

	"github.com/go-orcus/orcus/model"
)

func TestGetOrCreateSheetViewIsLazyAndStable(t *testing.T) {
	s := NewStore()

	if _, ok := s.GetSheetView(0); ok {
		t.Fatalf("expected no view before first access")
	}

	v1 := s.GetOrCreateSheetView(0)
	v1.SetActivePane(PaneBottomRight)

	v2 := s.GetOrCreateSheetView(0)
	if v2.GetActivePane() != PaneBottomRight {
		t.Fatalf("expected second GetOrCreateSheetView to return the same view")
	}
}

func TestSelectionRoundTripPerPane(t *testing.T) {
	v := &SheetView{}
	r := model.Range{First: model.Address{Row: 2, Column: 3}, Last: model.Address{Row: 4, Column: 5}}

	v.SetSelection(PaneTopRight, r)
	if got := v.GetSelection(PaneTopRight); got != r {
		t.Fatalf("expected %+v, got %+v", r, got)
	}
	if got := v.GetSelection(PaneTopLeft); got != (model.Range{}) {
		t.Fatalf("expected untouched pane to remain zero value, got %+v", got)
	}
}

func TestSplitAndFrozenPaneAreMutuallyExclusive(t *testing.T) {
	v := &SheetView{}

	v.SetSplitPane(1500, 800, model.Address{Row: 1, Column: 1})
	if _, ok := v.GetSplitPane(); !ok {
		t.Fatalf("expected split pane to be set")
	}

	v.SetFrozenPane(2, 1, model.Address{Row: 1, Column: 2})
	if _, ok := v.GetSplitPane(); ok {
		t.Fatalf("expected split pane to be cleared once frozen pane is set")
	}
	frozen, ok := v.GetFrozenPane()
	if !ok || frozen.VisibleColumns != 2 || frozen.VisibleRows != 1 {
		t.Fatalf("unexpected frozen pane %+v", frozen)
	}

	v.SetSplitPane(100, 100, model.Address{})
	if _, ok := v.GetFrozenPane(); ok {
		t.Fatalf("expected frozen pane to be cleared once split pane is set again")
	}
}

func TestActiveSheetTracking(t *testing.T) {
	s := NewStore()
	if s.GetActiveSheet() != 0 {
		t.Fatalf("expected default active sheet 0")
	}
	s.SetActiveSheet(3)
	if s.GetActiveSheet() != 3 {
		t.Fatalf("expected active sheet 3, got %d", s.GetActiveSheet())
	}
}

func TestWalkVisitsEverySheetInOrderWithActivePaneFlag(t *testing.T) {
	s := NewStore()

	v0 := s.GetOrCreateSheetView(2)
	v0.SetSelection(PaneTopLeft, model.Range{Last: model.Address{Row: 1, Column: 1}})
	v0.SetActivePane(PaneTopLeft)

	v1 := s.GetOrCreateSheetView(0)
	v1.SetActivePane(PaneBottomLeft)

	var seenSheets []model.SheetIndex
	activeCount := 0
	s.Walk(func(sheet model.SheetIndex, pane Pane, selection model.Range, isActive bool) {
		if pane == PaneTopLeft {
			seenSheets = append(seenSheets, sheet)
		}
		if isActive {
			activeCount++
		}
	})

	if len(seenSheets) != 2 || seenSheets[0] != 0 || seenSheets[1] != 2 {
		t.Fatalf("expected sheets visited in ascending order [0 2], got %v", seenSheets)
	}
	if activeCount != 2 {
		t.Fatalf("expected exactly one active pane flagged per sheet, got %d", activeCount)
	}
}
