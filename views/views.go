// Package views implements the per-workbook, per-sheet view store
// (spec.md §4.10): active-sheet tracking, and per sheet four pane
// selections plus a mutually-exclusive split- or frozen-pane record and
// an active-pane discriminator.
package views

import "github.com/go-orcus/orcus/model"

// Pane identifies one of a sheet's four panes.
type Pane int

const (
	PaneTopLeft Pane = iota
	PaneTopRight
	PaneBottomLeft
	PaneBottomRight
)

// SplitPane is the split-pane record: the horizontal/vertical split
// positions (in the source format's own units) and the top-left cell
// of the scrollable region beyond the split.
type SplitPane struct {
	HorizontalSplit float64
	VerticalSplit   float64
	TopLeftCell     model.Address
}

// FrozenPane is the frozen-pane record: the number of always-visible
// leading columns/rows and the top-left cell of the scrollable region
// beyond the freeze.
type FrozenPane struct {
	VisibleColumns int32
	VisibleRows    int32
	TopLeftCell    model.Address
}

// SheetView holds one sheet's pane selections and split/freeze state.
// Split and frozen panes are mutually exclusive: setting one clears the
// other (spec.md §4.10).
type SheetView struct {
	selections [4]model.Range
	activePane Pane

	split  *SplitPane
	frozen *FrozenPane
}

// GetSelection returns the selection range for pane.
func (v *SheetView) GetSelection(pane Pane) model.Range { return v.selections[pane] }

// SetSelection sets the selection range for pane.
func (v *SheetView) SetSelection(pane Pane, r model.Range) { v.selections[pane] = r }

// SetActivePane sets which pane is active.
func (v *SheetView) SetActivePane(pane Pane) { v.activePane = pane }

// GetActivePane returns the active pane.
func (v *SheetView) GetActivePane() Pane { return v.activePane }

// SetSplitPane installs a split-pane record, clearing any frozen-pane
// record.
func (v *SheetView) SetSplitPane(horizontalSplit, verticalSplit float64, topLeft model.Address) {
	v.split = &SplitPane{HorizontalSplit: horizontalSplit, VerticalSplit: verticalSplit, TopLeftCell: topLeft}
	v.frozen = nil
}

// GetSplitPane returns the split-pane record, if one is set.
func (v *SheetView) GetSplitPane() (SplitPane, bool) {
	if v.split == nil {
		return SplitPane{}, false
	}
	return *v.split, true
}

// SetFrozenPane installs a frozen-pane record, clearing any split-pane
// record.
func (v *SheetView) SetFrozenPane(visibleCols, visibleRows int32, topLeft model.Address) {
	v.frozen = &FrozenPane{VisibleColumns: visibleCols, VisibleRows: visibleRows, TopLeftCell: topLeft}
	v.split = nil
}

// GetFrozenPane returns the frozen-pane record, if one is set.
func (v *SheetView) GetFrozenPane() (FrozenPane, bool) {
	if v.frozen == nil {
		return FrozenPane{}, false
	}
	return *v.frozen, true
}

// Store is the workbook-level view store: lazily-created per-sheet
// views plus the active-sheet index.
type Store struct {
	sheets      map[model.SheetIndex]*SheetView
	activeSheet model.SheetIndex
}

// NewStore creates an empty view store with sheet 0 active.
func NewStore() *Store {
	return &Store{sheets: make(map[model.SheetIndex]*SheetView)}
}

// GetOrCreateSheetView returns sheet's view, creating it on first call.
func (s *Store) GetOrCreateSheetView(sheet model.SheetIndex) *SheetView {
	v, ok := s.sheets[sheet]
	if !ok {
		v = &SheetView{}
		s.sheets[sheet] = v
	}
	return v
}

// GetSheetView returns sheet's view without creating it.
func (s *Store) GetSheetView(sheet model.SheetIndex) (*SheetView, bool) {
	v, ok := s.sheets[sheet]
	return v, ok
}

// SetActiveSheet sets the workbook's active sheet.
func (s *Store) SetActiveSheet(sheet model.SheetIndex) { s.activeSheet = sheet }

// GetActiveSheet returns the workbook's active sheet.
func (s *Store) GetActiveSheet() model.SheetIndex { return s.activeSheet }

// Walk calls fn once for every pane of every sheet view currently in
// the store, in ascending sheet-index order, with the sheet's active
// pane passed alongside — a traversal helper spec.md's four-pane
// structure implies but doesn't name (grounded in the original
// project's sheet.cpp bindings iterating get_sheet_view results).
func (s *Store) Walk(fn func(sheet model.SheetIndex, pane Pane, selection model.Range, isActive bool)) {
	sheets := make([]model.SheetIndex, 0, len(s.sheets))
	for sheet := range s.sheets {
		sheets = append(sheets, sheet)
	}
	sortSheetIndices(sheets)

	for _, sheet := range sheets {
		v := s.sheets[sheet]
		for pane := PaneTopLeft; pane <= PaneBottomRight; pane++ {
			fn(sheet, pane, v.selections[pane], pane == v.activePane)
		}
	}
}

func sortSheetIndices(s []model.SheetIndex) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
