package factory

import (
	"time"

	"github.com/go-orcus/orcus/cellstore"
	"github.com/go-orcus/orcus/model"
	"github.com/go-orcus/orcus/names"
	"github.com/go-orcus/orcus/pivot"
	"github.com/go-orcus/orcus/tables"
)

// cellKey addresses one cell within a sheet's per-cell format map.
type cellKey struct{ row, col int32 }

// SheetBuilder is the per-sheet builder spec.md §4.12 describes: it
// wraps a cellstore.Store for value writes and layers on top of it the
// sheet-local capability builders (formats, conditional-format,
// named-expression scope, auto-filter, tables, single and array
// formulas).
type SheetBuilder struct {
	orch  *Orchestrator
	index model.SheetIndex
	name  string
	store *cellstore.Store

	rowFormats  map[int32]int
	colFormats  map[int32]int
	cellFormats map[cellKey]int

	conditionalFormats []ConditionalFormat
	autoFilter         *tables.AutoFilter

	namedScope *names.Scope
}

// Name returns the sheet's display name.
func (sb *SheetBuilder) Name() string { return sb.name }

// Index returns the sheet's zero-based index.
func (sb *SheetBuilder) Index() model.SheetIndex { return sb.index }

// Store exposes the underlying cell value store directly for callers
// that need range/iteration queries beyond the setters below (spec.md
// §4.4).
func (sb *SheetBuilder) Store() *cellstore.Store { return sb.store }

// ── value setters (spec.md §4.12) ───────────────────────────────────────────

func (sb *SheetBuilder) SetAuto(row, col int32, raw string) error {
	return sb.store.SetAuto(row, col, raw)
}

func (sb *SheetBuilder) SetString(row, col int32, id model.StringID) error {
	return sb.store.SetString(row, col, id)
}

func (sb *SheetBuilder) SetValue(row, col int32, v float64) error {
	return sb.store.SetValue(row, col, v)
}

func (sb *SheetBuilder) SetBool(row, col int32, v bool) error {
	return sb.store.SetBool(row, col, v)
}

func (sb *SheetBuilder) SetDateTime(row, col int32, t time.Time) error {
	return sb.store.SetDateTime(row, col, t)
}

func (sb *SheetBuilder) FillDownCells(row, col int32, n int32) error {
	return sb.store.FillDown(row, col, n)
}

// ── formats (spec.md §4.6, §5) ──────────────────────────────────────────────

// SetFormat assigns a cell-format pool index to one cell position.
func (sb *SheetBuilder) SetFormat(row, col int32, formatIdx int) {
	sb.cellFormats[cellKey{row, col}] = formatIdx
}

// SetColumnFormat assigns a cell-format pool index to an entire column,
// applied beneath any row or cell-specific format (spec.md §5's
// documented layering order: column, then row, then cell).
func (sb *SheetBuilder) SetColumnFormat(col int32, formatIdx int) {
	sb.colFormats[col] = formatIdx
}

// SetRowFormat assigns a cell-format pool index to an entire row,
// applied beneath any cell-specific format but above any column format.
func (sb *SheetBuilder) SetRowFormat(row int32, formatIdx int) {
	sb.rowFormats[row] = formatIdx
}

// EffectiveFormat resolves the cell-format pool index that applies at
// (row, col), layering column format first, then row format, then
// cell-specific format — exactly the order spec.md §5 documents sheet
// builders must follow. Returns (0, false) when no format was ever set
// for this position (0 is the default cell format).
func (sb *SheetBuilder) EffectiveFormat(row, col int32) (int, bool) {
	idx, found := 0, false
	if v, ok := sb.colFormats[col]; ok {
		idx, found = v, true
	}
	if v, ok := sb.rowFormats[row]; ok {
		idx, found = v, true
	}
	if v, ok := sb.cellFormats[cellKey{row, col}]; ok {
		idx, found = v, true
	}
	return idx, found
}

// ── conditional format (spec.md §4.12) ──────────────────────────────────────

// ConditionalFormat returns a new builder for one conditional-format
// entry on this sheet.
func (sb *SheetBuilder) ConditionalFormat() *ConditionalFormatBuilder {
	return &ConditionalFormatBuilder{sheet: sb}
}

// ConditionalFormats returns every conditional format committed on this
// sheet, in commit order.
func (sb *SheetBuilder) ConditionalFormats() []ConditionalFormat {
	return sb.conditionalFormats
}

// ── named expression (spec.md §4.9, §4.12) ──────────────────────────────────

// NamedExpression returns a builder for a sheet-local named expression,
// stored in this sheet's own names.Scope rather than the workbook's
// global one.
func (sb *SheetBuilder) NamedExpression(name string) *names.Builder {
	return names.NewBuilder(name)
}

// NamedScope returns this sheet's local named-expression scope, where a
// NamedExpression builder's Commit result should be stored (spec.md
// §4.9's "sheet-locals live per sheet").
func (sb *SheetBuilder) NamedScope() *names.Scope { return sb.namedScope }

// ── auto-filter / table (spec.md §4.7, §4.12) ───────────────────────────────

// AutoFilter returns a new sheet-level auto-filter builder over r.
func (sb *SheetBuilder) AutoFilter(r model.Range) *tables.AutoFilterBuilder {
	return tables.NewAutoFilterBuilder(r)
}

// CommitAutoFilter stores af as this sheet's auto-filter (an auto-filter
// applied at sheet level lives on the sheet; one embedded in a table
// lives on the table, per spec.md §3).
func (sb *SheetBuilder) CommitAutoFilter(af *tables.AutoFilter) { sb.autoFilter = af }

// AutoFilterResult returns the sheet-level auto-filter, if one was
// committed.
func (sb *SheetBuilder) AutoFilterResult() (*tables.AutoFilter, bool) {
	return sb.autoFilter, sb.autoFilter != nil
}

// Table returns a new table builder named name over r, to be committed
// into the orchestrator's shared table collection.
func (sb *SheetBuilder) Table(name string, r model.Range) *tables.Builder {
	return tables.NewBuilder(name, r)
}

// ── pivot cache convenience (spec.md §4.8, §4.12) ───────────────────────────

// PivotCacheDefinition delegates to the orchestrator's shared pivot
// collection, keeping the per-sheet builder's surface consistent with
// the composite builder's create_pivot_cache_definition accessor.
func (sb *SheetBuilder) PivotCacheDefinition(id int) *pivot.CacheBuilder {
	return sb.orch.CreatePivotCacheDefinition(id)
}

// ── formula / array-formula (spec.md §4.12, §5, §8 scenario 5) ─────────────

// SetFormula stores a new, unshared formula at (row, col): a fresh
// TokenGroup with one reference held by this cell. The formula is
// tracked as dirty so Finalize's recalc pass (if enabled) evaluates it.
func (sb *SheetBuilder) SetFormula(row, col int32, tokens []byte) (*model.TokenGroup, error) {
	group := model.NewTokenGroup(model.Address{Sheet: sb.index, Row: row, Column: col}, tokens)
	ref := model.FormulaRef{Group: group}
	if err := sb.store.SetFormula(row, col, ref); err != nil {
		return nil, err
	}
	sb.orch.markDirty(model.Address{Sheet: sb.index, Row: row, Column: col})
	return group, nil
}

// SetSharedFormula joins (row, col) to an existing shared-formula group
// (spec.md §8 scenario 5: "cell A2 calls set-shared-formula with index 0
// only"), retaining the group's reference count rather than copying its
// tokens.
func (sb *SheetBuilder) SetSharedFormula(row, col int32, group *model.TokenGroup) error {
	group.Retain()
	ref := model.FormulaRef{Group: group}
	if err := sb.store.SetFormula(row, col, ref); err != nil {
		return err
	}
	sb.orch.markDirty(model.Address{Sheet: sb.index, Row: row, Column: col})
	return nil
}

// SetArrayFormula stores tokens as an array formula spanning r: every
// member cell shares one TokenGroup and one ResultMatrix, per spec.md
// §3's "for every array-formula range, each member cell's cached result
// lives in a common matrix" invariant.
func (sb *SheetBuilder) SetArrayFormula(r model.Range, tokens []byte) (*model.TokenGroup, error) {
	group := model.NewTokenGroup(r.First, tokens)
	rows, cols := r.Rows(), r.Columns()
	matrix := &model.ResultMatrix{Rows: rows, Cols: cols, Values: make([]model.FormulaResult, rows*cols)}
	for rr := int32(0); rr < rows; rr++ {
		for cc := int32(0); cc < cols; cc++ {
			if rr > 0 || cc > 0 {
				group.Retain()
			}
			ref := model.FormulaRef{
				Group:    group,
				IsArray:  true,
				ArrayRow: rr,
				ArrayCol: cc,
				Result:   model.FormulaResult{Type: model.ResultMatrix, Matrix: matrix},
			}
			row, col := r.First.Row+rr, r.First.Column+cc
			if err := sb.store.SetFormula(row, col, ref); err != nil {
				return nil, err
			}
			sb.orch.markDirty(model.Address{Sheet: sb.index, Row: row, Column: col})
		}
	}
	return group, nil
}
