package factory

import (
	"strconv"
	"strings"

	"github.com/go-orcus/orcus/cellstore"
	"github.com/go-orcus/orcus/formula"
	"github.com/go-orcus/orcus/model"
	"github.com/go-orcus/orcus/names"
	"github.com/go-orcus/orcus/orcuserr"
	"github.com/go-orcus/orcus/pivot"
	"github.com/go-orcus/orcus/sharedstrings"
	"github.com/go-orcus/orcus/stringpool"
	"github.com/go-orcus/orcus/styles"
	"github.com/go-orcus/orcus/tables"
	"github.com/go-orcus/orcus/views"
)

// Orchestrator is the composite builder object spec.md §4.12 hands to a
// format driver: it owns every shared pool (strings, styles, names,
// pivot caches, tables) and the per-sheet builder list, and exposes one
// accessor per sub-builder plus Finalize.
type Orchestrator struct {
	config Config
	global GlobalSettings

	pool          *stringpool.Pool
	sharedStrings *sharedstrings.Store
	styles        *styles.Pools
	names         *names.Collection
	pivotCaches   *pivot.Collection
	tables        *tables.Collection
	views         *views.Store

	sheets      []*SheetBuilder
	sheetByName map[string]model.SheetIndex

	engine formula.Engine
	dirty  []model.Address

	finalized bool
}

// New creates an Orchestrator with every pool initialized per its
// pool's own zero-value/default rules (spec.md §3's "default populated
// before any other index" invariant). view may be nil; a fresh store is
// created here if so, matching spec.md §4.12's "cooperates with the view store
// if one was supplied at construction".
func New(cfg Config, engine formula.Engine, view *views.Store) *Orchestrator {
	if cfg.SheetSize == (cellstore.Size{}) {
		cfg.SheetSize = cellstore.DefaultSize
	}
	if view == nil {
		view = views.NewStore()
	}
	pool := stringpool.New()
	return &Orchestrator{
		config:        cfg,
		global:        DefaultGlobalSettings,
		pool:          pool,
		sharedStrings: sharedstrings.New(pool),
		styles:        styles.NewPools(),
		names:         names.NewCollection(),
		pivotCaches:   pivot.NewCollection(),
		tables:        tables.NewCollection(),
		views:         view,
		sheetByName:   make(map[string]model.SheetIndex),
		engine:        engine,
	}
}

// GlobalSettings returns the import_global_settings-equivalent accessor
// (SPEC_FULL.md's SUPPLEMENTED FEATURES).
func (o *Orchestrator) GlobalSettings() *GlobalSettings { return &o.global }

// GetSharedStrings returns the shared-strings builder (spec.md §4.12).
func (o *Orchestrator) GetSharedStrings() *sharedstrings.Store { return o.sharedStrings }

// GetStyles returns the styles pool bundle (spec.md §4.12).
func (o *Orchestrator) GetStyles() *styles.Pools { return o.styles }

// GetNamedExpression returns a new named-expression/range builder named
// name; callers Commit it into either o.Names().Global or a sheet's
// local scope (spec.md §4.9, §4.12).
func (o *Orchestrator) GetNamedExpression(name string) *names.Builder {
	return names.NewBuilder(name)
}

// Names returns the shared named-expression collection (global plus
// per-sheet local scopes).
func (o *Orchestrator) Names() *names.Collection { return o.names }

// Tables returns the shared table collection.
func (o *Orchestrator) Tables() *tables.Collection { return o.tables }

// Views returns the view store.
func (o *Orchestrator) Views() *views.Store { return o.views }

// GetReferenceResolver returns the reference resolver for the given
// grammar variant (spec.md §4.12's "three resolver variants in
// parallel"), honoring the ODF named-range dialect (leading `.` sheet
// separator) when ctx is ResolverNamedRange.
func (o *Orchestrator) GetReferenceResolver(ctx ResolverContext, defaultSheet model.SheetIndex) formula.Resolver {
	odf := ctx == ResolverNamedRange
	return newA1Resolver(o, defaultSheet, odf)
}

// sheetIndexByName implements the sheetIndexer interface a1Resolver
// needs.
func (o *Orchestrator) sheetIndexByName(name string) (model.SheetIndex, bool) {
	idx, ok := o.sheetByName[strings.ToLower(name)]
	return idx, ok
}

// CreatePivotCacheDefinition returns a new cache builder for the given
// integer cache id (spec.md §4.8, §4.12).
func (o *Orchestrator) CreatePivotCacheDefinition(id int) *pivot.CacheBuilder {
	return pivot.NewCacheBuilder(id)
}

// CreatePivotCacheRecords returns the record-stream sub-builder for an
// in-progress cache builder, matching spec.md §4.12's accessor name even
// though pivot.CacheBuilder already exposes Records() directly — kept
// here so a format driver can reach it from the orchestrator alone
// without holding on to the CacheBuilder it got from
// CreatePivotCacheDefinition.
func (o *Orchestrator) CreatePivotCacheRecords(b *pivot.CacheBuilder) *pivot.RecordStreamBuilder {
	return b.Records()
}

// CommitPivotCache finalizes b into the shared pivot collection.
func (o *Orchestrator) CommitPivotCache(b *pivot.CacheBuilder) *pivot.Cache {
	return b.Commit(o.pivotCaches)
}

// PivotCaches returns the shared pivot-cache collection.
func (o *Orchestrator) PivotCaches() *pivot.Collection { return o.pivotCaches }

// AppendSheet appends a new sheet named name at the given index and
// returns its builder. Per spec.md §6, sheet names are not de-duplicated
// by the core — the caller is responsible for uniqueness if required;
// this orchestrator records whatever name it's given, last write wins in
// the name->index lookup used by reference resolution.
func (o *Orchestrator) AppendSheet(index model.SheetIndex, name string) *SheetBuilder {
	sb := &SheetBuilder{
		orch:        o,
		index:       index,
		name:        name,
		store:       cellstore.New(index, o.config.SheetSize, o.config.DateSystem, o.sharedStrings),
		rowFormats:  make(map[int32]int),
		colFormats:  make(map[int32]int),
		cellFormats: make(map[cellKey]int),
		namedScope:  names.NewScope(),
	}
	for int(index) >= len(o.sheets) {
		o.sheets = append(o.sheets, nil)
	}
	o.sheets[index] = sb
	o.sheetByName[strings.ToLower(name)] = index
	return sb
}

// GetSheet looks up a previously appended sheet by its display name or,
// if nameOrIndex parses as a non-negative integer sheet index, by
// position.
func (o *Orchestrator) GetSheet(nameOrIndex string) (*SheetBuilder, bool) {
	if idx, ok := o.sheetByName[strings.ToLower(nameOrIndex)]; ok {
		return o.sheets[idx], true
	}
	if idx, err := strconv.Atoi(nameOrIndex); err == nil && idx >= 0 {
		return o.GetSheetByIndex(model.SheetIndex(idx))
	}
	return nil, false
}

// GetSheetByIndex looks up a sheet by its zero-based index.
func (o *Orchestrator) GetSheetByIndex(idx model.SheetIndex) (*SheetBuilder, bool) {
	if int(idx) < 0 || int(idx) >= len(o.sheets) {
		return nil, false
	}
	sb := o.sheets[idx]
	return sb, sb != nil
}

// Sheets returns every appended sheet builder in index order.
func (o *Orchestrator) Sheets() []*SheetBuilder { return o.sheets }

// markDirty records addr as holding an unevaluated formula cell, for
// Finalize's recalc pass.
func (o *Orchestrator) markDirty(addr model.Address) {
	o.dirty = append(o.dirty, addr)
}

// Finalize implements spec.md §4.12's finalize policy: missing formula
// results are pre-populated per config.MissingResult, then, if
// config.RecalcFormulaCells is set, the attached formula.Engine runs
// over every dirty cell. Finalize is idempotent; a second call is a
// no-op.
func (o *Orchestrator) Finalize() error {
	if o.finalized {
		return nil
	}
	o.finalized = true

	if o.config.MissingResult == MissingResultError {
		for _, addr := range o.dirty {
			sb, ok := o.GetSheetByIndex(addr.Sheet)
			if !ok {
				continue
			}
			cell := sb.store.GetCell(addr.Row, addr.Column)
			if cell.Type != model.CellFormula || cell.Formula.Group == nil {
				continue
			}
			if cell.Formula.Result.Type == model.ResultEmpty {
				cell.Formula.Result = model.FormulaResult{Type: model.ResultError, Error: "#N/A"}
				_ = sb.store.SetFormula(addr.Row, addr.Column, cell.Formula)
			}
		}
	}

	if !o.config.RecalcFormulaCells {
		return nil
	}
	if o.engine == nil {
		return orcuserr.NewGeneralError("factory: RecalcFormulaCells set but no formula.Engine attached")
	}
	return o.engine.Calculate(o, o.dirty)
}

// ── formula.CalcContext implementation ──────────────────────────────────────

var _ formula.CalcContext = (*Orchestrator)(nil)

func (o *Orchestrator) GetCellType(sheet model.SheetIndex, row, col int32) (model.CellType, error) {
	sb, ok := o.GetSheetByIndex(sheet)
	if !ok {
		return model.CellEmpty, orcuserr.NewInvalidArgument("unknown sheet index %d", sheet)
	}
	return sb.store.GetCellType(row, col), nil
}

func (o *Orchestrator) GetNumericValue(sheet model.SheetIndex, row, col int32) (float64, error) {
	sb, ok := o.GetSheetByIndex(sheet)
	if !ok {
		return 0, orcuserr.NewInvalidArgument("unknown sheet index %d", sheet)
	}
	return sb.store.GetNumericValue(row, col), nil
}

func (o *Orchestrator) GetFormulaTokens(sheet model.SheetIndex, row, col int32) (formula.TokenStream, model.Address, bool) {
	sb, ok := o.GetSheetByIndex(sheet)
	if !ok {
		return formula.TokenStream{}, model.InvalidAddress, false
	}
	cell := sb.store.GetCell(row, col)
	if cell.Type != model.CellFormula || cell.Formula.Group == nil {
		return formula.TokenStream{}, model.InvalidAddress, false
	}
	origin := cell.Formula.Group.Origin
	return formula.Tokenize(string(cell.Formula.Group.Tokens), origin), origin, true
}

func (o *Orchestrator) SetFormulaResult(sheet model.SheetIndex, row, col int32, result model.FormulaResult) error {
	sb, ok := o.GetSheetByIndex(sheet)
	if !ok {
		return orcuserr.NewInvalidArgument("unknown sheet index %d", sheet)
	}
	cell := sb.store.GetCell(row, col)
	if cell.Type != model.CellFormula {
		return orcuserr.NewGeneralError("factory: SetFormulaResult at (%d,%d) targets a non-formula cell", row, col)
	}
	cell.Formula.Result = result
	return sb.store.SetFormula(row, col, cell.Formula)
}

func (o *Orchestrator) TableRange(tableName, columnName string) (model.Range, bool) {
	t, ok := o.tables.Get(tableName)
	if !ok {
		return model.Range{}, false
	}
	if columnName == "" {
		return t.Range, true
	}
	for i, col := range t.Columns {
		if strings.EqualFold(col.Name, columnName) {
			r := t.Range
			width := r.Columns()
			if int32(i) >= width {
				return model.Range{}, false
			}
			r.First.Column += int32(i)
			r.Last.Column = r.First.Column
			return r, true
		}
	}
	return model.Range{}, false
}
