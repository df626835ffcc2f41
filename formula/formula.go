// Package formula defines the attachment point for an external formula
// computation engine (spec.md §4.12, §9): its internals are out of
// scope, but the interface it must satisfy, and the machinery for
// turning an expression string into the token stream that interface
// consumes, live here.
package formula

import "github.com/go-orcus/orcus/model"

// Resolver converts a reference string (`A1`, `Sheet!A1`, `R1C1`, ...)
// into a typed address or range, honoring whichever grammar the
// workbook currently has configured (spec.md §4.12's three resolver
// variants: global, named-expression-base, named-range).
type Resolver interface {
	ResolveAddress(ref string) (model.Address, error)
	ResolveRange(ref string) (model.Range, error)
}

// TableHandler lets a formula engine resolve table/column references
// (structured references) back to the workbook's table collection. The
// workbook implements this; the engine is handed one at Calculate time.
type TableHandler interface {
	// TableRange returns the data range a table (optionally restricted
	// to one column) occupies, for structured-reference resolution.
	TableRange(tableName, columnName string) (model.Range, bool)
}

// CellReader is the minimal read surface an engine needs to evaluate a
// cell: its value, or its formula token stream (plus the address the
// stream was originally anchored to, so a shared-formula member can
// translate relative references by its own offset from that anchor) if
// it holds one.
type CellReader interface {
	GetCellType(sheet model.SheetIndex, row, col int32) (model.CellType, error)
	GetNumericValue(sheet model.SheetIndex, row, col int32) (float64, error)
	GetFormulaTokens(sheet model.SheetIndex, row, col int32) (stream TokenStream, origin model.Address, ok bool)
}

// CellWriter lets an engine write back a computed result.
type CellWriter interface {
	SetFormulaResult(sheet model.SheetIndex, row, col int32, result model.FormulaResult) error
}

// CalcContext is what an engine's Calculate call operates over: a
// read/write view of the workbook's cells plus table resolution.
type CalcContext interface {
	CellReader
	CellWriter
	TableHandler
}

// Engine is the formula computation engine attachment point. Its
// internals are explicitly out of scope (spec.md §1); only this
// interface and a caller's chosen implementation matter to the rest of
// the module.
type Engine interface {
	// Parse turns expression, anchored at base, into a token stream
	// using resolver to interpret any references it contains.
	Parse(expression string, base model.Address, resolver Resolver) (TokenStream, error)

	// Calculate evaluates every cell named in dirty against ctx,
	// writing results back via ctx.
	Calculate(ctx CalcContext, dirty []model.Address) error
}
