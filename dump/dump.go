// Package dump implements the textual dumpers described in spec.md
// §4.15: deterministic, sink-targeted renderings of a workbook's cell
// data used both as regression-test fixtures (the check dump) and as
// plain export formats (flat, csv, html, json).
package dump

import (
	"github.com/go-orcus/orcus/factory"
	"github.com/go-orcus/orcus/model"
	"github.com/go-orcus/orcus/numfmt"
	"github.com/go-orcus/orcus/sharedstrings"
	"github.com/go-orcus/orcus/styles"
)

// Workbook is the orchestrator surface every dumper walks: the sheet
// list plus the shared pools needed to resolve a cell's display text.
// *factory.Orchestrator satisfies this directly.
type Workbook interface {
	Sheets() []*factory.SheetBuilder
	GetSharedStrings() *sharedstrings.Store
	GetStyles() *styles.Pools
}

// cellValue is the resolved (type, text) pair a dumper renders for one
// cell, computed once per cell and shared across every dumper format.
type cellValue struct {
	Type model.CellType
	Text string
}

// resolver bundles the read-only lookups a dumper needs to turn a raw
// model.Cell into display text, closing over one sheet's format
// indices.
type resolver struct {
	sheet       *factory.SheetBuilder
	strings     *sharedstrings.Store
	pools       *styles.Pools
	date1904    bool
}

func newResolver(wb Workbook, sheet *factory.SheetBuilder, date1904 bool) *resolver {
	return &resolver{sheet: sheet, strings: wb.GetSharedStrings(), pools: wb.GetStyles(), date1904: date1904}
}

func (r *resolver) numberFormat(row, col int32) (id int, formatStr string) {
	formatIdx, _ := r.sheet.EffectiveFormat(row, col)
	nfIdx := r.pools.EffectiveNumberFormatIndex(formatIdx)
	nf, ok := r.pools.NumberFmts.Get(nfIdx)
	if !ok {
		return 0, ""
	}
	return nf.ID, nf.FormatStr
}

func (r *resolver) resolve(row, col int32) cellValue {
	cell := r.sheet.Store().GetCell(row, col)
	switch cell.Type {
	case model.CellEmpty:
		return cellValue{Type: cell.Type}
	case model.CellBoolean:
		return cellValue{Type: cell.Type, Text: numfmt.FormatValue(cell.Boolean, 0, "", r.date1904)}
	case model.CellString:
		s, _ := r.strings.Get(cell.String)
		return cellValue{Type: cell.Type, Text: s}
	case model.CellNumeric:
		id, fmtStr := r.numberFormat(row, col)
		return cellValue{Type: cell.Type, Text: numfmt.FormatValue(cell.Numeric, id, fmtStr, r.date1904)}
	case model.CellFormula:
		return cellValue{Type: cell.Type, Text: r.formulaResultText(cell.Formula.Result, row, col)}
	default:
		return cellValue{Type: cell.Type}
	}
}

func (r *resolver) formulaResultText(res model.FormulaResult, row, col int32) string {
	switch res.Type {
	case model.ResultNumeric:
		id, fmtStr := r.numberFormat(row, col)
		return numfmt.FormatValue(res.Numeric, id, fmtStr, r.date1904)
	case model.ResultString:
		s, _ := r.strings.Get(res.String)
		return s
	case model.ResultError:
		return res.Error
	case model.ResultMatrix:
		if res.Matrix == nil {
			return ""
		}
		return numfmt.FormatValue(res.Matrix.At(0, 0).Numeric, 0, "", r.date1904)
	default:
		return ""
	}
}

// dataRange returns the sheet's populated data range, clamped to at
// least one row/column so an empty sheet still yields one pass of the
// fixed-width/grid dumpers.
func dataRange(sheet *factory.SheetBuilder) (rows, cols int32) {
	r := sheet.Store().GetDataRange()
	return r.Rows(), r.Columns()
}
