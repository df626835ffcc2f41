package refengine

import (
	"testing"

	"github.com/go-orcus/orcus/formula"
	"github.com/go-orcus/orcus/model"
)

// fakeContext is a minimal in-memory formula.CalcContext fake keyed by
// (row, column) within a single sheet, enough to drive this package's
// two literal boundary scenarios.
type fakeContext struct {
	values   map[[2]int32]float64
	formulas map[[2]int32]struct {
		stream formula.TokenStream
		origin model.Address
	}
	results map[[2]int32]model.FormulaResult
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		values: make(map[[2]int32]float64),
		formulas: make(map[[2]int32]struct {
			stream formula.TokenStream
			origin model.Address
		}),
		results: make(map[[2]int32]model.FormulaResult),
	}
}

func (f *fakeContext) setValue(row, col int32, v float64) { f.values[[2]int32{row, col}] = v }

func (f *fakeContext) setFormula(row, col int32, expr string, origin model.Address) {
	stream := formula.Tokenize(expr, origin)
	f.formulas[[2]int32{row, col}] = struct {
		stream formula.TokenStream
		origin model.Address
	}{stream: stream, origin: origin}
}

func (f *fakeContext) GetCellType(sheet model.SheetIndex, row, col int32) (model.CellType, error) {
	if _, ok := f.formulas[[2]int32{row, col}]; ok {
		return model.CellFormula, nil
	}
	return model.CellNumeric, nil
}

func (f *fakeContext) GetNumericValue(sheet model.SheetIndex, row, col int32) (float64, error) {
	if r, ok := f.results[[2]int32{row, col}]; ok {
		return r.Numeric, nil
	}
	return f.values[[2]int32{row, col}], nil
}

func (f *fakeContext) GetFormulaTokens(sheet model.SheetIndex, row, col int32) (formula.TokenStream, model.Address, bool) {
	entry, ok := f.formulas[[2]int32{row, col}]
	if !ok {
		return formula.TokenStream{}, model.Address{}, false
	}
	return entry.stream, entry.origin, true
}

func (f *fakeContext) SetFormulaResult(sheet model.SheetIndex, row, col int32, result model.FormulaResult) error {
	f.results[[2]int32{row, col}] = result
	return nil
}

func (f *fakeContext) TableRange(tableName, columnName string) (model.Range, bool) { return model.Range{}, false }

func TestSharedFormulaRoundTrip(t *testing.T) {
	ctx := newFakeContext()
	origin := model.Address{Sheet: 0, Row: 0, Column: 0} // A1

	// A1 = B1+C1, shared by A2 (translated to B2+C2).
	ctx.setFormula(0, 0, "B1+C1", origin)
	ctx.setFormula(1, 0, "B1+C1", origin)

	ctx.setValue(0, 1, 1)  // B1 = 1
	ctx.setValue(0, 2, 2)  // C1 = 2
	ctx.setValue(1, 1, 10) // B2 = 10
	ctx.setValue(1, 2, 20) // C2 = 20

	eng := New()
	dirty := []model.Address{
		{Sheet: 0, Row: 0, Column: 0},
		{Sheet: 0, Row: 1, Column: 0},
	}
	if err := eng.Calculate(ctx, dirty); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	a1 := ctx.results[[2]int32{0, 0}]
	a2 := ctx.results[[2]int32{1, 0}]
	if a1.Type != model.ResultNumeric || a1.Numeric != 3.0 {
		t.Fatalf("A1 = %+v, want numeric 3.0", a1)
	}
	if a2.Type != model.ResultNumeric || a2.Numeric != 30.0 {
		t.Fatalf("A2 = %+v, want numeric 30.0", a2)
	}
}

func TestNamedExpressionEvaluation(t *testing.T) {
	ctx := newFakeContext()
	base := model.Address{Sheet: 0, Row: 0, Column: 0} // Sheet1!A1

	// PROFIT = Sheet1!$B$2-Sheet1!$C$2, evaluated at its own base.
	ctx.setFormula(0, 0, "Sheet1!$B$2-Sheet1!$C$2", base)
	ctx.setValue(1, 1, 100) // B2 = 100
	ctx.setValue(1, 2, 40)  // C2 = 40

	eng := New()
	if err := eng.Calculate(ctx, []model.Address{base}); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	result := ctx.results[[2]int32{0, 0}]
	if result.Type != model.ResultNumeric || result.Numeric != 60.0 {
		t.Fatalf("PROFIT = %+v, want numeric 60.0", result)
	}
}

func TestDivisionByZeroProducesErrorResult(t *testing.T) {
	ctx := newFakeContext()
	origin := model.Address{Sheet: 0, Row: 0, Column: 0}
	ctx.setFormula(0, 0, "B1/C1", origin)
	ctx.setValue(0, 1, 5)
	ctx.setValue(0, 2, 0)

	eng := New()
	if err := eng.Calculate(ctx, []model.Address{origin}); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	result := ctx.results[[2]int32{0, 0}]
	if result.Type != model.ResultError {
		t.Fatalf("expected error result, got %+v", result)
	}
}
