package dump

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/go-orcus/orcus/factory"
	"github.com/go-orcus/orcus/model"
)

// WriteCSV writes the csv dump spec.md §4.15 describes: one sheet per
// file, numeric cells printed to precision significant digits rather
// than their number-format display text (so the output stays a stable,
// locale-independent numeric form regardless of the source format's
// display rules).
func WriteCSV(wb Workbook, date1904 bool, precision int, sink Sink) error {
	for _, sheet := range wb.Sheets() {
		if sheet == nil {
			continue
		}
		w, err := sink(sheet.Name())
		if err != nil {
			return err
		}
		if err := writeCSVSheet(wb, sheet, date1904, precision, w); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVSheet(wb Workbook, sheet *factory.SheetBuilder, date1904 bool, precision int, w io.Writer) error {
	cw := csv.NewWriter(w)
	res := newResolver(wb, sheet, date1904)
	rows, cols := dataRange(sheet)
	for row := int32(0); row < rows; row++ {
		record := make([]string, cols)
		for col := int32(0); col < cols; col++ {
			record[col] = csvCellText(sheet, res, row, col, precision)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// csvCellText renders numeric-bearing cells (numeric, or a formula
// whose cached result is numeric) to precision significant digits;
// every other cell type uses the same display text the other dumpers
// use.
func csvCellText(sheet *factory.SheetBuilder, res *resolver, row, col int32, precision int) string {
	cell := sheet.Store().GetCell(row, col)
	switch {
	case cell.Type == model.CellNumeric:
		return strconv.FormatFloat(cell.Numeric, 'g', precision, 64)
	case cell.Type == model.CellFormula && cell.Formula.Result.Type == model.ResultNumeric:
		return strconv.FormatFloat(cell.Formula.Result.Numeric, 'g', precision, 64)
	default:
		return res.resolve(row, col).Text
	}
}
