package dump

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-orcus/orcus/model"
)

// WriteCheck writes the check dump spec.md §4.15 describes: one line
// per non-empty cell across every sheet, sorted by (sheet, row,
// column), tagged with its type and display value. This is the
// deterministic reference form regression tests compare against, so
// formatting is kept as plain and stable as possible.
func WriteCheck(wb Workbook, date1904 bool, w io.Writer) error {
	type line struct {
		sheetIdx    int
		row, col    int32
		sheetName   string
		cell        cellValue
	}
	var lines []line
	for sheetIdx, sheet := range wb.Sheets() {
		if sheet == nil {
			continue
		}
		res := newResolver(wb, sheet, date1904)
		r := sheet.Store().GetDataRange()
		for row := range sheet.Store().Rows(r.First.Row, r.Last.Row, r.First.Column, r.Last.Column) {
			for _, cc := range row.Cells {
				v := res.resolve(row.Index, cc.Column)
				if v.Type == model.CellEmpty {
					continue
				}
				lines = append(lines, line{sheetIdx: sheetIdx, row: row.Index, col: cc.Column, sheetName: sheet.Name(), cell: v})
			}
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].sheetIdx != lines[j].sheetIdx {
			return lines[i].sheetIdx < lines[j].sheetIdx
		}
		if lines[i].row != lines[j].row {
			return lines[i].row < lines[j].row
		}
		return lines[i].col < lines[j].col
	})

	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s/%s: %s: %s\n", l.sheetName, cellRef(l.row, l.col), l.cell.Type, l.cell.Text); err != nil {
			return err
		}
	}
	return nil
}
