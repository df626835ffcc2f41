package dump

import (
	"encoding/json"
	"io"

	"github.com/go-orcus/orcus/factory"
)

// jsonCell is one cell's serialized form in the json dump.
type jsonCell struct {
	Row    int32  `json:"row"`
	Column int32  `json:"column"`
	Type   string `json:"type"`
	Value  string `json:"value"`
}

// jsonSheet is one sheet's serialized form: its name plus every
// non-empty cell, in row-major order.
type jsonSheet struct {
	Name  string     `json:"name"`
	Cells []jsonCell `json:"cells"`
}

// WriteJSON writes the json dump spec.md §4.15 describes: one sheet per
// file, straightforward serialization of every non-empty cell.
func WriteJSON(wb Workbook, date1904 bool, sink Sink) error {
	for _, sheet := range wb.Sheets() {
		if sheet == nil {
			continue
		}
		w, err := sink(sheet.Name())
		if err != nil {
			return err
		}
		if err := writeJSONSheet(wb, sheet, date1904, w); err != nil {
			return err
		}
	}
	return nil
}

func writeJSONSheet(wb Workbook, sheet *factory.SheetBuilder, date1904 bool, w io.Writer) error {
	res := newResolver(wb, sheet, date1904)
	out := jsonSheet{Name: sheet.Name()}

	r := sheet.Store().GetDataRange()
	for row := range sheet.Store().Rows(r.First.Row, r.Last.Row, r.First.Column, r.Last.Column) {
		for _, cc := range row.Cells {
			v := res.resolve(row.Index, cc.Column)
			out.Cells = append(out.Cells, jsonCell{Row: row.Index, Column: cc.Column, Type: v.Type.String(), Value: v.Text})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
