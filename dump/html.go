package dump

import (
	"fmt"
	"html"
	"io"

	"github.com/go-orcus/orcus/factory"
)

// WriteHTML writes the html dump spec.md §4.15 describes: one sheet per
// file, a straightforward <table> serialization.
func WriteHTML(wb Workbook, date1904 bool, sink Sink) error {
	for _, sheet := range wb.Sheets() {
		if sheet == nil {
			continue
		}
		w, err := sink(sheet.Name())
		if err != nil {
			return err
		}
		if err := writeHTMLSheet(wb, sheet, date1904, w); err != nil {
			return err
		}
	}
	return nil
}

func writeHTMLSheet(wb Workbook, sheet *factory.SheetBuilder, date1904 bool, w io.Writer) error {
	res := newResolver(wb, sheet, date1904)
	rows, cols := dataRange(sheet)

	if _, err := fmt.Fprintf(w, "<table>\n"); err != nil {
		return err
	}
	for row := int32(0); row < rows; row++ {
		if _, err := fmt.Fprintf(w, "<tr>"); err != nil {
			return err
		}
		for col := int32(0); col < cols; col++ {
			v := res.resolve(row, col)
			if _, err := fmt.Fprintf(w, "<td>%s</td>", html.EscapeString(v.Text)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "</tr>\n"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "</table>\n")
	return err
}
