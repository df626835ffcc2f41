package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-orcus/orcus/factory"
)

// Sink resolves the writer a per-sheet dumper should write to, given
// the sheet's display name — "one sheet per file" (spec.md §4.15).
type Sink func(sheetName string) (io.Writer, error)

// flatColumnWidth is the fixed column width the flat dump pads every
// cell's text to.
const flatColumnWidth = 12

// WriteFlat writes the flat dump spec.md §4.15 describes: a fixed-width
// grid, one sheet per file, via sink.
func WriteFlat(wb Workbook, date1904 bool, sink Sink) error {
	for _, sheet := range wb.Sheets() {
		if sheet == nil {
			continue
		}
		w, err := sink(sheet.Name())
		if err != nil {
			return err
		}
		if err := writeFlatSheet(wb, sheet, date1904, w); err != nil {
			return err
		}
	}
	return nil
}

func writeFlatSheet(wb Workbook, sheet *factory.SheetBuilder, date1904 bool, w io.Writer) error {
	res := newResolver(wb, sheet, date1904)
	rows, cols := dataRange(sheet)
	for row := int32(0); row < rows; row++ {
		var line strings.Builder
		for col := int32(0); col < cols; col++ {
			v := res.resolve(row, col)
			padCell(&line, v.Text)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

func padCell(b *strings.Builder, text string) {
	if len(text) >= flatColumnWidth {
		b.WriteString(text[:flatColumnWidth])
		b.WriteByte(' ')
		return
	}
	b.WriteString(text)
	for i := len(text); i < flatColumnWidth; i++ {
		b.WriteByte(' ')
	}
}
