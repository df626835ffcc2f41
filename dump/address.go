package dump

import "strconv"

// cellRef renders a zero-based (row, col) position as an A1-style
// reference ("A1", "AB12", ...), the address form every dumper's
// textual output uses.
func cellRef(row, col int32) string {
	return columnLetters(col) + strconv.Itoa(int(row)+1)
}

// columnLetters converts a zero-based column index to its spreadsheet
// letters: 0 -> "A", 25 -> "Z", 26 -> "AA".
func columnLetters(col int32) string {
	col++
	var buf []byte
	for col > 0 {
		col--
		buf = append([]byte{byte('A' + col%26)}, buf...)
		col /= 26
	}
	return string(buf)
}
