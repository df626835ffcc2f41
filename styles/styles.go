// Package styles implements the styles pool described in spec.md §4.6:
// flyweight stores for fonts, fills, borders, protection settings,
// number formats, cell formats, and named cell styles, each built via a
// dedicated builder with setter methods followed by Commit, returning a
// stable insertion-order index (index 0 is always the default entry).
package styles

// BuiltInNumFmt maps built-in numFmtId values (0–49) to their canonical
// format strings as defined by ECMA-376 §18.8.30.  IDs not present in this
// map are built-in IDs whose format string is locale-dependent or otherwise
// not representable as a static string.
var BuiltInNumFmt = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	5:  `($#,##0_);($#,##0)`,
	6:  `($#,##0_);[Red]($#,##0)`,
	7:  `($#,##0.00_);($#,##0.00)`,
	8:  `($#,##0.00_);[Red]($#,##0.00)`,
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "MM-DD-YY",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: `(#,##0_);(#,##0)`,
	38: `(#,##0_);[Red](#,##0)`,
	39: `(#,##0.00_);(#,##0.00)`,
	40: `(#,##0.00_);[Red](#,##0.00)`,
	41: `_(* #,##0_);_(* (#,##0);_(* "-"_);_(@_)`,
	42: `_($* #,##0_);_($* (#,##0);_($* "-"_);_(@_)`,
	43: `_(* #,##0.00_);_(* (#,##0.00);_(* "-"??_);_(@_)`,
	44: `_($* #,##0.00_);_($* (#,##0.00);_($* "-"??_);_(@_)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mm:ss.0",
	48: "##0.0E+0",
	49: "@",
}

// Date-format detection lives in dateformat.go (isDateFormatID,
// IsBuiltInDateID, ScanFormatStr) so this package and numfmt share one
// implementation instead of drifting copies.
