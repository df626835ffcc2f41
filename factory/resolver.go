package factory

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-orcus/orcus/formula"
	"github.com/go-orcus/orcus/model"
	"github.com/go-orcus/orcus/orcuserr"
)

// ResolverContext selects which of the orchestrator's three parallel
// reference-grammar variants a caller wants (spec.md §4.12): the
// ordinary global grammar, the grammar used to interpret a named
// expression's own base-position anchor, and the grammar used for
// named-range text specifically — the ODF case spec.md §4.9 calls out,
// where named ranges use a different reference dialect than the global
// one.
type ResolverContext int

const (
	ResolverGlobal ResolverContext = iota
	ResolverNamedExpressionBase
	ResolverNamedRange
)

// sheetIndexer looks up a sheet's index by name, used to resolve
// "Sheet1!A1"-style references. The orchestrator itself satisfies this.
type sheetIndexer interface {
	sheetIndexByName(name string) (model.SheetIndex, bool)
}

// a1Resolver resolves A1-style and R1C1-style references against a
// default sheet (the sheet the caller is currently importing) and the
// orchestrator's sheet-name table. It is grounded in spec.md §4.12's
// "converts a single string like A1, Sheet!A1, or R1C1 into a typed
// address or range" and implements all three ResolverContext variants:
// the global and named-expression-base grammars share this
// implementation; the named-range grammar additionally accepts ODF's
// `.A1` sheet-separator (a leading dot instead of `!`) per the dialect
// spec.md §4.9 flags.
type a1Resolver struct {
	sheets      sheetIndexer
	defaultSheet model.SheetIndex
	odfDialect  bool
}

func newA1Resolver(sheets sheetIndexer, defaultSheet model.SheetIndex, odfDialect bool) *a1Resolver {
	return &a1Resolver{sheets: sheets, defaultSheet: defaultSheet, odfDialect: odfDialect}
}

func (r *a1Resolver) splitSheet(ref string) (sheetPart string, rest string, hasSheet bool) {
	sep := "!"
	if r.odfDialect {
		sep = "."
	}
	if i := strings.LastIndex(ref, sep); i >= 0 {
		return strings.Trim(ref[:i], "'"), ref[i+len(sep):], true
	}
	return "", ref, false
}

func (r *a1Resolver) resolveSheet(ref string) (model.SheetIndex, string, error) {
	sheetPart, rest, hasSheet := r.splitSheet(ref)
	if !hasSheet {
		return r.defaultSheet, rest, nil
	}
	idx, ok := r.sheets.sheetIndexByName(sheetPart)
	if !ok {
		return 0, "", orcuserr.NewInvalidArgument("unknown sheet %q in reference %q", sheetPart, ref)
	}
	return idx, rest, nil
}

// ResolveAddress implements formula.Resolver.
func (r *a1Resolver) ResolveAddress(ref string) (model.Address, error) {
	sheet, rest, err := r.resolveSheet(ref)
	if err != nil {
		return model.InvalidAddress, err
	}
	row, col, err := parseCellRef(rest)
	if err != nil {
		return model.InvalidAddress, orcuserr.NewInvalidArgument("%q: %s", ref, err)
	}
	return model.Address{Sheet: sheet, Row: row, Column: col}, nil
}

// ResolveRange implements formula.Resolver.
func (r *a1Resolver) ResolveRange(ref string) (model.Range, error) {
	sheet, rest, err := r.resolveSheet(ref)
	if err != nil {
		return model.Range{}, err
	}
	parts := strings.SplitN(rest, ":", 2)
	first, _, err := parseAnchoredCellRef(parts[0])
	if err != nil {
		return model.Range{}, orcuserr.NewInvalidArgument("%q: %s", ref, err)
	}
	last := first
	if len(parts) == 2 {
		last, _, err = parseAnchoredCellRef(parts[1])
		if err != nil {
			return model.Range{}, orcuserr.NewInvalidArgument("%q: %s", ref, err)
		}
	}
	return model.Range{
		First: model.Address{Sheet: sheet, Row: first.Row, Column: first.Column},
		Last:  model.Address{Sheet: sheet, Row: last.Row, Column: last.Column},
	}, nil
}

type parsedRef struct {
	Row, Column  int32
	RowAbsolute  bool
	ColAbsolute  bool
}

func parseCellRef(s string) (row, col int32, err error) {
	p, _, err := parseAnchoredCellRef(s)
	if err != nil {
		return 0, 0, err
	}
	return p.Row, p.Column, nil
}

// parseAnchoredCellRef parses one A1-style cell reference, optionally
// $-anchored per axis (spec.md §8 scenario 6 uses `$B$2`), or an
// R1C1-style reference. It reports whether each axis was absolute so the
// formula engine can translate relative references by offset (spec.md
// §9's shared-formula note).
func parseAnchoredCellRef(s string) (parsedRef, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return parsedRef{}, false, orcuserr.NewInvalidArgument("empty cell reference")
	}
	if isR1C1(s) {
		p, err := parseR1C1(s)
		return p, true, err
	}
	i := 0
	colAbs := false
	if i < len(s) && s[i] == '$' {
		colAbs = true
		i++
	}
	start := i
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i == start {
		return parsedRef{}, false, orcuserr.NewInvalidArgument("malformed reference %q", s)
	}
	colLetters := s[start:i]
	rowAbs := false
	if i < len(s) && s[i] == '$' {
		rowAbs = true
		i++
	}
	rowStart := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == rowStart || i != len(s) {
		return parsedRef{}, false, orcuserr.NewInvalidArgument("malformed reference %q", s)
	}
	rowNum, err := strconv.Atoi(s[rowStart:i])
	if err != nil {
		return parsedRef{}, false, orcuserr.NewInvalidArgument("malformed row in %q", s)
	}
	return parsedRef{
		Row:         int32(rowNum - 1),
		Column:      columnLettersToIndex(colLetters),
		RowAbsolute: rowAbs,
		ColAbsolute: colAbs,
	}, true, nil
}

func isAlpha(b byte) bool { return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') }

// columnLettersToIndex converts "A"->0, "B"->1, ..., "Z"->25, "AA"->26.
func columnLettersToIndex(letters string) int32 {
	var n int32
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c >= 'a' {
			c -= 'a' - 'A'
		}
		n = n*26 + int32(c-'A'+1)
	}
	return n - 1
}

// r1c1Pattern matches "R<row>C<col>" with each number plain or
// bracketed; A1 references such as "C1" or "R2" do not match.
var r1c1Pattern = regexp.MustCompile(`^[Rr](\[-?[0-9]+\]|[0-9]+)[Cc](\[-?[0-9]+\]|[0-9]+)$`)

func isR1C1(s string) bool {
	return r1c1Pattern.MatchString(s)
}

// parseR1C1 parses "R<row>C<col>" style references, including relative
// bracketed offsets like "R[1]C[-1]" (treated as absolute here since the
// orchestrator has no "current cell" context at resolve time — a real
// engine resolving a shared-formula member translates these by its own
// offset from the formula's anchor instead, per spec.md §9).
func parseR1C1(s string) (parsedRef, error) {
	u := strings.ToUpper(s)
	cIdx := strings.IndexByte(u, 'C')
	if !strings.HasPrefix(u, "R") || cIdx < 0 {
		return parsedRef{}, orcuserr.NewInvalidArgument("malformed R1C1 reference %q", s)
	}
	rowStr := u[1:cIdx]
	colStr := u[cIdx+1:]
	row, err := strconv.Atoi(strings.Trim(rowStr, "[]"))
	if err != nil {
		return parsedRef{}, orcuserr.NewInvalidArgument("malformed R1C1 row in %q", s)
	}
	col, err := strconv.Atoi(strings.Trim(colStr, "[]"))
	if err != nil {
		return parsedRef{}, orcuserr.NewInvalidArgument("malformed R1C1 column in %q", s)
	}
	return parsedRef{Row: int32(row - 1), Column: int32(col - 1)}, nil
}

var _ formula.Resolver = (*a1Resolver)(nil)
