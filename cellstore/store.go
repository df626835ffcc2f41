// Package cellstore implements the per-sheet cell value store described
// in spec.md §4.4: column-major typed-run storage keyed by (row, column),
// with set operations, typed queries, fill-down, and data-range/iteration
// queries.
package cellstore

import (
	"sort"
	"strconv"
	"time"

	"github.com/go-orcus/orcus/model"
	"github.com/go-orcus/orcus/orcuserr"
)

// StringInterner resolves raw text to a stable StringID, used by SetAuto
// and SetString when given a literal rather than an id. Implementations
// are typically backed by a sharedstrings.Store.
type StringInterner interface {
	InternString(s string) model.StringID
}

// Size bounds a sheet's addressable rows and columns, per spec.md §6's
// document(sheet_size) construction parameter.
type Size struct {
	Rows    int32
	Columns int32
}

// DefaultSize matches the largest target format's limits (spec.md §6).
var DefaultSize = Size{Rows: 1_048_576, Columns: 16_384}

// entry is one populated cell within a column, kept in ascending row
// order so that row-range iteration and get-data-range are O(populated).
type entry struct {
	row  int32
	cell model.Cell
}

type column struct {
	entries []entry
}

// find returns the index of row's entry and whether it exists.
func (c *column) find(row int32) (int, bool) {
	i := sort.Search(len(c.entries), func(i int) bool { return c.entries[i].row >= row })
	if i < len(c.entries) && c.entries[i].row == row {
		return i, true
	}
	return i, false
}

func (c *column) set(row int32, cell model.Cell) {
	i, ok := c.find(row)
	if ok {
		c.entries[i].cell = cell
		return
	}
	c.entries = append(c.entries, entry{})
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = entry{row: row, cell: cell}
}

func (c *column) get(row int32) (model.Cell, bool) {
	i, ok := c.find(row)
	if !ok {
		return model.EmptyCell, false
	}
	return c.entries[i].cell, true
}

// Store holds one sheet's cell data. The zero value is not usable; build
// one with New.
type Store struct {
	size     Size
	sheet    model.SheetIndex
	columns  map[int32]*column
	system   DateSystem
	interner StringInterner
}

// New creates an empty Store for the given sheet, bounded by size.
func New(sheet model.SheetIndex, size Size, system DateSystem, interner StringInterner) *Store {
	return &Store{size: size, sheet: sheet, columns: make(map[int32]*column), system: system, interner: interner}
}

func (s *Store) columnFor(col int32) *column {
	c, ok := s.columns[col]
	if !ok {
		c = &column{}
		s.columns[col] = c
	}
	return c
}

func (s *Store) checkBounds(row, col int32) error {
	if row < 0 || row >= s.size.Rows || col < 0 || col >= s.size.Columns {
		return orcuserr.NewInvalidArgument("address (%d,%d) out of sheet bounds (%d,%d)", row, col, s.size.Rows, s.size.Columns)
	}
	return nil
}

// SetValue stores a numeric cell.
func (s *Store) SetValue(row, col int32, v float64) error {
	if err := s.checkBounds(row, col); err != nil {
		return err
	}
	s.columnFor(col).set(row, model.NumericCell(v))
	return nil
}

// SetBool stores a boolean cell.
func (s *Store) SetBool(row, col int32, v bool) error {
	if err := s.checkBounds(row, col); err != nil {
		return err
	}
	s.columnFor(col).set(row, model.BooleanCell(v))
	return nil
}

// SetString stores a string cell by an already-resolved StringID.
func (s *Store) SetString(row, col int32, id model.StringID) error {
	if err := s.checkBounds(row, col); err != nil {
		return err
	}
	s.columnFor(col).set(row, model.StringCell(id))
	return nil
}

// SetFormula stores a formula cell.
func (s *Store) SetFormula(row, col int32, ref model.FormulaRef) error {
	if err := s.checkBounds(row, col); err != nil {
		return err
	}
	s.columnFor(col).set(row, model.FormulaCell(ref))
	return nil
}

// SetDateTime stores t as a numeric day-count cell relative to the
// store's configured date system.
func (s *Store) SetDateTime(row, col int32, t time.Time) error {
	if err := s.checkBounds(row, col); err != nil {
		return err
	}
	serial := ToSerial(t, s.system)
	s.columnFor(col).set(row, model.NumericCell(serial))
	return nil
}

// SetAuto parses raw and infers its cell type: "TRUE"/"FALSE" become
// booleans, a valid float literal becomes numeric, otherwise the text is
// interned and stored as a string cell. The interner must have been
// supplied to New.
func (s *Store) SetAuto(row, col int32, raw string) error {
	if err := s.checkBounds(row, col); err != nil {
		return err
	}
	if v, ok := parseBool(raw); ok {
		s.columnFor(col).set(row, model.BooleanCell(v))
		return nil
	}
	if v, ok := parseFloat(raw); ok {
		s.columnFor(col).set(row, model.NumericCell(v))
		return nil
	}
	if s.interner == nil {
		return orcuserr.NewGeneralError("cellstore: SetAuto needs a StringInterner to store %q", raw)
	}
	id := s.interner.InternString(raw)
	s.columnFor(col).set(row, model.StringCell(id))
	return nil
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "TRUE", "true", "True":
		return true, true
	case "FALSE", "false", "False":
		return false, true
	default:
		return false, false
	}
}

// FillDown copies the cell at (row, col) into the n cells directly below
// it. It never expands the sheet's data range past its configured size;
// rows that would fall outside the sheet bounds are silently not
// written, matching spec.md §4.4.
func (s *Store) FillDown(row, col int32, n int32) error {
	if err := s.checkBounds(row, col); err != nil {
		return err
	}
	src, ok := s.columnFor(col).get(row)
	if !ok {
		return nil
	}
	for i := int32(1); i <= n; i++ {
		r := row + i
		if r >= s.size.Rows {
			break
		}
		s.columnFor(col).set(r, src)
	}
	return nil
}

// GetCellType returns the variant stored at (row, col); an unwritten
// position reads as model.CellEmpty.
func (s *Store) GetCellType(row, col int32) model.CellType {
	c, ok := s.columns[col]
	if !ok {
		return model.CellEmpty
	}
	cell, ok := c.get(row)
	if !ok {
		return model.CellEmpty
	}
	return cell.Type
}

// GetCell returns the full cell at (row, col).
func (s *Store) GetCell(row, col int32) model.Cell {
	c, ok := s.columns[col]
	if !ok {
		return model.EmptyCell
	}
	cell, _ := c.get(row)
	return cell
}

// GetNumericValue returns the numeric value at (row, col), or 0 if the
// cell is not numeric.
func (s *Store) GetNumericValue(row, col int32) float64 {
	return s.GetCell(row, col).Numeric
}

// GetStringIdentifier returns the string id at (row, col), or
// model.EmptyStringID if the cell is not a string.
func (s *Store) GetStringIdentifier(row, col int32) model.StringID {
	cell := s.GetCell(row, col)
	if cell.Type != model.CellString {
		return model.EmptyStringID
	}
	return cell.String
}

// GetDateTime interprets the numeric value at (row, col) as a day-count
// serial under the store's date system.
func (s *Store) GetDateTime(row, col int32) (time.Time, error) {
	return FromSerial(s.GetNumericValue(row, col), s.system)
}

// GetDataRange returns the smallest rectangle enclosing every non-empty
// cell, anchored at (0,0) per spec.md §4.4. An entirely empty sheet
// returns a single-cell range at the origin.
func (s *Store) GetDataRange() model.Range {
	var maxRow, maxCol int32 = -1, -1
	for colIdx, c := range s.columns {
		if len(c.entries) == 0 {
			continue
		}
		last := c.entries[len(c.entries)-1].row
		if last > maxRow {
			maxRow = last
		}
		if colIdx > maxCol {
			maxCol = colIdx
		}
	}
	if maxRow < 0 {
		maxRow = 0
	}
	if maxCol < 0 {
		maxCol = 0
	}
	return model.Range{
		First: model.Address{Sheet: s.sheet, Row: 0, Column: 0},
		Last:  model.Address{Sheet: s.sheet, Row: maxRow, Column: maxCol},
	}
}

// Row is one row's populated cells within a queried region, in ascending
// column order.
type Row struct {
	Index int32
	Cells []ColumnCell
}

// ColumnCell pairs a column index with its cell value.
type ColumnCell struct {
	Column int32
	Cell   model.Cell
}

// Rows iterates populated rows within [firstRow, lastRow] x
// [firstCol, lastCol] inclusive, in ascending row order, using Go 1.22+
// range-over-func semantics — the same iteration idiom the teacher's
// Worksheet.Rows uses, adapted here to a push-populated, column-major
// store instead of a binary-record decode.
func (s *Store) Rows(firstRow, lastRow, firstCol, lastCol int32) func(yield func(Row) bool) {
	return func(yield func(Row) bool) {
		byRow := make(map[int32][]ColumnCell)
		cols := make([]int32, 0, len(s.columns))
		for colIdx := range s.columns {
			if colIdx < firstCol || colIdx > lastCol {
				continue
			}
			cols = append(cols, colIdx)
		}
		sort.Slice(cols, func(i, j int) bool { return cols[i] < cols[j] })

		for _, colIdx := range cols {
			c := s.columns[colIdx]
			for _, e := range c.entries {
				if e.row < firstRow || e.row > lastRow {
					continue
				}
				byRow[e.row] = append(byRow[e.row], ColumnCell{Column: colIdx, Cell: e.cell})
			}
		}

		rows := make([]int32, 0, len(byRow))
		for r := range byRow {
			rows = append(rows, r)
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i] < rows[j] })

		for _, r := range rows {
			cells := byRow[r]
			sort.Slice(cells, func(i, j int) bool { return cells[i].Column < cells[j].Column })
			if !yield(Row{Index: r, Cells: cells}) {
				return
			}
		}
	}
}
