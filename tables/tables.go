// Package tables implements the table and auto-filter builders (spec.md
// §4.7): a table buffers its header, column list, style properties, and
// an embedded auto-filter; an auto-filter buffers a range and a set of
// per-column match rules, either flat value lists or nested
// boolean-connected rule trees.
package tables

import "github.com/go-orcus/orcus/model"

// Column is one column definition within a Table.
type Column struct {
	Name    string
	Totals  string
	HasTotals bool
}

// Table is a committed table: its name, data range, header flag, column
// list, style name, and embedded auto-filter (if any).
type Table struct {
	Name        string
	DisplayName string
	Range       model.Range
	HasHeaders  bool
	Columns     []Column
	StyleName   string
	AutoFilter  *AutoFilter
}

// Builder buffers a table's fields before Commit.
type Builder struct {
	t   Table
	afb *AutoFilterBuilder
}

// NewBuilder starts building a table over range r.
func NewBuilder(name string, r model.Range) *Builder {
	return &Builder{t: Table{Name: name, Range: r, HasHeaders: true}}
}

func (b *Builder) SetDisplayName(name string) *Builder { b.t.DisplayName = name; return b }
func (b *Builder) SetHasHeaders(v bool) *Builder        { b.t.HasHeaders = v; return b }
func (b *Builder) SetStyleName(name string) *Builder    { b.t.StyleName = name; return b }

// AppendColumn commits one column to the table's column list, in order.
func (b *Builder) AppendColumn(col Column) *Builder {
	b.t.Columns = append(b.t.Columns, col)
	return b
}

// AutoFilter returns a sub-builder for the table's embedded auto-filter,
// creating it on first call.
func (b *Builder) AutoFilter() *AutoFilterBuilder {
	if b.afb == nil {
		b.afb = newAutoFilterBuilder(b.t.Range)
	}
	return b.afb
}

// Collection holds every committed table in a workbook, keyed by name.
type Collection struct {
	byName map[string]*Table
	order  []*Table
}

// NewCollection creates an empty table collection.
func NewCollection() *Collection {
	return &Collection{byName: make(map[string]*Table)}
}

// Commit finalizes the table and inserts it into coll. If a table of the
// same name already exists, the new one is discarded — neither inserted
// nor used to overwrite the existing entry (spec.md §4.7).
func (b *Builder) Commit(coll *Collection) (*Table, bool) {
	if _, exists := coll.byName[b.t.Name]; exists {
		return nil, false
	}
	if b.afb != nil {
		b.t.AutoFilter = b.afb.commit()
	}
	t := b.t
	coll.byName[t.Name] = &t
	coll.order = append(coll.order, &t)
	return &t, true
}

// Get looks up a committed table by name.
func (c *Collection) Get(name string) (*Table, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// All returns every committed table in commit order.
func (c *Collection) All() []*Table {
	out := make([]*Table, len(c.order))
	copy(out, c.order)
	return out
}
