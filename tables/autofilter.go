package tables

import "github.com/go-orcus/orcus/model"

// BoolOp connects sibling rule-tree nodes or filter items.
type BoolOp int

const (
	BoolAnd BoolOp = iota
	BoolOr
)

// CompareOp is a leaf comparison operator within a rule-tree item.
type CompareOp int

const (
	CompareEqual CompareOp = iota
	CompareNotEqual
	CompareGreaterThan
	CompareGreaterOrEqual
	CompareLessThan
	CompareLessOrEqual
)

// RuleItem is one leaf comparison within a RuleNode.
type RuleItem struct {
	Op    CompareOp
	Value string
}

// RuleNode is one node of a nested boolean-connected auto-filter rule
// tree (spec.md §4.7's "new builder variant"). A node has a boolean
// connector joining its items/children, a flat list of leaf items, and
// a list of child nodes (each itself boolean-connected).
type RuleNode struct {
	Connector BoolOp
	Items     []RuleItem
	Children  []*RuleNode
}

// AppendItem appends a leaf comparison to n, connected to n's existing
// items/children by n.Connector.
func (n *RuleNode) AppendItem(op CompareOp, value string) *RuleNode {
	n.Items = append(n.Items, RuleItem{Op: op, Value: value})
	return n
}

// AppendItemNode starts a new nested child node connected by nodeOp and
// returns it for further appends.
func (n *RuleNode) AppendItemNode(nodeOp BoolOp) *RuleNode {
	child := &RuleNode{Connector: nodeOp}
	n.Children = append(n.Children, child)
	return child
}

// FilterColumn is one column's filter rule: either a flat list of match
// values (the simple case) or a nested rule tree (the "new builder
// variant"). Exactly one of Values or Tree is populated.
type FilterColumn struct {
	ColumnOffset int
	Values       []string
	Tree         *RuleNode
}

// AutoFilter is the materialized, committed filter.
type AutoFilter struct {
	Range   model.Range
	Columns []FilterColumn
}

// AutoFilterBuilder buffers a range and a set of per-column filter
// rules before the root-level Commit.
type AutoFilterBuilder struct {
	rng     model.Range
	columns []FilterColumn

	curCol    int
	curValues []string
	haveCur   bool
}

func newAutoFilterBuilder(r model.Range) *AutoFilterBuilder {
	return &AutoFilterBuilder{rng: r}
}

// NewAutoFilterBuilder starts a standalone auto-filter over range r, for
// callers attaching a filter directly to a sheet rather than a table.
func NewAutoFilterBuilder(r model.Range) *AutoFilterBuilder {
	return newAutoFilterBuilder(r)
}

// SetColumn begins a flat match-value column at the given 0-based offset
// from the filter range's first column. A previously open flat column is
// implicitly committed.
func (b *AutoFilterBuilder) SetColumn(colOffset int) *AutoFilterBuilder {
	b.flushCurrent()
	b.curCol = colOffset
	b.curValues = nil
	b.haveCur = true
	return b
}

// AppendColumnMatchValue appends one match value to the column opened by
// the most recent SetColumn.
func (b *AutoFilterBuilder) AppendColumnMatchValue(value string) *AutoFilterBuilder {
	b.curValues = append(b.curValues, value)
	return b
}

// AppendColumnMatchValues appends several match values at once.
func (b *AutoFilterBuilder) AppendColumnMatchValues(values ...string) *AutoFilterBuilder {
	b.curValues = append(b.curValues, values...)
	return b
}

// CommitColumn finalizes the flat column opened by SetColumn.
func (b *AutoFilterBuilder) CommitColumn() *AutoFilterBuilder {
	b.flushCurrent()
	return b
}

func (b *AutoFilterBuilder) flushCurrent() {
	if !b.haveCur {
		return
	}
	b.columns = append(b.columns, FilterColumn{ColumnOffset: b.curCol, Values: b.curValues})
	b.haveCur = false
	b.curValues = nil
}

// StartColumn begins a nested boolean-rule-tree column at colOffset with
// root connector op, and returns the root node for item/child appends.
func (b *AutoFilterBuilder) StartColumn(colOffset int, op BoolOp) *RuleNode {
	b.flushCurrent()
	root := &RuleNode{Connector: op}
	b.columns = append(b.columns, FilterColumn{ColumnOffset: colOffset, Tree: root})
	return root
}

// commit materializes the buffered columns into an AutoFilter. Called
// internally by tables.Builder.Commit and by Commit below.
func (b *AutoFilterBuilder) commit() *AutoFilter {
	b.flushCurrent()
	return &AutoFilter{Range: b.rng, Columns: b.columns}
}

// Commit materializes a standalone (sheet-level, not table-embedded)
// auto-filter.
func (b *AutoFilterBuilder) Commit() *AutoFilter { return b.commit() }
