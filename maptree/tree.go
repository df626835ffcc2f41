package maptree

import (
	"fmt"

	"github.com/go-orcus/orcus/model"
)

// NodeKind tags what a tree node is linked to, mirroring the JSON/XML
// structural shape leading to it.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindArray
	KindObject
	KindCellRef
	KindRangeFieldRef
)

// InputKind tags a structural event coming off the parser's event
// stream: array/object container open-close, or a scalar value.
type InputKind int

const (
	InputArray InputKind = iota
	InputObject
	InputValue
)

func isEquivalent(input InputKind, node NodeKind) bool {
	switch input {
	case InputArray:
		return node == KindArray
	case InputObject:
		return node == KindObject
	case InputValue:
		return node == KindCellRef || node == KindRangeFieldRef
	default:
		return false
	}
}

// CellLink is a single-cell destination.
type CellLink struct {
	Pos model.Address
}

// RangeRef is one committed range: its anchor position, whether its
// first row is a header row, the fields (columns) linked into it, and
// a row counter (RowPosition). Nothing in this package advances
// RowPosition.
type RangeRef struct {
	Pos         model.Address
	RowHeader   bool
	Fields      []*RangeFieldLink
	RowPosition int32
}

// RangeFieldLink is one column within a RangeRef.
type RangeFieldLink struct {
	ColumnPos int32
	Label     string
	Ref       *RangeRef
}

// Node is one node of the map tree. Exactly one of CellRef/RangeField
// is populated, selected by Kind; RowGroup is set independently on any
// interior node designated a row boundary.
type Node struct {
	Kind NodeKind

	arrayChildren  map[int]*Node
	objectChildren map[string]*Node

	CellRef    *CellLink
	RangeField *RangeFieldLink

	// RowGroup is non-nil when this node's repetition marks a row
	// boundary for RowGroup's range.
	RowGroup *RangeRef
	// AnchoredFields are the range fields anchored to this node as
	// their nearest ancestor row-group.
	AnchoredFields []*Node
}

func (n *Node) getOrCreateArrayChild(pos int) *Node {
	if n.arrayChildren == nil {
		n.arrayChildren = make(map[int]*Node)
	}
	child, ok := n.arrayChildren[pos]
	if !ok {
		child = &Node{}
		n.arrayChildren[pos] = child
	}
	return child
}

func (n *Node) getOrCreateObjectChild(key string) *Node {
	if n.objectChildren == nil {
		n.objectChildren = make(map[string]*Node)
	}
	child, ok := n.objectChildren[key]
	if !ok {
		child = &Node{}
		n.objectChildren[key] = child
	}
	return child
}

// Tree is the path-directed map tree.
type Tree struct {
	root *Node

	currentRange rangeBuilder
}

type rangeField struct {
	path  string
	label string
}

type rangeBuilder struct {
	pos       model.Address
	rowHeader bool
	fields    []rangeField
	rowGroups []string
}

// NewTree creates an empty map tree.
func NewTree() *Tree { return &Tree{} }

// destination is the stack of nodes walked while creating or looking
// up a path, plus the trailing object key (used to label unlabeled
// range fields after the field's own key).
type destination struct {
	stack   []*Node
	destKey string
}

func (t *Tree) walkPath(path string, create bool) (destination, error) {
	tokens, err := parsePath(path)
	if err != nil {
		return destination{}, err
	}

	var dest destination
	if len(tokens) == 0 {
		return dest, nil
	}

	cur := t.root
	if cur == nil {
		if !create {
			return destination{}, nil
		}
		t.root = &Node{}
		cur = t.root
	}

	for i, tok := range tokens {
		switch tok.kind {
		case tokenArrayPos, tokenAnyPos:
			if cur.Kind == KindUnknown {
				cur.Kind = KindArray
			} else if cur.Kind != KindArray {
				return destination{}, fmt.Errorf("maptree: path %q expects an array at segment %d", path, i)
			}
			pos := tok.pos
			if tok.kind == tokenAnyPos {
				pos = AnyPosition
			}
			if create {
				cur = cur.getOrCreateArrayChild(pos)
			} else {
				child, ok := cur.arrayChildren[pos]
				if !ok {
					return destination{}, nil
				}
				cur = child
			}
			dest.destKey = ""
		case tokenObjectKey:
			if cur.Kind == KindUnknown {
				cur.Kind = KindObject
			} else if cur.Kind != KindObject {
				return destination{}, fmt.Errorf("maptree: path %q expects an object at segment %d", path, i)
			}
			if create {
				cur = cur.getOrCreateObjectChild(tok.key)
			} else {
				child, ok := cur.objectChildren[tok.key]
				if !ok {
					return destination{}, nil
				}
				cur = child
			}
			dest.destKey = tok.key
		}
		dest.stack = append(dest.stack, cur)
	}
	return dest, nil
}

// SetCellLink links path to a single destination cell. Linking a path
// twice is an error.
func (t *Tree) SetCellLink(path string, pos model.Address) error {
	dest, err := t.walkPath(path, true)
	if err != nil {
		return err
	}
	if len(dest.stack) == 0 {
		return fmt.Errorf("maptree: empty path cannot be linked")
	}
	n := dest.stack[len(dest.stack)-1]
	if n.Kind != KindUnknown {
		return fmt.Errorf("maptree: path %q is not linkable", path)
	}
	n.Kind = KindCellRef
	n.CellRef = &CellLink{Pos: pos}
	return nil
}

// GetLink returns the node linked at path, if any.
func (t *Tree) GetLink(path string) (*Node, bool) {
	dest, err := t.walkPath(path, false)
	if err != nil || len(dest.stack) == 0 {
		return nil, false
	}
	n := dest.stack[len(dest.stack)-1]
	if n.Kind == KindUnknown {
		return nil, false
	}
	return n, true
}

// StartRange begins building a new range anchored at pos. Call
// AppendFieldLink/SetRowGroup any number of times, then CommitRange.
func (t *Tree) StartRange(pos model.Address, rowHeader bool) {
	t.currentRange = rangeBuilder{pos: pos, rowHeader: rowHeader}
}

// AppendFieldLink buffers one column of the range under construction.
// An empty label defers labeling to CommitRange (the field's object
// key, or a positional "field N" label for array-anchored fields).
func (t *Tree) AppendFieldLink(path, label string) {
	t.currentRange.fields = append(t.currentRange.fields, rangeField{path: path, label: label})
}

// SetRowGroup marks path as the row-group boundary for the range under
// construction.
func (t *Tree) SetRowGroup(path string) {
	t.currentRange.rowGroups = append(t.currentRange.rowGroups, path)
}

// CommitRange finalizes the range under construction: links every
// row-group path's node to the range, links every field path to a
// RangeFieldLink column in source order, and anchors each field to the
// nearest ancestor row-group node found while walking its path.
func (t *Tree) CommitRange() (*RangeRef, error) {
	ref := &RangeRef{Pos: t.currentRange.pos, RowHeader: t.currentRange.rowHeader}

	for _, path := range t.currentRange.rowGroups {
		dest, err := t.walkPath(path, true)
		if err != nil {
			return nil, err
		}
		if len(dest.stack) == 0 {
			return nil, fmt.Errorf("maptree: failed to link row-group path %q", path)
		}
		dest.stack[len(dest.stack)-1].RowGroup = ref
	}

	unlabeled := 0
	for colPos, field := range t.currentRange.fields {
		dest, err := t.walkPath(field.path, true)
		if err != nil {
			return nil, err
		}
		if len(dest.stack) == 0 {
			return nil, fmt.Errorf("maptree: failed to link field path %q", field.path)
		}
		n := dest.stack[len(dest.stack)-1]
		if n.Kind != KindUnknown {
			return nil, fmt.Errorf("maptree: field path %q is not linkable", field.path)
		}

		link := &RangeFieldLink{ColumnPos: int32(colPos), Ref: ref}
		switch {
		case field.label != "":
			link.Label = field.label
		case dest.destKey == "":
			link.Label = fmt.Sprintf("field %d", unlabeled)
			unlabeled++
		default:
			link.Label = dest.destKey
		}

		n.Kind = KindRangeFieldRef
		n.RangeField = link
		ref.Fields = append(ref.Fields, link)

		for i := len(dest.stack) - 1; i >= 0; i-- {
			if anchor := dest.stack[i]; anchor.RowGroup != nil {
				anchor.AnchoredFields = append(anchor.AnchoredFields, n)
				break
			}
		}
	}

	return ref, nil
}
