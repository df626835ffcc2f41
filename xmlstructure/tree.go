// Package xmlstructure implements the structure-tree scanner described
// in spec.md §4.14: a single pass over an XML document builds a tree of
// (namespace, local-name) -> element-properties, which a Walker then
// navigates and a Mapper traverses to locate repeating subtrees.
package xmlstructure

import (
	"fmt"
	"strings"

	parserxml "github.com/go-orcus/orcus/parser/xml"
)

// NoNamespace marks an ElementKey with no namespace in scope, mirroring
// parser/xml's NamespaceNone for callers that construct keys directly
// (e.g. to call Walker.Descend for an unprefixed element).
const NoNamespace = parserxml.NamespaceNone

// ElementKey identifies an element type by its resolved namespace and
// local name, the same granularity spec.md §4.14 names: "a tree of
// (namespace, local-name) -> element-properties".
type ElementKey struct {
	NsID  parserxml.NamespaceID
	Local string
}

// ElementInfo is the per-element-type record the scanner accumulates:
// every child element type ever seen under it (keyed by ElementKey),
// the order those children were first encountered in, every attribute
// name ever seen on it, whether it was ever repeated under the same
// parent instance, and whether it ever carried non-whitespace character
// content.
type ElementInfo struct {
	Key ElementKey

	children     map[ElementKey]*ElementInfo
	childOrder   []ElementKey
	attrs        map[string]bool
	attrOrder    []string

	// Repeat is true if this element appeared more than once under the
	// same parent during any single scope (spec.md §4.14).
	Repeat bool
	// HasContent is true if this element was ever observed to directly
	// hold non-whitespace character data.
	HasContent bool
}

func newElementInfo(key ElementKey) *ElementInfo {
	return &ElementInfo{Key: key, children: map[ElementKey]*ElementInfo{}, attrs: map[string]bool{}}
}

// Children returns this element's child element keys in first-seen
// order.
func (e *ElementInfo) Children() []ElementKey { return e.childOrder }

// Child returns the ElementInfo for a previously seen child key.
func (e *ElementInfo) Child(key ElementKey) (*ElementInfo, bool) {
	c, ok := e.children[key]
	return c, ok
}

// Attributes returns every attribute name ever seen on this element, in
// first-seen order.
func (e *ElementInfo) Attributes() []string { return e.attrOrder }

// Tree is the result of one structure scan: a synthetic root whose
// single child is the document's actual root element.
type Tree struct {
	root *ElementInfo
}

// Root returns the tree's synthetic root node (its Children() holds
// exactly the document's root element, normally one entry).
func (t *Tree) Root() *ElementInfo { return t.root }

type scanHandler struct {
	parserxml.DefaultHandler

	nsCtx *parserxml.MapNamespaceContext

	root  *ElementInfo
	stack []*ElementInfo
	// counts[i] tracks, per-key, how many times a child element type has
	// been seen so far within the current instance of stack[i].
	counts []map[ElementKey]int

	textBuf []byte
}

func newScanHandler() *scanHandler {
	root := newElementInfo(ElementKey{NsID: parserxml.NamespaceNone, Local: ""})
	nsCtx := parserxml.NewMapNamespaceContext(nil)
	return &scanHandler{
		nsCtx:  nsCtx,
		root:   root,
		stack:  []*ElementInfo{root},
		counts: []map[ElementKey]int{{}},
	}
}

func (h *scanHandler) BeginElement(nsID parserxml.NamespaceID, name string, attrs []parserxml.Attribute) {
	parent := h.stack[len(h.stack)-1]
	key := ElementKey{NsID: nsID, Local: name}

	child, ok := parent.children[key]
	if !ok {
		child = newElementInfo(key)
		parent.children[key] = child
		parent.childOrder = append(parent.childOrder, key)
	}
	for _, a := range attrs {
		if !child.attrs[a.Name] {
			child.attrs[a.Name] = true
			child.attrOrder = append(child.attrOrder, a.Name)
		}
	}

	frame := h.counts[len(h.counts)-1]
	frame[key]++
	if frame[key] > 1 {
		child.Repeat = true
	}

	h.stack = append(h.stack, child)
	h.counts = append(h.counts, map[ElementKey]int{})
}

func (h *scanHandler) EndElement(parserxml.NamespaceID, string) {
	if len(h.stack) <= 1 {
		return
	}
	h.stack = h.stack[:len(h.stack)-1]
	h.counts = h.counts[:len(h.counts)-1]
}

func (h *scanHandler) Characters(value []byte, _ bool) {
	if len(strings.TrimSpace(string(value))) == 0 {
		return
	}
	cur := h.stack[len(h.stack)-1]
	cur.HasContent = true
}

// Scan performs the single-pass structure scan spec.md §4.14 describes
// over an XML document, using parser/xml's event-driven parser.
func Scan(content []byte) (*Tree, error) {
	h := newScanHandler()
	p, err := parserxml.New(content, h, h.nsCtx)
	if err != nil {
		return nil, err
	}
	if err := p.Parse(); err != nil {
		return nil, err
	}
	return &Tree{root: h.root}, nil
}

// String renders an ElementKey for diagnostics as "nsID:local" (or bare
// "local" when unnamespaced), matching the compact form a Walker's
// Path() joins with "/".
func (k ElementKey) String() string {
	if k.NsID == parserxml.NamespaceNone {
		return k.Local
	}
	return fmt.Sprintf("%d:%s", k.NsID, k.Local)
}
