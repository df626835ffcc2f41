package xmlstructure

import "strings"

// Walker navigates a scanned Tree: descend into a named child, ascend
// back to the parent, stringify the current path, and enumerate the
// current element's children and attribute names (spec.md §4.14).
type Walker struct {
	path []*ElementInfo
	keys []ElementKey
}

// NewWalker returns a Walker positioned at t's synthetic root.
func NewWalker(t *Tree) *Walker {
	return &Walker{path: []*ElementInfo{t.root}, keys: []ElementKey{t.root.Key}}
}

// Current returns the ElementInfo the walker is positioned at.
func (w *Walker) Current() *ElementInfo { return w.path[len(w.path)-1] }

// Descend moves the walker into the named child of the current
// element, returning false (leaving the walker's position unchanged)
// if no such child was ever observed.
func (w *Walker) Descend(key ElementKey) bool {
	child, ok := w.Current().Child(key)
	if !ok {
		return false
	}
	w.path = append(w.path, child)
	w.keys = append(w.keys, key)
	return true
}

// Ascend moves the walker back to the current element's parent. It is
// a no-op at the root.
func (w *Walker) Ascend() {
	if len(w.path) <= 1 {
		return
	}
	w.path = w.path[:len(w.path)-1]
	w.keys = w.keys[:len(w.keys)-1]
}

// Depth returns how many Descend calls separate the walker from the
// tree's root (0 at the root).
func (w *Walker) Depth() int { return len(w.path) - 1 }

// Path renders the walker's current position as a "/"-joined string of
// element keys from the root (exclusive) to the current element
// (inclusive), with a leading "/", e.g. "/Workbook/Sheet/Row". At the
// root it returns "/".
func (w *Walker) Path() string {
	if len(w.keys) <= 1 {
		return "/"
	}
	parts := make([]string, 0, len(w.keys)-1)
	for _, k := range w.keys[1:] {
		parts = append(parts, k.String())
	}
	return "/" + strings.Join(parts, "/")
}

// ChildKeys returns the current element's child keys in first-seen
// order.
func (w *Walker) ChildKeys() []ElementKey { return w.Current().Children() }

// AttributeNames returns the current element's observed attribute
// names in first-seen order.
func (w *Walker) AttributeNames() []string { return w.Current().Attributes() }
