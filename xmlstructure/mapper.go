package xmlstructure

// RangeHandler receives one callback per repeating subtree a Mapper
// finds, identified by the path at which it was found (spec.md §4.14:
// "emits ranges to a caller-supplied handler for every repeating
// subtree").
type RangeHandler interface {
	OnRepeatingRange(path string, key ElementKey, info *ElementInfo)
}

// RangeHandlerFunc adapts a plain function to RangeHandler.
type RangeHandlerFunc func(path string, key ElementKey, info *ElementInfo)

func (f RangeHandlerFunc) OnRepeatingRange(path string, key ElementKey, info *ElementInfo) {
	f(path, key, info)
}

// Mapper traverses a Tree via a Walker and reports every repeating
// subtree it finds to a RangeHandler, descending into every child
// (repeating or not) so nested repeating ranges are also found.
type Mapper struct {
	handler RangeHandler
}

// NewMapper creates a Mapper that reports to handler.
func NewMapper(handler RangeHandler) *Mapper {
	return &Mapper{handler: handler}
}

// Map walks t from its root, in first-seen child order, invoking the
// handler for every element whose Repeat flag is set.
func (m *Mapper) Map(t *Tree) {
	w := NewWalker(t)
	m.walk(w)
}

func (m *Mapper) walk(w *Walker) {
	for _, key := range w.ChildKeys() {
		if !w.Descend(key) {
			continue
		}
		if w.Current().Repeat {
			m.handler.OnRepeatingRange(w.Path(), key, w.Current())
		}
		m.walk(w)
		w.Ascend()
	}
}
