// Package stringpool implements the process-lifetime string interning
// store described in spec.md §4.3: every distinct string seen by the
// import pipeline is stored exactly once, and every later reference to
// the same content is a pointer comparison away from being recognized
// as a repeat.
package stringpool

import (
	"sort"
	"strings"
)

// Pool interns strings for the lifetime of an import. It is not safe for
// concurrent use; callers running parsers on separate goroutines should
// give each its own Pool and Merge the results in.
type Pool struct {
	strings map[string]string
}

// New creates an empty Pool.
func New() *Pool {
	return &Pool{strings: make(map[string]string)}
}

// Intern returns the pool's single canonical copy of s, allocating and
// storing a copy on first sight. The returned bool is true when s was not
// already present. The input s may alias a transient scanner buffer; the
// pool never retains the caller's backing array, only its own copy.
func (p *Pool) Intern(s string) (string, bool) {
	if existing, ok := p.strings[s]; ok {
		return existing, false
	}
	// Copy s so the pool never aliases caller-owned (possibly reused)
	// storage; strings.Clone always makes a fresh copy.
	owned := strings.Clone(s)
	p.strings[owned] = owned
	return owned, true
}

// InternBytes is a convenience wrapper for callers holding a []byte
// (typically a parser's scratch buffer or a transient slice of its input)
// that avoids a throwaway allocation when the bytes are already present.
func (p *Pool) InternBytes(b []byte) (string, bool) {
	if existing, ok := p.strings[string(b)]; ok {
		return existing, false
	}
	s := string(b)
	p.strings[s] = s
	return s, true
}

// Size returns the number of distinct interned strings.
func (p *Pool) Size() int {
	return len(p.strings)
}

// Clear removes every interned string.
func (p *Pool) Clear() {
	p.strings = make(map[string]string)
}

// InternedStrings returns every interned string in sorted order.
func (p *Pool) InternedStrings() []string {
	out := make([]string, 0, len(p.strings))
	for s := range p.strings {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Merge moves every string from other into p without invalidating any
// string value already returned by other.Intern — since strings are
// immutable values in Go, a string obtained from other remains valid
// forever regardless of what happens to other afterward. other is left
// empty.
func (p *Pool) Merge(other *Pool) {
	for s := range other.strings {
		if _, ok := p.strings[s]; !ok {
			p.strings[s] = s
		}
	}
	other.Clear()
}
