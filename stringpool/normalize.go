package stringpool

import "golang.org/x/text/unicode/norm"

// NormalizingPool wraps a Pool so every interned string is first put into
// Unicode NFC form. Format drivers that need canonical-equivalence
// comparisons across composed/decomposed input (some XML and CSV sources
// mix both) opt into this at construction time; the bare Pool leaves
// interned bytes untouched, per spec.md §8's pooling invariant.
type NormalizingPool struct {
	*Pool
}

// NewNormalizing creates a NormalizingPool backed by a fresh Pool.
func NewNormalizing() *NormalizingPool {
	return &NormalizingPool{Pool: New()}
}

// Intern normalizes s to NFC before interning it.
func (p *NormalizingPool) Intern(s string) (string, bool) {
	return p.Pool.Intern(norm.NFC.String(s))
}

// InternBytes normalizes b to NFC before interning it.
func (p *NormalizingPool) InternBytes(b []byte) (string, bool) {
	return p.Pool.Intern(norm.NFC.String(string(b)))
}
