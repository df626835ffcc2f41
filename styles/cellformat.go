package styles

import "github.com/mohae/deepcopy"

// HorizontalAlign and VerticalAlign enumerate cell alignment settings.
type HorizontalAlign int

const (
	HAlignGeneral HorizontalAlign = iota
	HAlignLeft
	HAlignCenter
	HAlignRight
	HAlignFill
	HAlignJustify
)

type VerticalAlign int

const (
	VAlignBottom VerticalAlign = iota
	VAlignTop
	VAlignCenter
	VAlignJustify
)

// Alignment is a cell format's alignment sub-structure.
type Alignment struct {
	Horizontal HorizontalAlign
	Vertical   VerticalAlign
	WrapText   bool
	ShrinkToFit bool
	Indent     int
	TextRotation int
}

// CellFormat is a flyweight cell-format (xf) entry: pool indices into
// the font/fill/border/protection/number-format pools, plus alignment,
// and an optional style-xf index pointing at a named cell style's base
// format (spec.md §3, §4.6).
type CellFormat struct {
	FontIndex       int
	FillIndex       int
	BorderIndex     int
	ProtectionIndex int
	NumberFormatIndex int
	Alignment       Alignment

	StyleXFIndex    int
	HasStyleXF      bool
}

// CellFormatPool is the flyweight pool of CellFormat entries. Two
// independent instances exist per spec.md §4.6: one for cell-style
// formats (referenced by named styles) and one for ordinary cell
// formats (referenced by cell positions); a third, DifferentialFormatPool,
// holds partial overrides for conditional formatting.
type CellFormatPool struct{ Pool[CellFormat] }

// NewCellFormatPool creates a pool with a zero-value default format
// pre-committed at index 0.
func NewCellFormatPool() *CellFormatPool {
	p := &CellFormatPool{}
	p.Commit(CellFormat{})
	return p
}

// CellFormatBuilder accumulates a CellFormat's fields before Commit.
type CellFormatBuilder struct {
	pool *CellFormatPool
	f    CellFormat
}

func (p *CellFormatPool) NewBuilder() *CellFormatBuilder { return &CellFormatBuilder{pool: p} }

// NewBuilderFrom starts a builder pre-populated with a deep copy of the
// committed entry at baseIdx, used when a named style's xf is cloned as
// the starting point for a new cell-format builder (spec.md §4.6's
// format layering): the clone is mutated independently, never aliasing
// the named style's base format.
func (p *CellFormatPool) NewBuilderFrom(baseIdx int) *CellFormatBuilder {
	base, ok := p.Get(baseIdx)
	if !ok {
		return p.NewBuilder()
	}
	cloned := deepcopy.Copy(base).(CellFormat)
	return &CellFormatBuilder{pool: p, f: cloned}
}

func (b *CellFormatBuilder) SetFont(idx int) *CellFormatBuilder         { b.f.FontIndex = idx; return b }
func (b *CellFormatBuilder) SetFill(idx int) *CellFormatBuilder         { b.f.FillIndex = idx; return b }
func (b *CellFormatBuilder) SetBorder(idx int) *CellFormatBuilder       { b.f.BorderIndex = idx; return b }
func (b *CellFormatBuilder) SetProtection(idx int) *CellFormatBuilder   { b.f.ProtectionIndex = idx; return b }
func (b *CellFormatBuilder) SetNumberFormat(idx int) *CellFormatBuilder { b.f.NumberFormatIndex = idx; return b }
func (b *CellFormatBuilder) SetAlignment(a Alignment) *CellFormatBuilder { b.f.Alignment = a; return b }
func (b *CellFormatBuilder) SetStyleXF(idx int) *CellFormatBuilder {
	b.f.StyleXFIndex = idx
	b.f.HasStyleXF = true
	return b
}

// Commit finalizes the cell format and returns its stable index.
func (b *CellFormatBuilder) Commit() int { return b.pool.Commit(b.f) }

// DifferentialFormat is a partial cell-format layered on top of a base
// format for conditional formatting (spec.md §4.6 glossary "dxf"); every
// field is optional, so overrides are tracked with Has* flags instead of
// zero-value ambiguity.
type DifferentialFormat struct {
	FontIndex         int
	HasFont           bool
	FillIndex         int
	HasFill           bool
	BorderIndex       int
	HasBorder         bool
	NumberFormatIndex int
	HasNumberFormat   bool
}

// DifferentialFormatPool is the third cell-format table: differential
// formats layered on top of base formats for conditional formatting.
type DifferentialFormatPool struct{ Pool[DifferentialFormat] }

// NamedStyle is a named cell-format entry referenced by name from cells
// or other named styles (spec.md §4.6 glossary). Unlike the other
// substructures, a named style is not referenced by index from Commit;
// it is looked up by name.
type NamedStyle struct {
	Name        string
	DisplayName string
	HasDisplayName bool
	ParentName  string
	HasParent   bool
	XFIndex     int
	BuiltinCode int
	HasBuiltinCode bool
}

// NamedStylePool stores NamedStyle entries by name.
type NamedStylePool struct {
	byName map[string]NamedStyle
	order  []string
}

// NewNamedStylePool creates an empty pool.
func NewNamedStylePool() *NamedStylePool {
	return &NamedStylePool{byName: make(map[string]NamedStyle)}
}

// NamedStyleBuilder accumulates a NamedStyle's fields before Commit.
type NamedStyleBuilder struct {
	pool *NamedStylePool
	s    NamedStyle
}

func (p *NamedStylePool) NewBuilder(name string, xfIndex int) *NamedStyleBuilder {
	return &NamedStyleBuilder{pool: p, s: NamedStyle{Name: name, XFIndex: xfIndex}}
}

func (b *NamedStyleBuilder) SetDisplayName(name string) *NamedStyleBuilder {
	b.s.DisplayName = name
	b.s.HasDisplayName = true
	return b
}

func (b *NamedStyleBuilder) SetParent(name string) *NamedStyleBuilder {
	b.s.ParentName = name
	b.s.HasParent = true
	return b
}

func (b *NamedStyleBuilder) SetBuiltinCode(code int) *NamedStyleBuilder {
	b.s.BuiltinCode = code
	b.s.HasBuiltinCode = true
	return b
}

// Commit stores the named style. A name committed more than once
// replaces the earlier entry (named styles have no documented
// reject-duplicate rule, unlike tables in spec.md §4.7).
func (b *NamedStyleBuilder) Commit() {
	if _, exists := b.pool.byName[b.s.Name]; !exists {
		b.pool.order = append(b.pool.order, b.s.Name)
	}
	b.pool.byName[b.s.Name] = b.s
}

// Get returns the named style for name.
func (p *NamedStylePool) Get(name string) (NamedStyle, bool) {
	s, ok := p.byName[name]
	return s, ok
}

// Names returns every named style's name in commit order.
func (p *NamedStylePool) Names() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// EffectiveNumberFormatIndex computes a cell's effective number-format
// pool index by layering, in order, the cell-style format it inherits
// via style_xf, then the cell format's own overriding field (spec.md
// §4.6's "effective format" layering rule). cellStyleFormats is the
// cell-style-format table referenced by named styles' xf field.
func EffectiveNumberFormatIndex(cf CellFormat, cellStyleFormats *CellFormatPool) int {
	if cf.NumberFormatIndex != 0 {
		return cf.NumberFormatIndex
	}
	if cf.HasStyleXF && cellStyleFormats != nil {
		if base, ok := cellStyleFormats.Get(cf.StyleXFIndex); ok {
			return base.NumberFormatIndex
		}
	}
	return cf.NumberFormatIndex
}
