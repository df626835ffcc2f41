package styles

// FillPattern enumerates the supported fill pattern kinds.
type FillPattern int

const (
	FillNone FillPattern = iota
	FillSolid
	FillPatterned
)

// Fill is a flyweight fill entry: a pattern plus foreground/background
// colors.
type Fill struct {
	Pattern    FillPattern
	Foreground Color
	Background Color
}

// FillPool is the flyweight pool of Fill entries.
type FillPool struct{ Pool[Fill] }

// FillBuilder accumulates a Fill's fields before Commit.
type FillBuilder struct {
	pool *FillPool
	f    Fill
}

func (p *FillPool) NewBuilder() *FillBuilder { return &FillBuilder{pool: p} }

func (b *FillBuilder) SetPattern(p FillPattern) *FillBuilder     { b.f.Pattern = p; return b }
func (b *FillBuilder) SetForeground(c Color) *FillBuilder       { b.f.Foreground = c; return b }
func (b *FillBuilder) SetBackground(c Color) *FillBuilder       { b.f.Background = c; return b }

func (b *FillBuilder) Commit() int { return b.pool.Commit(b.f) }

// BorderStyle enumerates line styles for one border side.
type BorderStyle int

const (
	BorderStyleNone BorderStyle = iota
	BorderStyleThin
	BorderStyleMedium
	BorderStyleThick
	BorderStyleDashed
	BorderStyleDotted
	BorderStyleDouble
)

// BorderLine is one side of a Border entry.
type BorderLine struct {
	Style BorderStyle
	Color Color
}

// Border is a flyweight border entry with one line per side plus the two
// diagonal lines.
type Border struct {
	Top, Bottom, Left, Right BorderLine
	DiagonalUp, DiagonalDown BorderLine
	HasDiagonalUp, HasDiagonalDown bool
}

// BorderPool is the flyweight pool of Border entries.
type BorderPool struct{ Pool[Border] }

// BorderBuilder accumulates a Border's fields before Commit.
type BorderBuilder struct {
	pool *BorderPool
	b    Border
}

func (p *BorderPool) NewBuilder() *BorderBuilder { return &BorderBuilder{pool: p} }

func (b *BorderBuilder) SetTop(l BorderLine) *BorderBuilder    { b.b.Top = l; return b }
func (b *BorderBuilder) SetBottom(l BorderLine) *BorderBuilder { b.b.Bottom = l; return b }
func (b *BorderBuilder) SetLeft(l BorderLine) *BorderBuilder   { b.b.Left = l; return b }
func (b *BorderBuilder) SetRight(l BorderLine) *BorderBuilder  { b.b.Right = l; return b }
func (b *BorderBuilder) SetDiagonalUp(l BorderLine) *BorderBuilder {
	b.b.DiagonalUp = l
	b.b.HasDiagonalUp = true
	return b
}
func (b *BorderBuilder) SetDiagonalDown(l BorderLine) *BorderBuilder {
	b.b.DiagonalDown = l
	b.b.HasDiagonalDown = true
	return b
}

func (b *BorderBuilder) Commit() int { return b.pool.Commit(b.b) }

// Protection is a flyweight protection entry: a cell's locked/hidden
// attributes for sheet protection.
type Protection struct {
	Locked bool
	Hidden bool
}

// ProtectionPool is the flyweight pool of Protection entries.
type ProtectionPool struct{ Pool[Protection] }

func (p *ProtectionPool) Commit(locked, hidden bool) int {
	return p.Pool.Commit(Protection{Locked: locked, Hidden: hidden})
}
