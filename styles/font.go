package styles

// ScriptFont holds the name/size/bold/italic attributes for one script
// (western, asian, or complex) within a Font entry (spec.md §3).
type ScriptFont struct {
	Name   string
	Size   float64
	Bold   bool
	Italic bool
}

// Font is a flyweight font entry. Western attributes are the fallback
// used wherever asian/complex overrides are not set (spec.md §3).
type Font struct {
	Western ScriptFont
	Asian   ScriptFont
	Complex ScriptFont
	HasAsian   bool
	HasComplex bool
	Color      Color
	HasColor   bool
	Underline  bool
	Strikethrough bool
}

// Color is a simple ARGB color, matching model.Color's shape without
// importing the model package (styles is a lower-level pool that model
// types reference by index, not the reverse).
type Color struct {
	Alpha, Red, Green, Blue uint8
}

// FontBuilder accumulates a Font's fields before Commit.
type FontBuilder struct {
	pool *FontPool
	f    Font
}

// FontPool is the flyweight pool of Font entries.
type FontPool struct{ Pool[Font] }

// NewFontBuilder starts building a new font entry in pool.
func (p *FontPool) NewBuilder() *FontBuilder { return &FontBuilder{pool: p} }

func (b *FontBuilder) SetName(name string) *FontBuilder        { b.f.Western.Name = name; return b }
func (b *FontBuilder) SetSize(size float64) *FontBuilder        { b.f.Western.Size = size; return b }
func (b *FontBuilder) SetBold(v bool) *FontBuilder              { b.f.Western.Bold = v; return b }
func (b *FontBuilder) SetItalic(v bool) *FontBuilder            { b.f.Western.Italic = v; return b }
func (b *FontBuilder) SetUnderline(v bool) *FontBuilder         { b.f.Underline = v; return b }
func (b *FontBuilder) SetStrikethrough(v bool) *FontBuilder     { b.f.Strikethrough = v; return b }
func (b *FontBuilder) SetColor(c Color) *FontBuilder            { b.f.Color = c; b.f.HasColor = true; return b }
func (b *FontBuilder) SetAsian(sf ScriptFont) *FontBuilder      { b.f.Asian = sf; b.f.HasAsian = true; return b }
func (b *FontBuilder) SetComplex(sf ScriptFont) *FontBuilder    { b.f.Complex = sf; b.f.HasComplex = true; return b }

// Commit finalizes the font entry and returns its stable index.
func (b *FontBuilder) Commit() int { return b.pool.Commit(b.f) }
