package styles

// Pools bundles every flyweight substructure spec.md §4.6 names into the
// one accessor the import orchestrator exposes via get_styles: fonts,
// fills, borders, protection settings, number formats, the two
// independent cell-format tables (cell-style formats referenced by named
// styles, and ordinary cell formats referenced by cell positions), the
// differential-format table used by conditional formatting, and named
// styles. NewPools pre-commits index 0 of every pool so "the first
// committed entry in every substructure is the default" (spec.md §4.6)
// holds before any caller-driven commit happens.
type Pools struct {
	Fonts       *FontPool
	Fills       *FillPool
	Borders     *BorderPool
	Protections *ProtectionPool
	NumberFmts  *NumberFormatPool
	// CellStyleFormats is referenced by NamedStyles' xf field.
	CellStyleFormats *CellFormatPool
	// CellFormats is referenced by cell positions via per-sheet
	// row/column/cell format indices.
	CellFormats *CellFormatPool
	Differential *DifferentialFormatPool
	NamedStyles  *NamedStylePool
}

// NewPools builds an empty Pools with every substructure's default
// (index 0) entry already committed.
func NewPools() *Pools {
	p := &Pools{
		Fonts:            &FontPool{},
		Fills:            &FillPool{},
		Borders:          &BorderPool{},
		Protections:      &ProtectionPool{},
		NumberFmts:       NewNumberFormatPool(),
		CellStyleFormats: NewCellFormatPool(),
		CellFormats:      NewCellFormatPool(),
		Differential:     &DifferentialFormatPool{},
		NamedStyles:      NewNamedStylePool(),
	}
	p.Fonts.NewBuilder().Commit()
	p.Fills.NewBuilder().Commit()
	p.Borders.NewBuilder().Commit()
	p.Protections.Commit(false, false)
	p.Differential.Commit(DifferentialFormat{})
	return p
}

// EffectiveNumberFormatIndex resolves the number-format pool index a
// cell format at cellFormatIdx ultimately renders with, layering the
// cell-style format it inherits (via style_xf) beneath its own
// overriding number-format index, per spec.md §4.6's "a cell's
// effective format is computed by layering" rule.
func (p *Pools) EffectiveNumberFormatIndex(cellFormatIdx int) int {
	cf, ok := p.CellFormats.Get(cellFormatIdx)
	if !ok {
		return 0
	}
	return EffectiveNumberFormatIndex(cf, p.CellStyleFormats)
}
