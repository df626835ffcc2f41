package styles

import "testing"

func TestFontPoolBuildAndLookup(t *testing.T) {
	pool := &FontPool{}
	idx := pool.NewBuilder().SetName("Calibri").SetSize(11).SetBold(true).Commit()
	f, ok := pool.Get(idx)
	if !ok {
		t.Fatalf("expected font at index %d", idx)
	}
	if f.Western.Name != "Calibri" || !f.Western.Bold {
		t.Fatalf("unexpected font %+v", f)
	}
}

func TestFillAndBorderPools(t *testing.T) {
	fills := &FillPool{}
	fi := fills.NewBuilder().SetPattern(FillSolid).SetForeground(Color{Red: 0xff}).Commit()
	if f, ok := fills.Get(fi); !ok || f.Pattern != FillSolid {
		t.Fatalf("unexpected fill %+v ok=%v", f, ok)
	}

	borders := &BorderPool{}
	bi := borders.NewBuilder().SetTop(BorderLine{Style: BorderStyleThin}).Commit()
	if b, ok := borders.Get(bi); !ok || b.Top.Style != BorderStyleThin {
		t.Fatalf("unexpected border %+v ok=%v", b, ok)
	}
}

func TestProtectionPoolCommit(t *testing.T) {
	protections := &ProtectionPool{}
	idx := protections.Commit(true, false)
	p, ok := protections.Get(idx)
	if !ok || !p.Locked || p.Hidden {
		t.Fatalf("unexpected protection %+v ok=%v", p, ok)
	}
}

func TestNumberFormatPoolBuiltinDefault(t *testing.T) {
	pool := NewNumberFormatPool()
	nf, ok := pool.Get(0)
	if !ok || nf.ResolvedFormatStr() != "General" {
		t.Fatalf("expected General default, got %+v ok=%v", nf, ok)
	}

	idx := pool.Commit(NumberFormat{ID: 164, FormatStr: "yyyy-mm-dd"})
	got, ok := pool.LookupByID(164)
	if !ok || got != idx {
		t.Fatalf("LookupByID mismatch: got=%d idx=%d ok=%v", got, idx, ok)
	}
	custom, _ := pool.Get(idx)
	if !custom.IsDate() {
		t.Fatalf("expected yyyy-mm-dd to be detected as a date format")
	}
}

func TestNumberFormatPoolBuiltinDateID(t *testing.T) {
	pool := NewNumberFormatPool()
	idx := pool.Commit(NumberFormat{ID: 14})
	nf, _ := pool.Get(idx)
	if !nf.IsDate() {
		t.Fatalf("built-in id 14 (mm-dd-yy) must report as a date format")
	}
}

func TestCellFormatPoolAndEffectiveNumberFormat(t *testing.T) {
	numFmts := NewNumberFormatPool()
	dateIdx := numFmts.Commit(NumberFormat{ID: 164, FormatStr: "yyyy-mm-dd"})

	cellStyleFormats := NewCellFormatPool()
	styleIdx := cellStyleFormats.NewBuilder().SetNumberFormat(dateIdx).Commit()

	cellFormats := NewCellFormatPool()
	plainIdx := cellFormats.NewBuilder().SetStyleXF(styleIdx).Commit()
	plain, _ := cellFormats.Get(plainIdx)

	got := EffectiveNumberFormatIndex(plain, cellStyleFormats)
	if got != dateIdx {
		t.Fatalf("expected inherited number format index %d, got %d", dateIdx, got)
	}

	overrideIdx := cellFormats.NewBuilder().SetStyleXF(styleIdx).SetNumberFormat(0).Commit()
	override, _ := cellFormats.Get(overrideIdx)
	override.NumberFormatIndex = 0
	if got := EffectiveNumberFormatIndex(override, cellStyleFormats); got != dateIdx {
		t.Fatalf("zero-value override should still fall back to inherited format, got %d", got)
	}
}

func TestNamedStylePoolLookupByName(t *testing.T) {
	cellStyleFormats := NewCellFormatPool()
	xf := cellStyleFormats.NewBuilder().Commit()

	styles := NewNamedStylePool()
	styles.NewBuilder("Normal", xf).SetBuiltinCode(0).Commit()
	styles.NewBuilder("Percent", xf).SetParent("Normal").Commit()

	s, ok := styles.Get("Percent")
	if !ok || s.ParentName != "Normal" {
		t.Fatalf("unexpected named style %+v ok=%v", s, ok)
	}
	if names := styles.Names(); len(names) != 2 || names[0] != "Normal" {
		t.Fatalf("unexpected name order %v", names)
	}
}

func TestIsBuiltInDateIDRanges(t *testing.T) {
	cases := map[int]bool{0: false, 9: false, 14: true, 22: true, 23: false, 27: true, 36: true, 45: true, 47: true, 49: false, 50: true, 58: true}
	for id, want := range cases {
		if got := IsBuiltInDateID(id); got != want {
			t.Fatalf("IsBuiltInDateID(%d) = %v, want %v", id, got, want)
		}
	}
}

func TestScanFormatStrDetectsDateTokens(t *testing.T) {
	if !ScanFormatStr("yyyy-mm-dd hh:mm:ss") {
		t.Fatalf("expected date/time tokens to be detected")
	}
	if ScanFormatStr("0.00%") {
		t.Fatalf("percentage format must not be detected as a date")
	}
	if ScanFormatStr("#,##0.00E+00") {
		t.Fatalf("scientific notation must not be mistaken for a date format")
	}
}
