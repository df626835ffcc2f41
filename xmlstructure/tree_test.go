package xmlstructure_test

import (
	"testing"

	"github.com/go-orcus/orcus/xmlstructure"
)

const sampleDoc = `<?xml version="1.0"?>
<Workbook>
  <Sheet name="A">
    <Row>
      <Cell>1</Cell>
      <Cell>2</Cell>
    </Row>
    <Row>
      <Cell>3</Cell>
    </Row>
  </Sheet>
  <Sheet name="B">
    <Row><Cell>4</Cell></Row>
  </Sheet>
</Workbook>`

func TestScanBuildsRepeatFlags(t *testing.T) {
	tree, err := xmlstructure.Scan([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	w := xmlstructure.NewWalker(tree)
	children := w.ChildKeys()
	if len(children) != 1 || children[0].Local != "Workbook" {
		t.Fatalf("root children = %v, want [Workbook]", children)
	}
	if !w.Descend(children[0]) {
		t.Fatalf("Descend(Workbook) failed")
	}

	sheetKeys := w.ChildKeys()
	if len(sheetKeys) != 1 || sheetKeys[0].Local != "Sheet" {
		t.Fatalf("Workbook children = %v, want [Sheet]", sheetKeys)
	}
	if !w.Descend(sheetKeys[0]) {
		t.Fatalf("Descend(Sheet) failed")
	}
	if !w.Current().Repeat {
		t.Fatalf("Sheet.Repeat = false, want true (appears twice under Workbook)")
	}
	if got := w.Path(); got != "/Workbook/Sheet" {
		t.Fatalf("Path = %q, want /Workbook/Sheet", got)
	}

	rowKeys := w.ChildKeys()
	if len(rowKeys) != 1 || rowKeys[0].Local != "Row" {
		t.Fatalf("Sheet children = %v, want [Row]", rowKeys)
	}
	if !w.Descend(rowKeys[0]) {
		t.Fatalf("Descend(Row) failed")
	}
	if !w.Current().Repeat {
		t.Fatalf("Row.Repeat = false, want true (appears twice under one Sheet instance)")
	}

	cellKeys := w.ChildKeys()
	if len(cellKeys) != 1 || cellKeys[0].Local != "Cell" {
		t.Fatalf("Row children = %v, want [Cell]", cellKeys)
	}
	if !w.Descend(cellKeys[0]) {
		t.Fatalf("Descend(Cell) failed")
	}
	if !w.Current().Repeat {
		t.Fatalf("Cell.Repeat = false, want true (two Cells under the first Row)")
	}
	if !w.Current().HasContent {
		t.Fatalf("Cell.HasContent = false, want true")
	}
}

func TestScanAttributeNames(t *testing.T) {
	tree, err := xmlstructure.Scan([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	w := xmlstructure.NewWalker(tree)
	w.Descend(xmlstructure.ElementKey{NsID: xmlstructure.NoNamespace, Local: "Workbook"})
	w.Descend(xmlstructure.ElementKey{NsID: xmlstructure.NoNamespace, Local: "Sheet"})
	attrs := w.AttributeNames()
	if len(attrs) != 1 || attrs[0] != "name" {
		t.Fatalf("Sheet attributes = %v, want [name]", attrs)
	}
}

func TestMapperFindsRepeatingRanges(t *testing.T) {
	tree, err := xmlstructure.Scan([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	var paths []string
	mapper := xmlstructure.NewMapper(xmlstructure.RangeHandlerFunc(
		func(path string, key xmlstructure.ElementKey, info *xmlstructure.ElementInfo) {
			paths = append(paths, path)
		}))
	mapper.Map(tree)

	want := map[string]bool{
		"/Workbook/Sheet":            true,
		"/Workbook/Sheet/Row":        true,
		"/Workbook/Sheet/Row/Cell":   true,
	}
	if len(paths) != len(want) {
		t.Fatalf("found %d repeating ranges %v, want %d", len(paths), paths, len(want))
	}
	for _, p := range paths {
		if !want[p] {
			t.Fatalf("unexpected repeating range path %q", p)
		}
	}
}
