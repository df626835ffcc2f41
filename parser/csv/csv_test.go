package csv_test

import (
	"errors"
	"testing"

	"github.com/go-orcus/orcus/orcuserr"
	"github.com/go-orcus/orcus/parser/csv"
)

type recordingHandler struct {
	csv.DefaultHandler
	rows        [][]string
	transient   []bool
	cur         []string
	curTrans    []bool
	beginParse  int
	endParse    int
}

func (h *recordingHandler) BeginParse() { h.beginParse++ }
func (h *recordingHandler) EndParse()   { h.endParse++ }
func (h *recordingHandler) BeginRow()   { h.cur = nil; h.curTrans = nil }
func (h *recordingHandler) EndRow() {
	h.rows = append(h.rows, h.cur)
	h.transient = append(h.transient, anyTrue(h.curTrans))
}
func (h *recordingHandler) Cell(v []byte, transient bool) {
	h.cur = append(h.cur, string(v))
	h.curTrans = append(h.curTrans, transient)
}

func anyTrue(bs []bool) bool {
	for _, b := range bs {
		if b {
			return true
		}
	}
	return false
}

func TestCSVQuotedAndDoubledField(t *testing.T) {
	// Boundary scenario from spec.md §8.1.
	h := &recordingHandler{}
	p := csv.New([]byte(`a,"b""c",d`+"\n"), h, csv.DefaultConfig())
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(h.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(h.rows))
	}
	want := []string{"a", `b"c`, "d"}
	got := h.rows[0]
	if len(got) != len(want) {
		t.Fatalf("cells = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d = %q, want %q", i, got[i], want[i])
		}
	}
	if !h.curTrans[1] {
		t.Fatalf("middle cell should be transient")
	}
}

func TestCSVPrematureEndInQuotedField(t *testing.T) {
	// Boundary scenario from spec.md §8.2.
	h := &recordingHandler{}
	p := csv.New([]byte(`a,"unterminated`), h, csv.DefaultConfig())
	err := p.Parse()
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *orcuserr.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *orcuserr.ParseError, got %T", err)
	}
	if pe.Offset != 15 {
		t.Fatalf("offset = %d, want 15", pe.Offset)
	}
}

func TestCSVTrimCellValue(t *testing.T) {
	h := &recordingHandler{}
	cfg := csv.DefaultConfig()
	cfg.TrimCellValue = true
	p := csv.New([]byte(" a , b ,c\n"), h, cfg)
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if h.rows[0][i] != w {
			t.Fatalf("cell %d = %q, want %q", i, h.rows[0][i], w)
		}
	}
}

func TestCSVMultipleDelimiters(t *testing.T) {
	h := &recordingHandler{}
	cfg := csv.Config{Delimiters: ",;", TextQualifier: '"'}
	p := csv.New([]byte("a,b;c\n"), h, cfg)
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if h.rows[0][i] != w {
			t.Fatalf("cell %d = %q, want %q", i, h.rows[0][i], w)
		}
	}
}

func TestCSVStreamEndingMidRow(t *testing.T) {
	h := &recordingHandler{}
	p := csv.New([]byte("a,b,c"), h, csv.DefaultConfig())
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(h.rows) != 1 || len(h.rows[0]) != 3 {
		t.Fatalf("rows = %v", h.rows)
	}
	if h.endParse != 1 || h.beginParse != 1 {
		t.Fatalf("begin/end parse counts wrong")
	}
}
