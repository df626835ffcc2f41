package dump_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/go-orcus/orcus/cellstore"
	"github.com/go-orcus/orcus/dump"
	"github.com/go-orcus/orcus/factory"
)

func buildSampleWorkbook(t *testing.T) *factory.Orchestrator {
	t.Helper()
	orch := factory.New(factory.Config{
		SheetSize:  cellstore.Size{Rows: 100, Columns: 26},
		DateSystem: cellstore.System1900,
	}, nil, nil)

	sheet := orch.AppendSheet(0, "Sheet1")
	id := orch.GetSharedStrings().Add("hello")
	if err := sheet.SetString(0, 0, id); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	if err := sheet.SetValue(0, 1, 42); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if err := sheet.SetBool(1, 0, true); err != nil {
		t.Fatalf("SetBool: %v", err)
	}
	return orch
}

func TestWriteCheck(t *testing.T) {
	orch := buildSampleWorkbook(t)
	var buf bytes.Buffer
	if err := dump.WriteCheck(orch, false, &buf); err != nil {
		t.Fatalf("WriteCheck: %v", err)
	}
	got := buf.String()
	for _, want := range []string{"Sheet1/A1: string: hello", "Sheet1/B1: numeric:", "Sheet1/A2: boolean: TRUE"} {
		if !strings.Contains(got, want) {
			t.Fatalf("check dump missing %q, got:\n%s", want, got)
		}
	}
}

type memSink struct {
	buffers map[string]*bytes.Buffer
}

func newMemSink() *memSink { return &memSink{buffers: map[string]*bytes.Buffer{}} }

func (s *memSink) sink(name string) (io.Writer, error) {
	buf := &bytes.Buffer{}
	s.buffers[name] = buf
	return buf, nil
}

func TestWriteCSV(t *testing.T) {
	orch := buildSampleWorkbook(t)
	sink := newMemSink()
	if err := dump.WriteCSV(orch, false, 15, sink.sink); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out, ok := sink.buffers["Sheet1"]
	if !ok {
		t.Fatalf("no output for Sheet1")
	}
	if !strings.Contains(out.String(), "hello,42") {
		t.Fatalf("csv dump = %q, want it to contain \"hello,42\"", out.String())
	}
}

func TestWriteHTML(t *testing.T) {
	orch := buildSampleWorkbook(t)
	sink := newMemSink()
	if err := dump.WriteHTML(orch, false, sink.sink); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	out := sink.buffers["Sheet1"].String()
	if !strings.Contains(out, "<table>") || !strings.Contains(out, "<td>hello</td>") {
		t.Fatalf("html dump = %q, want a table containing hello", out)
	}
}

func TestWriteJSON(t *testing.T) {
	orch := buildSampleWorkbook(t)
	sink := newMemSink()
	if err := dump.WriteJSON(orch, false, sink.sink); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	out := sink.buffers["Sheet1"].String()
	if !strings.Contains(out, `"value": "hello"`) {
		t.Fatalf("json dump = %q, want a cell with value hello", out)
	}
}

func TestWriteFlat(t *testing.T) {
	orch := buildSampleWorkbook(t)
	sink := newMemSink()
	if err := dump.WriteFlat(orch, false, sink.sink); err != nil {
		t.Fatalf("WriteFlat: %v", err)
	}
	out := sink.buffers["Sheet1"].String()
	if !strings.Contains(out, "hello") {
		t.Fatalf("flat dump = %q, want it to contain hello", out)
	}
}
