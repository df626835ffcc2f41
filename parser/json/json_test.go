package json_test

import (
	"errors"
	"testing"

	"github.com/go-orcus/orcus/orcuserr"
	"github.com/go-orcus/orcus/parser/json"
)

type recordingHandler struct {
	json.DefaultHandler
	events []string
}

func (h *recordingHandler) BeginArray()           { h.events = append(h.events, "array(") }
func (h *recordingHandler) EndArray()             { h.events = append(h.events, ")array") }
func (h *recordingHandler) BeginObject()          { h.events = append(h.events, "obj(") }
func (h *recordingHandler) EndObject()            { h.events = append(h.events, ")obj") }
func (h *recordingHandler) ObjectKey(v []byte, _ bool) {
	h.events = append(h.events, "key:"+string(v))
}
func (h *recordingHandler) BooleanTrue()  { h.events = append(h.events, "true") }
func (h *recordingHandler) BooleanFalse() { h.events = append(h.events, "false") }
func (h *recordingHandler) Null()         { h.events = append(h.events, "null") }
func (h *recordingHandler) String(v []byte, _ bool) {
	h.events = append(h.events, "str:"+string(v))
}
func (h *recordingHandler) Number(v float64) {
	h.events = append(h.events, "num")
}

func TestJSONRootMustBeArrayOrObject(t *testing.T) {
	// Boundary scenario from spec.md §8.4.
	h := &recordingHandler{}
	p := json.New([]byte("42"), h)
	err := p.Parse()
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *orcuserr.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *orcuserr.ParseError, got %T", err)
	}
}

func TestJSONNestedArrayAndObject(t *testing.T) {
	h := &recordingHandler{}
	p := json.New([]byte(`{"a":[1,2,true,false,null,"x"]}`), h)
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"obj(", "key:a", "array(", "num", "num", "true", "false", "null", "str:x", ")array", ")obj"}
	if len(h.events) != len(want) {
		t.Fatalf("events = %v, want %v", h.events, want)
	}
	for i := range want {
		if h.events[i] != want[i] {
			t.Fatalf("event %d = %q, want %q", i, h.events[i], want[i])
		}
	}
}

func TestJSONTrailingCommaRejected(t *testing.T) {
	h := &recordingHandler{}
	p := json.New([]byte(`[1,2,]`), h)
	if err := p.Parse(); err == nil {
		t.Fatal("expected error for trailing comma")
	}
}

func TestJSONEscapedString(t *testing.T) {
	h := &recordingHandler{}
	p := json.New([]byte(`["a\"b\ncA"]`), h)
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := "a\"b\ncA"
	if len(h.events) != 3 || h.events[1] != "str:"+want {
		t.Fatalf("events = %v", h.events)
	}
}

func TestJSONEmptyArrayAndObject(t *testing.T) {
	h := &recordingHandler{}
	p := json.New([]byte(`[{},[]]`), h)
	if err := p.Parse(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"array(", "obj(", ")obj", "array(", ")array", ")array"}
	if len(h.events) != len(want) {
		t.Fatalf("events = %v, want %v", h.events, want)
	}
}

func TestJSONTrailingContentRejected(t *testing.T) {
	h := &recordingHandler{}
	p := json.New([]byte(`[1] junk`), h)
	if err := p.Parse(); err == nil {
		t.Fatal("expected error for trailing content")
	}
}
