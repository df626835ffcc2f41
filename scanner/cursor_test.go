package scanner_test

import (
	"testing"

	"github.com/go-orcus/orcus/scanner"
)

func TestCursorBasics(t *testing.T) {
	c := scanner.New([]byte("ab\ncd"))
	if !c.HasRemaining() {
		t.Fatal("expected remaining")
	}
	if c.Current() != 'a' {
		t.Fatalf("got %c", c.Current())
	}
	if b, ok := c.Peek(1); !ok || b != 'b' {
		t.Fatalf("peek(1) = %c, %v", b, ok)
	}
	c.Advance()
	c.Advance()
	c.Advance() // consume '\n'
	line, col := c.LineCol()
	if line != 1 || col != 0 {
		t.Fatalf("line/col = %d/%d, want 1/0", line, col)
	}
	if c.Offset() != 3 {
		t.Fatalf("offset = %d, want 3", c.Offset())
	}
}

func TestCursorSkipWhitespace(t *testing.T) {
	c := scanner.New([]byte("   x"))
	c.SkipWhitespace()
	if c.Current() != 'x' {
		t.Fatalf("got %c", c.Current())
	}
}

func TestScratchBuffer(t *testing.T) {
	var sb scanner.ScratchBuffer
	sb.Append([]byte("ab"))
	sb.AppendByte('c')
	sb.AppendRune('d')
	if sb.String() != "abcd" {
		t.Fatalf("got %q", sb.String())
	}
	sb.Reset()
	if sb.String() != "" {
		t.Fatalf("reset failed: %q", sb.String())
	}
}

func TestParseNumberPrefix(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantLen int
		wantErr bool
	}{
		{"123abc", 123, 3, false},
		{"-12.5,", -12.5, 5, false},
		{"1e3 rest", 1000, 3, false},
		{"abc", 0, 0, true},
	}
	for _, tc := range tests {
		v, n, err := scanner.ParseNumberPrefix([]byte(tc.in), 0)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if v != tc.want || n != tc.wantLen {
			t.Fatalf("%q: got (%v,%d), want (%v,%d)", tc.in, v, n, tc.want, tc.wantLen)
		}
	}
}

func TestStripBOM(t *testing.T) {
	var buf []byte
	buf = append(buf, 0xEF, 0xBB, 0xBF)
	buf = append(buf, 0xEF, 0xBB, 0xBF)
	buf = append(buf, "hi"...)
	out := scanner.StripBOM(buf)
	if string(out) != "hi" {
		t.Fatalf("got %q", out)
	}
}
