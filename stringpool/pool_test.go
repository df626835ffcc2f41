package stringpool_test

import (
	"testing"

	"github.com/go-orcus/orcus/stringpool"
)

func TestInternDeduplicates(t *testing.T) {
	p := stringpool.New()
	a, isNew := p.Intern("hello")
	if !isNew {
		t.Fatal("expected first intern to be new")
	}
	b, isNew := p.Intern("hello")
	if isNew {
		t.Fatal("expected second intern to be a repeat")
	}
	if a != b {
		t.Fatalf("a=%q b=%q, want equal", a, b)
	}
	if p.Size() != 1 {
		t.Fatalf("size = %d, want 1", p.Size())
	}
}

func TestInternBytesDoesNotAliasCaller(t *testing.T) {
	p := stringpool.New()
	buf := []byte("mutable")
	s, _ := p.InternBytes(buf)
	buf[0] = 'X'
	if s != "mutable" {
		t.Fatalf("pool string mutated via caller buffer: %q", s)
	}
}

func TestInternedStringsSorted(t *testing.T) {
	p := stringpool.New()
	p.Intern("banana")
	p.Intern("apple")
	p.Intern("cherry")
	got := p.InternedStrings()
	want := []string{"apple", "banana", "cherry"}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMergeKeepsPriorViewsValid(t *testing.T) {
	a := stringpool.New()
	b := stringpool.New()
	s, _ := b.Intern("shared")
	a.Merge(b)
	if b.Size() != 0 {
		t.Fatalf("other pool should be emptied after merge, size=%d", b.Size())
	}
	if a.Size() != 1 {
		t.Fatalf("merged pool size = %d, want 1", a.Size())
	}
	// s remains a valid Go string regardless of b's later state.
	if s != "shared" {
		t.Fatalf("prior view invalidated: %q", s)
	}
}

func TestClear(t *testing.T) {
	p := stringpool.New()
	p.Intern("x")
	p.Clear()
	if p.Size() != 0 {
		t.Fatalf("size after clear = %d, want 0", p.Size())
	}
}
