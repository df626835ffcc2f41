package sharedstrings_test

import (
	"testing"

	"github.com/go-orcus/orcus/model"
	"github.com/go-orcus/orcus/sharedstrings"
	"github.com/go-orcus/orcus/stringpool"
)

func TestAddDeduplicates(t *testing.T) {
	s := sharedstrings.New(stringpool.New())
	a := s.Add("hello")
	b := s.Add("hello")
	if a != b {
		t.Fatalf("a=%d b=%d, want equal", a, b)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
}

func TestAppendAlwaysInserts(t *testing.T) {
	s := sharedstrings.New(stringpool.New())
	a := s.Append("x")
	b := s.Append("x")
	if a == b {
		t.Fatal("Append should insert unconditionally, producing distinct ids")
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
}

func TestAddFindsPriorAppendedEntry(t *testing.T) {
	s := sharedstrings.New(stringpool.New())
	first := s.Append("dup")
	again := s.Add("dup")
	if first != again {
		t.Fatalf("Add should return the first Append'd id: got %d, want %d", again, first)
	}
}

func TestGetRoundTrip(t *testing.T) {
	s := sharedstrings.New(stringpool.New())
	id := s.Add("round trip")
	got, ok := s.Get(id)
	if !ok || got != "round trip" {
		t.Fatalf("got %q, %v", got, ok)
	}
}

func TestSegmentBuilderCommitsFormatRuns(t *testing.T) {
	s := sharedstrings.New(stringpool.New())
	id := s.NewSegmentBuilder().
		AppendSegment("plain ").
		SetBold(true).
		AppendSegment("bold").
		CommitSegments()

	text, ok := s.Get(id)
	if !ok || text != "plain bold" {
		t.Fatalf("text = %q, %v", text, ok)
	}
	runs := s.FormatRuns(id)
	if len(runs) != 1 {
		t.Fatalf("runs = %v, want 1", runs)
	}
	if runs[0].Position != len("plain ") || runs[0].Length != len("bold") || !runs[0].Props.Bold {
		t.Fatalf("run = %+v", runs[0])
	}
}

func TestSegmentBuilderCommitDeduplicatesAgainstPriorAdd(t *testing.T) {
	s := sharedstrings.New(stringpool.New())
	first := s.Add("same text")
	second := s.NewSegmentBuilder().AppendSegment("same text").CommitSegments()
	if first != second {
		t.Fatalf("commit should find existing id: got %d, want %d", second, first)
	}
}

func TestInternStringSatisfiesCellstoreInterner(t *testing.T) {
	s := sharedstrings.New(stringpool.New())
	var id model.StringID = s.InternString("abc")
	if id != 0 {
		t.Fatalf("expected first id to be 0, got %d", id)
	}
}
