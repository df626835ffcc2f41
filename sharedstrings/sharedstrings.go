// Package sharedstrings implements the shared-strings and format-run
// store described in spec.md §4.5: a de-duplicated string table wrapping
// the model-context string pool, plus per-string rich-text format runs
// built through a stateful segment accumulator.
package sharedstrings

import (
	"reflect"
	"strings"

	"github.com/go-orcus/orcus/model"
	"github.com/go-orcus/orcus/stringpool"
)

// Store wraps a stringpool.Pool and assigns each distinct interned
// string a stable model.StringID equal to its insertion order, plus any
// rich-text format runs attached to it.
type Store struct {
	pool    *stringpool.Pool
	ids     map[string]model.StringID
	strings []string // index -> string, parallel to ids
	runs    map[model.StringID][]model.RichTextRun
}

// New creates an empty Store backed by pool. Passing a shared pool lets
// callers intern identical text once across, say, both cell values and
// named-style display names.
func New(pool *stringpool.Pool) *Store {
	return &Store{pool: pool, ids: make(map[string]model.StringID), runs: make(map[model.StringID][]model.RichTextRun)}
}

// InternString implements cellstore.StringInterner by delegating to Add.
func (s *Store) InternString(str string) model.StringID {
	return s.Add(str)
}

// Append unconditionally inserts s as a new entry, even if byte-identical
// text already exists, and returns its id. Used when the caller already
// knows the string is new (spec.md §4.5).
func (s *Store) Append(str string) model.StringID {
	interned, _ := s.pool.Intern(str)
	id := model.StringID(len(s.strings))
	s.strings = append(s.strings, interned)
	// Do not register in s.ids: a later Add for the same text must still
	// find the first occurrence per get_table-style identity semantics,
	// and Append's whole point is "insert regardless of duplication", not
	// "become the new canonical id for future Add calls" — so only update
	// ids if this is the first time we've seen the text.
	if _, exists := s.ids[interned]; !exists {
		s.ids[interned] = id
	}
	return id
}

// Add interns str and returns the existing id if already present,
// otherwise it behaves like Append.
func (s *Store) Add(str string) model.StringID {
	interned, isNew := s.pool.Intern(str)
	if !isNew {
		if id, ok := s.ids[interned]; ok {
			return id
		}
	}
	id := model.StringID(len(s.strings))
	s.strings = append(s.strings, interned)
	s.ids[interned] = id
	return id
}

// Get returns the string for id.
func (s *Store) Get(id model.StringID) (string, bool) {
	if id < 0 || int(id) >= len(s.strings) {
		return "", false
	}
	return s.strings[id], true
}

// Len returns the number of entries (including duplicates inserted via
// Append).
func (s *Store) Len() int { return len(s.strings) }

// SetFormatRuns attaches (or replaces) the rich-text format runs
// associated with an already-interned string id.
func (s *Store) SetFormatRuns(id model.StringID, runs []model.RichTextRun) {
	s.runs[id] = runs
}

// FormatRuns returns the rich-text format runs for id, or nil if none
// were set.
func (s *Store) FormatRuns(id model.StringID) []model.RichTextRun {
	return s.runs[id]
}

// SegmentBuilder accumulates rich-text segments with per-segment font
// properties, finalizing into a single interned string plus its format
// runs on Commit. It mirrors the stateful
// set-font/set-size/set-bold/.../append_segment/commit_segments protocol
// of spec.md §4.5.
type SegmentBuilder struct {
	store    *Store
	segments []segment
	cur      model.RunFontProps
	curSet   bool
}

type segment struct {
	text  string
	props model.RunFontProps
	isSet bool
}

// NewSegmentBuilder creates a SegmentBuilder over store.
func (s *Store) NewSegmentBuilder() *SegmentBuilder {
	return &SegmentBuilder{store: s}
}

func (b *SegmentBuilder) SetFont(name string) *SegmentBuilder {
	b.cur.Name = name
	b.curSet = true
	return b
}

func (b *SegmentBuilder) SetSize(size float64) *SegmentBuilder {
	b.cur.Size = size
	b.curSet = true
	return b
}

func (b *SegmentBuilder) SetBold(v bool) *SegmentBuilder {
	b.cur.Bold = v
	b.curSet = true
	return b
}

func (b *SegmentBuilder) SetItalic(v bool) *SegmentBuilder {
	b.cur.Italic = v
	b.curSet = true
	return b
}

func (b *SegmentBuilder) SetColor(c model.Color) *SegmentBuilder {
	b.cur.Color = c
	b.cur.HasColor = true
	b.curSet = true
	return b
}

// AppendSegment accumulates text with whatever font properties were set
// since the previous AppendSegment call, then resets the pending
// properties for the next segment.
func (b *SegmentBuilder) AppendSegment(text string) *SegmentBuilder {
	b.segments = append(b.segments, segment{text: text, props: b.cur, isSet: b.curSet})
	b.cur = model.RunFontProps{}
	b.curSet = false
	return b
}

// CommitSegments finalizes the accumulated segments into one string. If
// the concatenated text (with identical runs) already exists in the
// store, the prior id is returned instead of inserting a duplicate.
func (b *SegmentBuilder) CommitSegments() model.StringID {
	var sb strings.Builder
	var runs []model.RichTextRun
	pos := 0
	for _, seg := range b.segments {
		sb.WriteString(seg.text)
		if seg.isSet {
			runs = append(runs, model.RichTextRun{Position: pos, Length: len(seg.text), Props: seg.props, HasProps: true})
		}
		pos += len(seg.text)
	}
	full := sb.String()
	before := b.store.Len()
	id := b.store.Add(full)
	if b.store.Len() == before && !reflect.DeepEqual(b.store.FormatRuns(id), runs) {
		id = b.store.Append(full)
	}
	if len(runs) > 0 {
		b.store.SetFormatRuns(id, runs)
	}
	return id
}
