package pivot

// RecordValueKind discriminates one record column value's source.
type RecordValueKind int

const (
	RecordValueNumeric RecordValueKind = iota
	RecordValueCharacter
	RecordValueSharedItem
)

// RecordValue is one column value within a Record: either an inline
// numeric/character value, or an index into the owning field's
// shared-items list (spec.md §4.8's append_record_value_shared_item).
type RecordValue struct {
	Kind        RecordValueKind
	Numeric     float64
	Character   string
	SharedIndex int
}

// Record is one committed pivot-cache data row.
type Record struct {
	Values []RecordValue
}

// RecordStreamBuilder buffers a pivot cache's record stream.
type RecordStreamBuilder struct {
	count   int
	records []Record
	cur     []RecordValue
}

func newRecordStreamBuilder() *RecordStreamBuilder { return &RecordStreamBuilder{} }

// SetRecordCount pre-sizes the record slice.
func (b *RecordStreamBuilder) SetRecordCount(n int) *RecordStreamBuilder {
	b.count = n
	b.records = make([]Record, 0, n)
	return b
}

// AppendRecordValueNumeric pushes an inline numeric value to the
// current record buffer.
func (b *RecordStreamBuilder) AppendRecordValueNumeric(v float64) *RecordStreamBuilder {
	b.cur = append(b.cur, RecordValue{Kind: RecordValueNumeric, Numeric: v})
	return b
}

// AppendRecordValueCharacter pushes an inline character value.
func (b *RecordStreamBuilder) AppendRecordValueCharacter(s string) *RecordStreamBuilder {
	b.cur = append(b.cur, RecordValue{Kind: RecordValueCharacter, Character: s})
	return b
}

// AppendRecordValueSharedItem pushes a reference into the corresponding
// field's shared-items list by index.
func (b *RecordStreamBuilder) AppendRecordValueSharedItem(index int) *RecordStreamBuilder {
	b.cur = append(b.cur, RecordValue{Kind: RecordValueSharedItem, SharedIndex: index})
	return b
}

// CommitRecord closes the current record buffer and appends it to the
// stream.
func (b *RecordStreamBuilder) CommitRecord() *RecordStreamBuilder {
	b.records = append(b.records, Record{Values: b.cur})
	b.cur = nil
	return b
}

// commit closes the stream and returns its committed records.
func (b *RecordStreamBuilder) commit() []Record {
	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out
}
