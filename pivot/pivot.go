// Package pivot implements pivot-cache field/group/record import (spec.md
// §4.8): a cache builder accepting a worksheet-range or table source, a
// sequence of field definitions (each with an optional group
// sub-builder), and a record stream keyed against the fields' shared
// item lists.
package pivot

import "time"

// FieldItemType discriminates a FieldItem's value kind.
type FieldItemType int

const (
	FieldItemString FieldItemType = iota
	FieldItemNumeric
	FieldItemDateTime
	FieldItemError
)

// FieldItem is one entry in a field's shared-items list.
type FieldItem struct {
	Type     FieldItemType
	String   string
	Numeric  float64
	DateTime time.Time
	Error    string
}

// GroupBy selects the range-grouping granularity for a range-mode group.
type GroupBy int

const (
	GroupByUnspecified GroupBy = iota
	GroupByYears
	GroupByQuarters
	GroupByMonths
	GroupByDays
	GroupByHours
	GroupByMinutes
	GroupBySeconds
	GroupByNumeric
)

// RangeGroupInfo holds a range-mode group field's bounds and interval.
type RangeGroupInfo struct {
	GroupBy    GroupBy
	AutoStart  bool
	AutoEnd    bool
	StartNumber float64
	EndNumber   float64
	StartDate   time.Time
	EndDate     time.Time
	Interval    float64
}

// FieldGroup is a group field attached to a base field, either
// range-mode (RangeGroupInfo populated) or discrete-mode (per-base-item
// group-index mappings in BaseToGroupIndex, in base-item order), chosen
// implicitly by which setters were called while building it (spec.md
// §4.8).
type FieldGroup struct {
	BaseFieldIndex  int
	IsRange         bool
	Range           RangeGroupInfo
	Items           []FieldItem
	BaseToGroupIndex []int
}

// FieldGroupBuilder accumulates a FieldGroup's fields before commit.
type FieldGroupBuilder struct {
	g FieldGroup
}

func newFieldGroupBuilder(baseFieldIndex int) *FieldGroupBuilder {
	return &FieldGroupBuilder{g: FieldGroup{BaseFieldIndex: baseFieldIndex}}
}

// LinkBaseToGroupItem appends the next base-item's group-index mapping
// in order; calling this marks the group discrete-mode unless a range
// setter has already been called.
func (b *FieldGroupBuilder) LinkBaseToGroupItem(groupItemIndex int) *FieldGroupBuilder {
	b.g.BaseToGroupIndex = append(b.g.BaseToGroupIndex, groupItemIndex)
	return b
}

// AppendItemString/AppendItemNumeric append one item to the group's own
// item list (valid for both range and discrete groups).
func (b *FieldGroupBuilder) AppendItemString(value string) *FieldGroupBuilder {
	b.g.Items = append(b.g.Items, FieldItem{Type: FieldItemString, String: value})
	return b
}

func (b *FieldGroupBuilder) AppendItemNumeric(v float64) *FieldGroupBuilder {
	b.g.Items = append(b.g.Items, FieldItem{Type: FieldItemNumeric, Numeric: v})
	return b
}

// The following setters each implicitly switch the group to range mode.
func (b *FieldGroupBuilder) SetRangeGroupBy(g GroupBy) *FieldGroupBuilder {
	b.g.IsRange = true
	b.g.Range.GroupBy = g
	return b
}

func (b *FieldGroupBuilder) SetRangeAutoStart(v bool) *FieldGroupBuilder {
	b.g.IsRange = true
	b.g.Range.AutoStart = v
	return b
}

func (b *FieldGroupBuilder) SetRangeAutoEnd(v bool) *FieldGroupBuilder {
	b.g.IsRange = true
	b.g.Range.AutoEnd = v
	return b
}

func (b *FieldGroupBuilder) SetRangeStartNumber(v float64) *FieldGroupBuilder {
	b.g.IsRange = true
	b.g.Range.StartNumber = v
	return b
}

func (b *FieldGroupBuilder) SetRangeEndNumber(v float64) *FieldGroupBuilder {
	b.g.IsRange = true
	b.g.Range.EndNumber = v
	return b
}

func (b *FieldGroupBuilder) SetRangeStartDate(t time.Time) *FieldGroupBuilder {
	b.g.IsRange = true
	b.g.Range.StartDate = t
	return b
}

func (b *FieldGroupBuilder) SetRangeEndDate(t time.Time) *FieldGroupBuilder {
	b.g.IsRange = true
	b.g.Range.EndDate = t
	return b
}

func (b *FieldGroupBuilder) SetRangeInterval(v float64) *FieldGroupBuilder {
	b.g.IsRange = true
	b.g.Range.Interval = v
	return b
}

// Commit finalizes the group and returns it.
func (b *FieldGroupBuilder) Commit() FieldGroup { return b.g }

// Field is one committed pivot-cache field.
type Field struct {
	Name        string
	HasMinValue bool
	MinValue    float64
	HasMaxValue bool
	MaxValue    float64
	HasMinDate  bool
	MinDate     time.Time
	HasMaxDate  bool
	MaxDate     time.Time
	Items       []FieldItem
	Group       *FieldGroup
}

// FieldBuilder accumulates one Field's buffer before CommitField.
type FieldBuilder struct {
	f   Field
	grp *FieldGroupBuilder
}

func (b *FieldBuilder) SetName(name string) *FieldBuilder { b.f.Name = name; return b }

func (b *FieldBuilder) SetMinValue(v float64) *FieldBuilder {
	b.f.MinValue, b.f.HasMinValue = v, true
	return b
}

func (b *FieldBuilder) SetMaxValue(v float64) *FieldBuilder {
	b.f.MaxValue, b.f.HasMaxValue = v, true
	return b
}

func (b *FieldBuilder) SetMinDate(t time.Time) *FieldBuilder {
	b.f.MinDate, b.f.HasMinDate = t, true
	return b
}

func (b *FieldBuilder) SetMaxDate(t time.Time) *FieldBuilder {
	b.f.MaxDate, b.f.HasMaxDate = t, true
	return b
}

// StartFieldGroup marks this field as a group field parented on
// baseFieldIndex and returns a sub-builder for the group's data.
func (b *FieldBuilder) StartFieldGroup(baseFieldIndex int) *FieldGroupBuilder {
	b.grp = newFieldGroupBuilder(baseFieldIndex)
	return b.grp
}

// AppendItemString/AppendItemNumeric/AppendItemDateTime/AppendItemError
// append one entry to the field's own shared-items list.
func (b *FieldBuilder) AppendItemString(value string) *FieldBuilder {
	b.f.Items = append(b.f.Items, FieldItem{Type: FieldItemString, String: value})
	return b
}

func (b *FieldBuilder) AppendItemNumeric(v float64) *FieldBuilder {
	b.f.Items = append(b.f.Items, FieldItem{Type: FieldItemNumeric, Numeric: v})
	return b
}

func (b *FieldBuilder) AppendItemDateTime(t time.Time) *FieldBuilder {
	b.f.Items = append(b.f.Items, FieldItem{Type: FieldItemDateTime, DateTime: t})
	return b
}

func (b *FieldBuilder) AppendItemError(errValue string) *FieldBuilder {
	b.f.Items = append(b.f.Items, FieldItem{Type: FieldItemError, Error: errValue})
	return b
}

// Source identifies a pivot cache's data origin: either a worksheet
// range or a named table.
type Source struct {
	IsTable   bool
	SheetName string
	RangeRef  string
	TableName string
}

// Cache is one committed pivot-cache definition plus its record stream.
type Cache struct {
	ID      int
	Source  Source
	Fields  []Field
	Records []Record
}

// CacheBuilder accumulates a pivot cache's source, fields, and records.
type CacheBuilder struct {
	id     int
	source Source
	fields []Field
	cur    *FieldBuilder
	stream *RecordStreamBuilder
}

// NewCacheBuilder starts building the pivot cache identified by id.
func NewCacheBuilder(id int) *CacheBuilder { return &CacheBuilder{id: id} }

func (b *CacheBuilder) SetWorksheetSource(rangeRef, sheetName string) *CacheBuilder {
	b.source = Source{SheetName: sheetName, RangeRef: rangeRef}
	return b
}

func (b *CacheBuilder) SetTableSource(tableName string) *CacheBuilder {
	b.source = Source{IsTable: true, TableName: tableName}
	return b
}

// SetFieldCount pre-sizes the field slice.
func (b *CacheBuilder) SetFieldCount(n int) *CacheBuilder {
	b.fields = make([]Field, 0, n)
	return b
}

// Field returns the in-progress field buffer, starting a new one if none
// is open.
func (b *CacheBuilder) Field() *FieldBuilder {
	if b.cur == nil {
		b.cur = &FieldBuilder{}
	}
	return b.cur
}

// CommitField finalizes the current field buffer and appends it to the
// cache's field list.
func (b *CacheBuilder) CommitField() *CacheBuilder {
	if b.cur == nil {
		return b
	}
	f := b.cur.f
	if b.cur.grp != nil {
		g := b.cur.grp.Commit()
		f.Group = &g
	}
	b.fields = append(b.fields, f)
	b.cur = nil
	return b
}

// Records returns the record-stream sub-builder, creating it on first
// call. Shared-item indices are stored as given; Commit does not check
// them against the fields' item lists.
func (b *CacheBuilder) Records() *RecordStreamBuilder {
	if b.stream == nil {
		b.stream = newRecordStreamBuilder()
	}
	return b.stream
}

// Commit finalizes the cache and stores it in coll.
func (b *CacheBuilder) Commit(coll *Collection) *Cache {
	c := &Cache{ID: b.id, Source: b.source, Fields: b.fields}
	if b.stream != nil {
		c.Records = b.stream.commit()
	}
	coll.insert(c)
	return c
}
