package pivot

// sourceKey identifies a worksheet-range source for lookup.
type sourceKey struct {
	sheetName string
	rangeRef  string
}

// Collection stores every committed pivot cache in a workbook, looked up
// by (sheet_name, range), by table_name, or by integer cache id
// (spec.md §4.8).
type Collection struct {
	byID     map[int]*Cache
	byRange  map[sourceKey]*Cache
	byTable  map[string]*Cache
	order    []*Cache
}

// NewCollection creates an empty pivot-cache collection.
func NewCollection() *Collection {
	return &Collection{
		byID:    make(map[int]*Cache),
		byRange: make(map[sourceKey]*Cache),
		byTable: make(map[string]*Cache),
	}
}

func (c *Collection) insert(cache *Cache) {
	c.byID[cache.ID] = cache
	if cache.Source.IsTable {
		c.byTable[cache.Source.TableName] = cache
	} else {
		c.byRange[sourceKey{sheetName: cache.Source.SheetName, rangeRef: cache.Source.RangeRef}] = cache
	}
	c.order = append(c.order, cache)
}

// ByID looks up a cache by its integer id.
func (c *Collection) ByID(id int) (*Cache, bool) {
	cache, ok := c.byID[id]
	return cache, ok
}

// ByRange looks up a cache by its worksheet (sheetName, rangeRef) source.
func (c *Collection) ByRange(sheetName, rangeRef string) (*Cache, bool) {
	cache, ok := c.byRange[sourceKey{sheetName: sheetName, rangeRef: rangeRef}]
	return cache, ok
}

// ByTable looks up a cache by its table-name source.
func (c *Collection) ByTable(tableName string) (*Cache, bool) {
	cache, ok := c.byTable[tableName]
	return cache, ok
}

// All returns every committed cache in commit order.
func (c *Collection) All() []*Cache {
	out := make([]*Cache, len(c.order))
	copy(out, c.order)
	return out
}
