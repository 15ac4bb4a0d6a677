package entity

// Table is the result of parsing an uploaded file: a header and the rows
// under it. Every record has exactly len(Columns) cells, in column order.
type Table struct {
	Columns []string
	Records []Record
}

// Record is one row of a Table. Keys are shared with the table and must not be
// modified by callers.
type Record struct {
	keys  []string
	cells []Cell
}

// NewRecord binds cells to keys. It panics if their lengths differ, which
// would mean a parser bug.
func NewRecord(keys []string, cells []Cell) Record {
	if len(keys) != len(cells) {
		panic("entity: record has a different number of keys and cells")
	}
	return Record{keys: keys, cells: cells}
}

// MarshalJSON encodes the record as a JSON object whose keys keep column order.
func (r Record) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 16*len(r.cells)+2)
	buf = append(buf, '{')
	for i, key := range r.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendJSONString(buf, key)
		buf = append(buf, ':')
		buf = r.cells[i].appendJSON(buf)
	}
	return append(buf, '}'), nil
}
