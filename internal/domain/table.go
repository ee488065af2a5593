package domain

// Row is one record of an uploaded table, keyed by header name.
type Row map[string]string

// Table is the in-memory form of an uploaded tabular file. Cell values are
// untyped strings; interpretation is the consumer's concern. Source tables
// are read-only input and are never written back.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// HasColumn reports whether the header carries the exact column name.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// FirstColumn returns the first candidate present in the header. Uploaded
// files vary in shape, so logical fields resolve through an ordered alias
// list rather than a fixed name.
func (t *Table) FirstColumn(candidates []string) (string, bool) {
	for _, name := range candidates {
		if t.HasColumn(name) {
			return name, true
		}
	}
	return "", false
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}
