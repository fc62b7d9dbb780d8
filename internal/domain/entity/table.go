package entity

// Record one sheet row keyed by header name
type Record map[string]string

// Get cell value; missing columns read as ""
func (r Record) Get(column string) string {
	return r[column]
}

// Table rows read from one sheet, in source order
type Table struct {
	Path    string
	Sheet   string
	Headers []string
	Rows    []Record
}

// HasColumn reports whether the header row contains column
func (t *Table) HasColumn(column string) bool {
	for _, h := range t.Headers {
		if h == column {
			return true
		}
	}
	return false
}

// ResolveColumn returns the first candidate present in the header row
func (t *Table) ResolveColumn(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if t.HasColumn(c) {
			return c, true
		}
	}
	return "", false
}

// Len number of data rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
