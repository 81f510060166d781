// internal/models/query.go
package models

// GeneratedQuery pairs SQL text with its positional parameters. The i-th
// parameter binds the i-th `?` placeholder; builders must preserve that order.
type GeneratedQuery struct {
	SQL    string
	Params []interface{}
}

// Empty reports whether no SQL was produced (template path exhausted).
func (q GeneratedQuery) Empty() bool {
	return q.SQL == ""
}

// ResultSet is an ordered view of a SELECT result. Columns keeps the driver
// order so rendering is stable; each row maps column name to value.
type ResultSet struct {
	Columns []string
	Rows    []map[string]interface{}
	// Truncated is set when the executor hit its row cap before the driver
	// was exhausted.
	Truncated bool
}
