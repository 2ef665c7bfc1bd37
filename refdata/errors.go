package refdata

import "fmt"

// SchemaError reports a table whose shape makes resolution impossible: a
// required column is missing or the source is empty. It is fatal for the
// whole run; no partial enrichment is produced.
type SchemaError struct {
	Table  string
	Column string // offending column, when known
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("reference table %s: %s (column %q)", e.Table, e.Reason, e.Column)
	}
	return fmt.Sprintf("reference table %s: %s", e.Table, e.Reason)
}
