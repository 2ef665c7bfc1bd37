package pipeline

import "github.com/crimedata-tools/lapd-enrich/codes"

// ColumnSummary reports resolution quality for one appended column so a
// user can judge how much of the enriched output to trust.
type ColumnSummary struct {
	Column    string `json:"column"`
	Rows      int    `json:"rows"`
	Resolved  int    `json:"resolved"`
	Unknown   int    `json:"unknown"`
	Malformed int    `json:"malformed,omitempty"`
}

// UnknownRate is the fraction of lookups that missed. Multi-value fields
// count per element, so the rate reflects codes, not rows.
func (c ColumnSummary) UnknownRate() float64 {
	lookups := c.Resolved + c.Unknown
	if lookups == 0 {
		return 0
	}
	return float64(c.Unknown) / float64(lookups)
}

// Summary is the per-run data-quality report plus the aggregates the
// dashboard charts are built from.
type Summary struct {
	RowCount        int             `json:"row_count"`
	Columns         []ColumnSummary `json:"columns"`
	DateParseErrors int             `json:"date_parse_errors"`

	// ByDate counts incidents per ISO occurrence date; ByHour per hour
	// of day. Computed from the canonicalized occurrence columns.
	ByDate map[string]int `json:"by_date"`
	ByHour [24]int        `json:"by_hour"`
}

// TotalUnknown sums unknown lookups across all columns.
func (s *Summary) TotalUnknown() int {
	n := 0
	for _, c := range s.Columns {
		n += c.Unknown
	}
	return n
}

func columnSummary(name string, st codes.Stats) ColumnSummary {
	return ColumnSummary{
		Column:    name,
		Rows:      st.Rows,
		Resolved:  st.Resolved,
		Unknown:   st.Unknown,
		Malformed: st.Malformed,
	}
}
