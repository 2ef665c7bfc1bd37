package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/crimedata-tools/lapd-enrich/pipeline"
)

// WriteCSV saves the enriched table as plain CSV for consumers that do
// not read workbooks. Ragged source rows are padded to the full header
// width so every record round-trips.
func WriteCSV(path string, tbl *pipeline.FactTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tbl.Header); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	width := len(tbl.Header)
	for _, row := range tbl.Rows {
		for len(row) < width {
			row = append(row, "")
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
