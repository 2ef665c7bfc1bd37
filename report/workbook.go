// Package report writes the enriched dataset and run summary out for the
// dashboard layer: a multi-sheet workbook, plain CSV, a SQLite file, and
// a console rendering of the quality counters.
package report

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/crimedata-tools/lapd-enrich/pipeline"
)

// Workbook sheet names.
const (
	SheetEnriched = "enriched"
	SheetSummary  = "summary"
	SheetByDate   = "by_date"
	SheetByHour   = "by_hour"
)

// WriteWorkbook saves the enriched table plus the summary and the two
// dashboard aggregates as one workbook.
func WriteWorkbook(path string, res *pipeline.Result) error {
	x := excelize.NewFile()
	add := func(name string, rows [][]string) error {
		idx, err := x.NewSheet(name)
		if err != nil {
			return err
		}
		for r, row := range rows {
			for c, v := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return err
				}
				if err := x.SetCellStr(name, cell, v); err != nil {
					return err
				}
			}
		}
		if name == SheetEnriched {
			x.SetActiveSheet(idx)
		}
		return nil
	}

	enriched := append([][]string{res.Table.Header}, res.Table.Rows...)
	for _, sheet := range []struct {
		name string
		rows [][]string
	}{
		{SheetEnriched, enriched},
		{SheetSummary, summaryRows(res.Summary)},
		{SheetByDate, byDateRows(res.Summary)},
		{SheetByHour, byHourRows(res.Summary)},
	} {
		if err := add(sheet.name, sheet.rows); err != nil {
			return fmt.Errorf("workbook sheet %s: %w", sheet.name, err)
		}
	}
	if err := x.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("workbook: %w", err)
	}
	if err := x.SaveAs(path); err != nil {
		return fmt.Errorf("workbook: %w", err)
	}
	return x.Close()
}

func summaryRows(sum *pipeline.Summary) [][]string {
	rows := [][]string{{"Column", "Rows", "Resolved", "Unknown", "Malformed", "Unknown Rate"}}
	for _, c := range sum.Columns {
		rows = append(rows, []string{
			c.Column,
			strconv.Itoa(c.Rows),
			strconv.Itoa(c.Resolved),
			strconv.Itoa(c.Unknown),
			strconv.Itoa(c.Malformed),
			fmt.Sprintf("%.2f%%", c.UnknownRate()*100),
		})
	}
	return rows
}

func byDateRows(sum *pipeline.Summary) [][]string {
	dates := make([]string, 0, len(sum.ByDate))
	for d := range sum.ByDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	rows := [][]string{{"Date", "Incidents"}}
	for _, d := range dates {
		rows = append(rows, []string{d, strconv.Itoa(sum.ByDate[d])})
	}
	return rows
}

func byHourRows(sum *pipeline.Summary) [][]string {
	rows := [][]string{{"Hour", "Incidents"}}
	for h, n := range sum.ByHour {
		rows = append(rows, []string{fmt.Sprintf("%02d", h), strconv.Itoa(n)})
	}
	return rows
}
