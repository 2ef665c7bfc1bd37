package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/crimedata-tools/lapd-enrich/pipeline"
)

var (
	rateGood = color.New(color.FgGreen).SprintFunc()
	rateWarn = color.New(color.FgYellow).SprintFunc()
	rateBad  = color.New(color.FgRed).SprintFunc()
)

// RenderSummary prints the per-column quality counters as a table so a
// user can judge result trustworthiness at a glance.
func RenderSummary(w io.Writer, sum *pipeline.Summary) {
	headers := []string{"Column", "Rows", "Resolved", "Unknown", "Malformed", "Unknown Rate"}
	alignment := make([]tw.Align, len(headers))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header(headers)

	for _, c := range sum.Columns {
		table.Append([]string{
			c.Column,
			strconv.Itoa(c.Rows),
			strconv.Itoa(c.Resolved),
			strconv.Itoa(c.Unknown),
			strconv.Itoa(c.Malformed),
			colorRate(c.UnknownRate()),
		})
	}
	table.Render()

	fmt.Fprintf(w, "\n%d rows, %d unknown codes, %d unparseable dates\n",
		sum.RowCount, sum.TotalUnknown(), sum.DateParseErrors)
}

func colorRate(rate float64) string {
	s := fmt.Sprintf("%.2f%%", rate*100)
	switch {
	case rate < 0.01:
		return rateGood(s)
	case rate < 0.10:
		return rateWarn(s)
	default:
		return rateBad(s)
	}
}
