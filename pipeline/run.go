package pipeline

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/crimedata-tools/lapd-enrich/codes"
	"github.com/crimedata-tools/lapd-enrich/logging"
	"github.com/crimedata-tools/lapd-enrich/refdata"
)

// State is the orchestrator's lifecycle position. Failed is reachable
// only from LoadingReferences: schema problems are fatal, unknown codes
// during Resolving never are.
type State int

const (
	StateIdle State = iota
	StateLoadingReferences
	StateResolving
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoadingReferences:
		return "loading-references"
	case StateResolving:
		return "resolving"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Sources names the reference tables a run loads, one per code family.
type Sources struct {
	CrimeClasses refdata.Source
	Districts    refdata.Source // needs two description columns: bureau, unit type
	StatusCodes  refdata.Source
	MOCodes      refdata.Source
}

// Result is the enriched table plus the run summary handed to the
// visualization layer.
type Result struct {
	Table   *FactTable
	Summary *Summary

	// MocodeSequences keeps the per-row ordered MO resolutions; the
	// joined Mocodes Readable column is a rendering of the same data.
	MocodeSequences [][]string
}

// Pipeline runs one enrichment pass. Reference tables are loaded once at
// the start and treated as immutable; resolution is a pure function of
// (raw code, table), so rows may be partitioned across workers freely.
type Pipeline struct {
	workers int
	state   State
	log     *slog.Logger
}

// New returns a pipeline that resolves with the given number of row
// partitions. Anything below 1 means sequential.
func New(workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{workers: workers, log: logging.New("pipeline")}
}

// State reports the orchestrator's current lifecycle position.
func (p *Pipeline) State() State { return p.state }

type job struct {
	src    string // raw fact column
	srcIdx int
	out    string // appended column
	table  codes.Lookup
	multi  bool
}

// Run enriches the fact table: every coded column gains a resolved
// sibling, raw columns stay untouched, and per-column counters land in
// the summary. Any reference load or schema failure aborts with no
// partial output; once Resolving starts, nothing aborts the run.
func (p *Pipeline) Run(ctx context.Context, fact *FactTable, srcs Sources) (*Result, error) {
	p.state = StateLoadingReferences
	jobs, err := p.prepare(fact, srcs)
	if err != nil {
		p.state = StateFailed
		p.log.Error("run aborted", "state", p.state.String(), "err", err)
		return nil, err
	}

	p.state = StateResolving
	n := len(fact.Rows)
	p.log.Info("resolving", "rows", n, "columns", len(jobs), "workers", p.workers)

	outs := make([][]string, len(jobs))
	for j := range outs {
		outs[j] = make([]string, n)
	}
	seqs := make([][]string, n)
	stats := make([]codes.Stats, len(jobs))

	if p.workers == 1 || n < p.workers {
		for j, st := range resolvePartition(fact, jobs, 0, n, outs, seqs) {
			stats[j].Add(st)
		}
	} else {
		g, _ := errgroup.WithContext(ctx)
		parts := make([][]codes.Stats, p.workers)
		chunk := (n + p.workers - 1) / p.workers
		for w := 0; w < p.workers; w++ {
			w := w
			lo, hi := w*chunk, min((w+1)*chunk, n)
			if lo >= hi {
				break
			}
			g.Go(func() error {
				parts[w] = resolvePartition(fact, jobs, lo, hi, outs, seqs)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			// workers only compute; Wait is a join point
			p.state = StateFailed
			return nil, err
		}
		// counters are sums, so partition order is irrelevant
		for _, part := range parts {
			for j, st := range part {
				stats[j].Add(st)
			}
		}
	}

	sum := &Summary{RowCount: n, ByDate: make(map[string]int)}
	for j, jb := range jobs {
		fact.AppendColumn(jb.out, outs[j])
		sum.Columns = append(sum.Columns, columnSummary(jb.out, stats[j]))
	}
	p.canonicalizeOccurrence(fact, sum)

	p.state = StateDone
	p.log.Info("run complete", "rows", n, "unknown_codes", sum.TotalUnknown(),
		"date_parse_errors", sum.DateParseErrors)
	return &Result{Table: fact, Summary: sum, MocodeSequences: seqs}, nil
}

// prepare loads every reference table and binds it to its fact column.
// All failures here are fatal: shipping a partially-enriched dataset
// would be worse than shipping none.
func (p *Pipeline) prepare(fact *FactTable, srcs Sources) ([]job, error) {
	load := func(s refdata.Source, what string) (*refdata.Table, error) {
		if s == nil {
			return nil, &refdata.SchemaError{Table: what, Reason: "no source configured"}
		}
		t, err := s.Load()
		if err != nil {
			return nil, err
		}
		p.log.Info("reference table loaded", "table", t.Name(), "codes", t.Len(), "skipped", t.Skipped())
		return t, nil
	}

	crime, err := load(srcs.CrimeClasses, "crime codes")
	if err != nil {
		return nil, err
	}
	districts, err := load(srcs.Districts, "districts")
	if err != nil {
		return nil, err
	}
	dcols := districts.Columns()
	if len(dcols) < 2 {
		return nil, &refdata.SchemaError{Table: districts.Name(),
			Reason: "need bureau and unit-type description columns"}
	}
	bureau, err := districts.Column(dcols[0])
	if err != nil {
		return nil, err
	}
	stype, err := districts.Column(dcols[1])
	if err != nil {
		return nil, err
	}
	status, err := load(srcs.StatusCodes, "status codes")
	if err != nil {
		return nil, err
	}
	mo, err := load(srcs.MOCodes, "mo codes")
	if err != nil {
		return nil, err
	}

	jobs := []job{
		{src: ColCrimeCode, out: OutCrimeClass, table: crime},
		{src: ColRptDist, out: OutBureau, table: bureau},
		{src: ColRptDist, out: OutAuthority, table: stype},
		{src: ColStatus, out: OutStatusDesc, table: status},
		{src: ColVictDescent, out: OutDescent, table: descentTable()},
		{src: ColMocodes, out: OutMocodes, table: mo, multi: true},
	}
	for i := range jobs {
		jobs[i].srcIdx = fact.Col(jobs[i].src)
		if jobs[i].srcIdx < 0 {
			return nil, &refdata.SchemaError{Table: "fact", Column: jobs[i].src,
				Reason: "required column missing"}
		}
	}
	return jobs, nil
}

// resolvePartition fills output slots for rows [lo, hi). Each partition
// gets its own resolvers; the shared out/seq slices are written at
// disjoint row indexes, so row order survives parallel runs unchanged.
func resolvePartition(fact *FactTable, jobs []job, lo, hi int, outs [][]string, seqs [][]string) []codes.Stats {
	stats := make([]codes.Stats, len(jobs))
	for j, jb := range jobs {
		res := codes.NewResolver(jb.table)
		for i := lo; i < hi; i++ {
			raw := fact.Value(fact.Rows[i], jb.srcIdx)
			if jb.multi {
				seq := res.ResolveList(raw)
				seqs[i] = seq
				outs[j][i] = strings.Join(seq, mocodeSep)
			} else {
				outs[j][i] = res.ResolveRaw(raw)
			}
		}
		stats[j] = res.Stats()
	}
	return stats
}

// sourceTimeLayout is the occurrence timestamp format in the raw export.
const sourceTimeLayout = "01/02/2006 03:04:05 PM"

// canonicalizeOccurrence appends ISO date and hour-of-day columns and
// fills the date/hour aggregates. Unparseable dates keep their raw value
// and are counted, never fatal.
func (p *Pipeline) canonicalizeOccurrence(fact *FactTable, sum *Summary) {
	dateIdx := fact.Col(ColDateOcc)
	timeIdx := fact.Col(ColTimeOcc)
	if dateIdx < 0 && timeIdx < 0 {
		return
	}

	n := len(fact.Rows)
	var dates, hours []string
	if dateIdx >= 0 {
		dates = make([]string, n)
	}
	if timeIdx >= 0 {
		hours = make([]string, n)
	}

	for i, row := range fact.Rows {
		if dateIdx >= 0 {
			raw := strings.TrimSpace(fact.Value(row, dateIdx))
			if ts, err := time.Parse(sourceTimeLayout, raw); err == nil {
				iso := ts.Format("2006-01-02")
				dates[i] = iso
				sum.ByDate[iso]++
			} else {
				dates[i] = raw
				if raw != "" {
					sum.DateParseErrors++
				}
			}
		}
		if timeIdx >= 0 {
			raw := strings.TrimSpace(fact.Value(row, timeIdx))
			if raw == "" {
				continue // missing times stay out of the hourly histogram
			}
			hhmm := zfill4(raw)
			if h, err := strconv.Atoi(hhmm[:2]); err == nil && h >= 0 && h < 24 {
				hours[i] = hhmm[:2]
				sum.ByHour[h]++
			}
		}
	}

	if dates != nil {
		fact.AppendColumn(OutDateISO, dates)
	}
	if hours != nil {
		fact.AppendColumn(OutHour, hours)
	}
}

// zfill4 left-pads a military time to four digits, the same fix the raw
// export needs for early-morning times like "30".
func zfill4(s string) string {
	s = strings.TrimSpace(s)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}
