package codes

// Unknown is the sentinel description substituted when a code has no
// reference match. It is distinct from a blank value: blank means the
// source carried no code at all.
const Unknown = "Unknown"

// Lookup is the read side of a reference table. Misses are normal, not
// errors. Implementations must be safe for concurrent readers.
type Lookup interface {
	Description(Code) (string, bool)
}

// Stats aggregates resolution outcomes for one coded column.
type Stats struct {
	Rows      int // fields processed
	Resolved  int // lookups that hit
	Unknown   int // lookups that missed, sentinel substituted
	Malformed int // multi-value fields that could not be split
}

// Add folds counters from another partition into s. Counters are plain
// sums, so partition order does not matter.
func (s *Stats) Add(o Stats) {
	s.Rows += o.Rows
	s.Resolved += o.Resolved
	s.Unknown += o.Unknown
	s.Malformed += o.Malformed
}

// Resolver maps normalized codes to descriptions against a single
// reference table. A miss substitutes the sentinel instead of failing, so
// a handful of unmapped rows never aborts the rest of the batch.
// A Resolver accumulates stats and is not safe for concurrent use; give
// each partition its own and merge with Stats.Add.
type Resolver struct {
	table    Lookup
	sentinel string
	stats    Stats
}

// NewResolver binds a resolver to one reference table with the default
// Unknown sentinel.
func NewResolver(table Lookup) *Resolver {
	return &Resolver{table: table, sentinel: Unknown}
}

// WithSentinel overrides the substitute description for misses.
func (r *Resolver) WithSentinel(s string) *Resolver {
	r.sentinel = s
	return r
}

// Resolve looks up one normalized code. EmptyCode never matches.
func (r *Resolver) Resolve(c Code) string {
	r.stats.Rows++
	return r.resolveOne(c)
}

// ResolveRaw normalizes then resolves a single-valued field.
func (r *Resolver) ResolveRaw(raw string) string {
	return r.Resolve(Normalize(raw))
}

// ResolveList resolves a multi-value field element by element. A miss on
// one code does not affect its siblings, and unresolved entries stay in
// place as sentinels rather than being dropped: the resolved/unknown
// ratio is a data-quality signal the dashboard depends on. A field that
// cannot be split returns an empty sequence and counts as malformed.
func (r *Resolver) ResolveList(raw string) []string {
	r.stats.Rows++
	list, ok := NormalizeList(raw)
	if !ok {
		r.stats.Malformed++
		return nil
	}
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = r.resolveOne(c)
	}
	return out
}

// Stats returns the counters accumulated so far.
func (r *Resolver) Stats() Stats { return r.stats }

func (r *Resolver) resolveOne(c Code) string {
	if c != EmptyCode {
		if d, ok := r.table.Description(c); ok {
			r.stats.Resolved++
			return d
		}
	}
	r.stats.Unknown++
	return r.sentinel
}
