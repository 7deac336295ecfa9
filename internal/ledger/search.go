package ledger

import (
	"iter"

	"github.com/securityinshadows/sish/internal/model"
)

// Query selects records by exact amount, category (case-insensitive), or
// exact date. Zero-valued criteria are ignored; an empty Query matches
// everything.
type Query struct {
	Category string
	Date     string
	Amount   int64
	ByAmount bool
}

// Matches reports whether a record satisfies every set criterion.
func (q Query) Matches(rec model.Record) bool {
	if q.ByAmount && rec.Amount != q.Amount {
		return false
	}
	if q.Category != "" && rec.Category != NormalizeCategory(q.Category) {
		return false
	}
	if q.Date != "" && rec.Date != q.Date {
		return false
	}
	return true
}

// Search returns the matching records of a namespace in cache order. The
// sequence is computed over a snapshot taken at call time; calling Search
// again re-evaluates against current cache state. No matches yields an
// empty sequence, not an error.
func (l *Ledger) Search(ns model.Namespace, q Query) iter.Seq[model.Record] {
	snapshot := l.Records(ns)
	return func(yield func(model.Record) bool) {
		for _, rec := range snapshot {
			if q.Matches(rec) && !yield(rec) {
				return
			}
		}
	}
}
