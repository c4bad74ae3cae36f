package youtube

import "time"

// Budget tracks one request's wall-clock allowance. It is advisory, not
// preemptive: stages consult it before starting new fetches, but an
// in-flight call is bounded only by its own timeout.
type Budget struct {
	start time.Time
	total time.Duration
}

func NewBudget(total time.Duration) *Budget {
	return &Budget{start: time.Now(), total: total}
}

func (b *Budget) Elapsed() time.Duration {
	return time.Since(b.start)
}

// NearlyExhausted reports whether 80% of the budget has been consumed, the
// threshold at which stages stop issuing new candidate fetches.
func (b *Budget) NearlyExhausted() bool {
	return b.Elapsed() > b.total*8/10
}
