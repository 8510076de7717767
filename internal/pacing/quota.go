package pacing

// Default YouTube Data API costs in quota units.
const (
	DefaultSearchCost  = 100
	DefaultInsertCost  = 50
	DefaultCreateCost  = 50
	DefaultDailyBudget = 10000
)

// Costs holds the per-operation quota unit prices.
type Costs struct {
	Search int
	Insert int
	Create int
}

// DefaultCosts returns the documented YouTube Data API operation costs.
func DefaultCosts() Costs {
	return Costs{Search: DefaultSearchCost, Insert: DefaultInsertCost, Create: DefaultCreateCost}
}

// Batch returns the projected cost of fully processing n songs, each
// requiring one search and one insert.
func (c Costs) Batch(n int) int {
	return n * (c.Search + c.Insert)
}

// Quota accumulates consumed quota units against a fixed budget. State
// lives for a single run only; nothing is persisted.
type Quota struct {
	budget   int
	consumed int
}

// NewQuota creates a [Quota] with the given budget.
func NewQuota(budget int) *Quota {
	return &Quota{budget: budget}
}

// Charge records cost units as consumed. Consumption only grows.
func (q *Quota) Charge(cost int) {
	if cost < 0 {
		return
	}
	q.consumed += cost
}

// Consumed returns the units charged so far.
func (q *Quota) Consumed() int {
	return q.consumed
}

// Remaining returns the unspent budget, never negative.
func (q *Quota) Remaining() int {
	if q.consumed >= q.budget {
		return 0
	}
	return q.budget - q.consumed
}

// WouldExceed reports whether charging projected units would overrun
// the budget. Checked before a batch so the run halts before issuing
// any call it cannot afford.
func (q *Quota) WouldExceed(projected int) bool {
	return q.consumed+projected > q.budget
}
