package searchai

import (
	"github.com/nitinanarwal/Search-AI/internal/domain/search/filter"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/order"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/query"
)

// QueryService edits the client's search intent. Every method is total:
// invalid input falls back to a default instead of failing.
type QueryService struct {
	c *Client
}

func (q *QueryService) update(fn func(m *query.Model)) {
	q.c.mu.Lock()
	defer q.c.mu.Unlock()
	fn(&q.c.model)
}

// SetText replaces the free-text query.
func (q *QueryService) SetText(s string) {
	q.update(func(m *query.Model) { m.SetText(s) })
}

// SetZip replaces the ZIP code.
func (q *QueryService) SetZip(s string) {
	q.update(func(m *query.Model) { m.SetZip(s) })
}

// SetRadius replaces the radius in miles. NaN, infinite or negative values
// are sent as the default radius.
func (q *QueryService) SetRadius(miles float64) {
	q.update(func(m *query.Model) { m.SetRadius(miles) })
}

// SetRadiusText parses raw radius input as typed by a user.
func (q *QueryService) SetRadiusText(s string) {
	q.update(func(m *query.Model) { m.SetRadiusText(s) })
}

// ToggleCause adds or removes a cause. Unknown causes are ignored.
func (q *QueryService) ToggleCause(cause string) {
	q.update(func(m *query.Model) { m.ToggleCause(cause) })
}

// SetCauses replaces the cause selection. Unknown causes are dropped.
func (q *QueryService) SetCauses(causes ...string) {
	q.update(func(m *query.Model) { m.SetCauses(filter.NewCauses(causes...)) })
}

// SetSort replaces the sort order. Unknown orders fall back to relevance.
func (q *QueryService) SetSort(o SortOrder) {
	q.update(func(m *query.Model) { m.SetSort(order.Order(o)) })
}

// SetPage replaces the page number, clamped to at least 1.
func (q *QueryService) SetPage(n int) {
	q.update(func(m *query.Model) { m.SetPage(n) })
}

// Reset restores the default intent.
func (q *QueryService) Reset() {
	q.update(func(m *query.Model) { *m = query.New() })
}

// Snapshot returns a copy of the current intent.
func (q *QueryService) Snapshot() QuerySnapshot {
	q.c.mu.Lock()
	defer q.c.mu.Unlock()
	return fromModel(q.c.model)
}
