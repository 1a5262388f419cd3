// Package query holds the user's current search intent.
package query

import (
	"math"
	"strconv"
	"strings"

	"github.com/nitinanarwal/Search-AI/internal/domain/search/filter"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/order"
)

// Query model defaults.
const (
	DefaultRadiusMiles = 10.0
	DefaultPage        = 1
	// PageSize is fixed; the UI grid shows 12 cards per page.
	PageSize = 12
)

// Model is the search intent edited by the interaction layer.
// It is a value type: copies taken at submit time are unaffected by later edits.
// The zero value is ready to use and equivalent to New().
type Model struct {
	text   string
	zip    string
	radius float64
	// radiusSet is false until a radius is supplied; Radius then reports the default.
	radiusSet bool
	causes    filter.Causes
	order     order.Order
	page      int
}

// New returns a model with default radius, sort and page.
func New() Model {
	return Model{
		order: order.Default,
		page:  DefaultPage,
	}
}

// SetText replaces the free-text query.
func (m *Model) SetText(s string) { m.text = s }

// SetZip replaces the ZIP code. No validation happens here.
func (m *Model) SetZip(s string) { m.zip = s }

// SetRadius replaces the radius in miles. Non-finite values are kept
// and coerced at serialization time.
func (m *Model) SetRadius(miles float64) {
	m.radius = miles
	m.radiusSet = true
}

// SetRadiusText parses raw radius input. Blank input resets to the default;
// anything unparsable is stored as NaN.
func (m *Model) SetRadiusText(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		m.radius, m.radiusSet = 0, false
		return
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v = math.NaN()
	}
	m.SetRadius(v)
}

// ToggleCause adds or removes a cause. Applying it twice is a no-op.
func (m *Model) ToggleCause(c string) { m.causes = m.causes.Toggle(c) }

// SetCauses replaces the whole cause selection.
func (m *Model) SetCauses(c filter.Causes) { m.causes = c }

// SetSort replaces the sort order. Unknown orders fall back to the default.
func (m *Model) SetSort(o order.Order) {
	if !o.IsValid() {
		o = order.Default
	}
	m.order = o
}

// SetPage replaces the page number, clamped to at least 1.
func (m *Model) SetPage(n int) {
	if n < DefaultPage {
		n = DefaultPage
	}
	m.page = n
}

// Text returns the free-text query.
func (m Model) Text() string { return m.text }

// Zip returns the ZIP code.
func (m Model) Zip() string { return m.zip }

// Radius returns the raw radius in miles, or the default if none was set.
func (m Model) Radius() float64 {
	if !m.radiusSet {
		return DefaultRadiusMiles
	}
	return m.radius
}

// Causes returns the selected causes.
func (m Model) Causes() filter.Causes { return m.causes }

// Sort returns the sort order.
func (m Model) Sort() order.Order {
	if m.order == "" {
		return order.Default
	}
	return m.order
}

// Page returns the requested page.
func (m Model) Page() int {
	if m.page < DefaultPage {
		return DefaultPage
	}
	return m.page
}

// PageSize returns the fixed page size.
func (Model) PageSize() int { return PageSize }
