package order

import "strings"

// Order is the requested result ordering.
type Order string

// Sort order constants.
const (
	// Relevance is the server's default ranking.
	Relevance  Order = "relevance"
	Distance   Order = "distance"
	Impact     Order = "impact"
	Popularity Order = "popularity"
	Newest     Order = "newest"
	Rating     Order = "rating"
)

// Default is the order used when none is chosen.
const Default = Relevance

// All returns the supported orders in display order.
func All() []Order {
	return []Order{Relevance, Distance, Impact, Popularity, Newest, Rating}
}

// IsValid checks if the order is one of the supported values.
func (o Order) IsValid() bool {
	switch o {
	case Relevance, Distance, Impact, Popularity, Newest, Rating:
		return true
	}
	return false
}

// Parse converts user input to an Order, case-insensitively.
// Returns Default and false for unknown values.
func Parse(s string) (Order, bool) {
	o := Order(strings.ToLower(strings.TrimSpace(s)))
	if !o.IsValid() {
		return Default, false
	}
	return o, true
}
