package searchai

import (
	"slices"

	"github.com/nitinanarwal/Search-AI/internal/domain/search/filter"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/order"
)

// Status is the lifecycle phase of the current search.
type Status string

// Lifecycle statuses.
const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// SortOrder controls result ordering on the server.
type SortOrder string

// Sort order constants.
const (
	SortRelevance  SortOrder = SortOrder(order.Relevance)
	SortDistance   SortOrder = SortOrder(order.Distance)
	SortImpact     SortOrder = SortOrder(order.Impact)
	SortPopularity SortOrder = SortOrder(order.Popularity)
	SortNewest     SortOrder = SortOrder(order.Newest)
	SortRating     SortOrder = SortOrder(order.Rating)
)

// ParseSortOrder parses a sort order name, case-insensitively.
func ParseSortOrder(s string) (SortOrder, bool) {
	o, ok := order.Parse(s)
	return SortOrder(o), ok
}

// SortOrders returns every supported order.
func SortOrders() []SortOrder {
	all := order.All()
	out := make([]SortOrder, len(all))
	for i, o := range all {
		out[i] = SortOrder(o)
	}
	return out
}

// Cause vocabulary accepted by ToggleCause.
const (
	CauseHousing          = "housing"
	CauseFamilies         = "families"
	CauseAntiHomelessness = "anti-homelessness"
	CauseMentalHealth     = "mental health"
	CauseVeterans         = "veterans"
	CauseEducation        = "education"
	CauseYouth            = "youth"
	CauseLegal            = "legal"
)

// KnownCauses returns the cause vocabulary in display order.
func KnownCauses() []string { return slices.Clone(filter.KnownCauses) }

// IsKnownCause reports whether cause is part of the vocabulary.
func IsKnownCause(cause string) bool { return filter.IsKnown(cause) }

// Result is a display-ready search result. Missing fields are already
// replaced by their fallbacks; Rating and Score are nil when absent.
type Result struct {
	ID          string
	Name        string
	Description string
	Location    string
	Causes      []string
	Rating      *float64
	Verified    bool
	Score       *float64
	Explanation string

	RatingLabel string // "-" when Rating is nil
	ScoreLabel  string // "Impact: 0.87", empty when Score is nil or zero
}

// State is a snapshot of the search lifecycle.
type State struct {
	Status  Status
	Seq     uint64 // submit that produced the state, 0 for idle
	Results []Result
	Message string // set for StatusError
}

// Settled reports whether the state is a final outcome (success or error).
func (s State) Settled() bool {
	return s.Status == StatusSuccess || s.Status == StatusError
}

// QuerySnapshot is a read-only copy of the search intent.
type QuerySnapshot struct {
	Text        string
	Zip         string
	RadiusMiles float64
	Causes      []string
	Sort        SortOrder
	Page        int
	PageSize    int
}

// HealthStatus represents the aggregated search API health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}
