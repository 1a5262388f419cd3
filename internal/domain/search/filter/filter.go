package filter

import "slices"

// KnownCauses is the fixed cause vocabulary offered to the user.
var KnownCauses = []string{
	"housing",
	"families",
	"anti-homelessness",
	"mental health",
	"veterans",
	"education",
	"youth",
	"legal",
}

// IsKnown reports whether cause belongs to KnownCauses.
func IsKnown(cause string) bool {
	return slices.Contains(KnownCauses, cause)
}

// Causes is an immutable set of selected causes.
// Insertion order is kept so the wire payload is stable; equality ignores it.
type Causes struct {
	values []string
}

// NewCauses builds a set from the given values, skipping unknown causes and duplicates.
func NewCauses(values ...string) Causes {
	var c Causes
	for _, v := range values {
		if IsKnown(v) && !c.Contains(v) {
			c.values = append(c.values, v)
		}
	}
	return c
}

// Toggle returns a new set with cause added if absent or removed if present.
// Unknown causes leave the set unchanged.
func (c Causes) Toggle(cause string) Causes {
	if !IsKnown(cause) {
		return c
	}
	idx := slices.Index(c.values, cause)
	if idx >= 0 {
		return Causes{values: slices.Delete(slices.Clone(c.values), idx, idx+1)}
	}
	next := make([]string, len(c.values), len(c.values)+1)
	copy(next, c.values)
	return Causes{values: append(next, cause)}
}

// Contains reports whether cause is selected.
func (c Causes) Contains(cause string) bool { return slices.Contains(c.values, cause) }

// Len returns the number of selected causes.
func (c Causes) Len() int { return len(c.values) }

// IsEmpty reports whether no cause is selected.
func (c Causes) IsEmpty() bool { return len(c.values) == 0 }

// Values returns a copy of the selected causes in insertion order.
func (c Causes) Values() []string { return slices.Clone(c.values) }

// Equal reports set equality.
func (c Causes) Equal(o Causes) bool {
	if len(c.values) != len(o.values) {
		return false
	}
	for _, v := range c.values {
		if !o.Contains(v) {
			return false
		}
	}
	return true
}
