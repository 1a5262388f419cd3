// Package result maps untrusted search hits into display-ready records.
package result

import (
	"encoding/json"
	"strconv"

	"github.com/tidwall/gjson"
)

// Fallback labels shown when a record lacks a field.
const (
	FallbackName        = "Unnamed Business"
	FallbackDescription = "No description available"
	FallbackLocation    = "Location not available"
	NoRatingLabel       = "-"
)

// Ordered candidate fields per output field; the first present one wins.
var (
	idFields          = []string{"id", "ein", "name"}
	nameFields        = []string{"name"}
	descriptionFields = []string{"mission_text", "description"}
)

// Raw is a single undecoded result record as returned by the search API.
type Raw = json.RawMessage

// Result is a normalized, immutable search hit.
type Result struct {
	id          string
	name        string
	description string
	location    string
	causes      []string
	rating      float64
	hasRating   bool
	verified    bool
	score       float64
	hasScore    bool
	explanation string
}

// Normalize maps a raw record to a Result. It never fails: invalid JSON,
// non-object values and missing fields all degrade to fallbacks.
// index is used for the placeholder ID when no identifier is present.
func Normalize(raw []byte, index int) Result {
	var doc gjson.Result
	if gjson.ValidBytes(raw) {
		if parsed := gjson.ParseBytes(raw); parsed.IsObject() {
			doc = parsed
		}
	}

	r := Result{
		id:          firstText(doc, idFields),
		name:        firstText(doc, nameFields),
		description: firstText(doc, descriptionFields),
		location:    locationLabel(doc.Get("location")),
		causes:      stringArray(doc.Get("causes")),
		verified:    truthy(doc.Get("trust.verification_status")),
	}
	if r.id == "" {
		r.id = "result-" + strconv.Itoa(index)
	}
	if r.name == "" {
		r.name = FallbackName
	}
	if r.description == "" {
		r.description = FallbackDescription
	}
	r.rating, r.hasRating = number(doc.Get("ratings.avg_rating"))
	r.score, r.hasScore = number(doc.Get("_scores.final"))
	if v := doc.Get("_explain"); v.Type == gjson.String {
		r.explanation = v.Str
	}
	return r
}

// NormalizeAll normalizes a batch. The output always has len(raws) entries.
func NormalizeAll(raws []Raw) []Result {
	out := make([]Result, len(raws))
	for i, raw := range raws {
		out[i] = Normalize(raw, i)
	}
	return out
}

// firstText returns the first non-empty scalar among fields.
func firstText(doc gjson.Result, fields []string) string {
	for _, f := range fields {
		v := doc.Get(f)
		switch v.Type {
		case gjson.String:
			if v.Str != "" {
				return v.Str
			}
		case gjson.Number:
			return v.String()
		}
	}
	return ""
}

func locationLabel(loc gjson.Result) string {
	switch {
	case loc.IsObject():
		if city := loc.Get("city"); city.Type == gjson.String && city.Str != "" {
			return city.Str
		}
	case loc.Type == gjson.String && loc.Str != "":
		return loc.Str
	}
	return FallbackLocation
}

func stringArray(v gjson.Result) []string {
	if !v.IsArray() {
		return []string{}
	}
	out := []string{}
	for _, item := range v.Array() {
		if item.Type == gjson.String {
			out = append(out, item.Str)
		}
	}
	return out
}

func number(v gjson.Result) (float64, bool) {
	if v.Type != gjson.Number {
		return 0, false
	}
	return v.Num, true
}

// truthy follows JavaScript truthiness for JSON values.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	case gjson.JSON:
		return true
	default:
		return false
	}
}

// ID returns the record identifier.
func (r *Result) ID() string { return r.id }

// Name returns the display name.
func (r *Result) Name() string { return r.name }

// Description returns the mission text or description.
func (r *Result) Description() string { return r.description }

// Location returns the location label.
func (r *Result) Location() string { return r.location }

// Causes returns a copy of the record's causes.
func (r *Result) Causes() []string {
	out := make([]string, len(r.causes))
	copy(out, r.causes)
	return out
}

// Rating returns the average rating, if present.
func (r *Result) Rating() (float64, bool) { return r.rating, r.hasRating }

// Verified reports whether the organization passed verification.
func (r *Result) Verified() bool { return r.verified }

// Score returns the final ranking score, if present.
func (r *Result) Score() (float64, bool) { return r.score, r.hasScore }

// Explanation returns the ranking explanation, if present.
func (r *Result) Explanation() (string, bool) { return r.explanation, r.explanation != "" }

// RatingLabel formats the rating for display, "-" when absent.
func (r *Result) RatingLabel() string {
	if !r.hasRating {
		return NoRatingLabel
	}
	return strconv.FormatFloat(r.rating, 'f', -1, 64)
}

// ScoreLabel formats the impact badge. Empty when there is no non-zero score.
func (r *Result) ScoreLabel() string {
	if !r.hasScore || r.score == 0 {
		return ""
	}
	return "Impact: " + strconv.FormatFloat(r.score, 'f', 2, 64)
}
