package request

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/nitinanarwal/Search-AI/internal/domain/search/order"
	"github.com/nitinanarwal/Search-AI/internal/domain/search/query"
)

// Location is the geographic filter sent to the search API.
type Location struct {
	Zip         string  `json:"zip"`
	RadiusMiles float64 `json:"radius_miles"`
}

// Filters holds the cause filter sent to the search API.
type Filters struct {
	Cause []string `json:"cause"`
}

// Payload is the JSON body of POST /api/search.
// Location and Filters encode as null when absent, never as empty objects.
type Payload struct {
	Query    string      `json:"query"`
	Location *Location   `json:"location"`
	Filters  *Filters    `json:"filters"`
	Sort     order.Order `json:"sort"`
	Page     int         `json:"page"`
	Limit    int         `json:"limit"`
}

// Serialize maps a query model to a request payload. It performs no I/O and never fails.
// pageOverride, when given and positive, replaces the model's page.
func Serialize(m query.Model, pageOverride ...int) Payload {
	p := Payload{
		Query: m.Text(),
		Sort:  m.Sort(),
		Page:  m.Page(),
		Limit: m.PageSize(),
	}
	if len(pageOverride) > 0 && pageOverride[0] >= query.DefaultPage {
		p.Page = pageOverride[0]
	}

	radius := CoerceRadius(m.Radius())
	if m.Zip() != "" || radius != query.DefaultRadiusMiles {
		p.Location = &Location{Zip: m.Zip(), RadiusMiles: radius}
	}

	if !m.Causes().IsEmpty() {
		p.Filters = &Filters{Cause: m.Causes().Values()}
	}
	return p
}

// CoerceRadius replaces NaN, infinite and negative radii with the default.
// encoding/json cannot represent non-finite floats.
func CoerceRadius(miles float64) float64 {
	if math.IsNaN(miles) || math.IsInf(miles, 0) || miles < 0 {
		return query.DefaultRadiusMiles
	}
	return miles
}

// Encode returns the JSON body.
func (p Payload) Encode() ([]byte, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode search payload: %w", err)
	}
	return b, nil
}
