// internal/models/query.go
package models

// Query is the structured search request the dialogue collects. It is built
// incrementally; a slot is only ever set from a value that passed validation.
type Query struct {
	Location    *Coordinate `json:"location,omitempty"`
	AreaName    string      `json:"areaName,omitempty"`
	CuisineTags []string    `json:"cuisineTags,omitempty"`
	PriceTiers  []PriceTier `json:"priceTiers,omitempty"`
	OpenNow     bool        `json:"openNow,omitempty"`
}

// HasLocation reports whether the location slot is resolved. The search
// engine only accepts queries for which this holds.
func (q *Query) HasLocation() bool {
	return q.Location != nil
}

// WantsTier reports whether the given tier passes the price filter. An empty
// filter admits every tier.
func (q *Query) WantsTier(tier PriceTier) bool {
	if len(q.PriceTiers) == 0 {
		return true
	}
	for _, t := range q.PriceTiers {
		if t == tier {
			return true
		}
	}
	return false
}
