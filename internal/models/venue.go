// internal/models/venue.go
package models

import "fmt"

// PriceTier is an ordered price classification for a venue.
type PriceTier int

const (
	PriceUnknown PriceTier = iota
	PriceLow
	PriceMid
	PriceHigh
)

var priceTierNames = map[PriceTier]string{
	PriceLow:  "low",
	PriceMid:  "mid",
	PriceHigh: "high",
}

func (p PriceTier) String() string {
	if name, ok := priceTierNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParsePriceTier maps a canonical tier name to a PriceTier.
func ParsePriceTier(s string) (PriceTier, error) {
	switch s {
	case "low":
		return PriceLow, nil
	case "mid":
		return PriceMid, nil
	case "high":
		return PriceHigh, nil
	}
	return PriceUnknown, fmt.Errorf("unknown price tier %q", s)
}

// MarshalJSON encodes the tier as its canonical name.
func (p PriceTier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON decodes a canonical tier name.
func (p *PriceTier) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	tier, err := ParsePriceTier(s)
	if err != nil {
		return err
	}
	*p = tier
	return nil
}

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// HoursSpan is one opening interval on a given weekday. Times are local
// "HH:MM" strings, compared lexically the way the source dataset does.
type HoursSpan struct {
	Day  string `json:"day"` // Mon, Tue, ... Sun
	From string `json:"from"`
	To   string `json:"to"`
}

// Venue is a single catalog record. Immutable once loaded; owned by the
// catalog snapshot.
type Venue struct {
	ID          string      `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Address     string      `json:"address,omitempty" db:"address"`
	Location    Coordinate  `json:"location"`
	CuisineTags []string    `json:"cuisineTags"`
	PriceTier   PriceTier   `json:"priceTier"`
	OpenHours   []HoursSpan `json:"openHours,omitempty"`
	Rating      float64     `json:"rating,omitempty" db:"rating"` // 0 means unrated
	ReviewCount int         `json:"reviewCount,omitempty" db:"reviews_count"`
}

// HasTag reports whether the venue carries the given cuisine tag.
func (v *Venue) HasTag(tag string) bool {
	for _, t := range v.CuisineTags {
		if t == tag {
			return true
		}
	}
	return false
}
