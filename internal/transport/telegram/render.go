// internal/transport/telegram/render.go
package telegram

import (
	"fmt"
	"strings"

	"foodfinder/internal/models"
)

// Render flattens a structured dialogue response into chat text. Result
// lists keep their rank order; everything else is already plain text.
func Render(resp models.DialogueResponse) string {
	if resp.Kind != models.ResponseResults || len(resp.Results) == 0 {
		return resp.Text
	}

	var b strings.Builder
	b.WriteString(resp.Text)
	for i, hit := range resp.Results {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%d. %s", i+1, hit.Venue.Name))
		if tier := priceMarker(hit.Venue.PriceTier); tier != "" {
			b.WriteString(" " + tier)
		}
		if len(hit.Venue.CuisineTags) > 0 {
			b.WriteString(" (" + strings.Join(hit.Venue.CuisineTags, ", ") + ")")
		}
		b.WriteString(fmt.Sprintf("\n   %.1f km away", hit.DistanceKm))
		if hit.Venue.Rating > 0 {
			b.WriteString(fmt.Sprintf(", rated %.1f", hit.Venue.Rating))
		}
		if hit.Venue.Address != "" {
			b.WriteString("\n   " + hit.Venue.Address)
		}
	}
	return b.String()
}

func priceMarker(tier models.PriceTier) string {
	switch tier {
	case models.PriceLow:
		return "$"
	case models.PriceMid:
		return "$$"
	case models.PriceHigh:
		return "$$$"
	}
	return ""
}
