// internal/transport/telegram/render_test.go
package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"foodfinder/internal/models"
)

func TestRenderPlainResponses(t *testing.T) {
	resp := models.DialogueResponse{Kind: models.ResponsePrompt, Text: "Where are you?"}
	assert.Equal(t, "Where are you?", Render(resp))

	resp = models.DialogueResponse{Kind: models.ResponseNoResults, Text: "Nothing found."}
	assert.Equal(t, "Nothing found.", Render(resp))
}

func TestRenderResults(t *testing.T) {
	resp := models.DialogueResponse{
		Kind: models.ResponseResults,
		Text: "Found 2 places:",
		Results: models.RankedResult{
			{
				Venue: models.Venue{
					Name:        "Sakura Sushi",
					Address:     "12 Chuy Ave",
					CuisineTags: []string{"sushi", "japanese"},
					PriceTier:   models.PriceMid,
					Rating:      4.6,
				},
				DistanceKm: 0.42,
			},
			{
				Venue: models.Venue{
					Name:      "Pizza Corner",
					PriceTier: models.PriceLow,
				},
				DistanceKm: 1.3,
			},
		},
	}

	got := Render(resp)
	want := "Found 2 places:\n" +
		"1. Sakura Sushi $$ (sushi, japanese)\n" +
		"   0.4 km away, rated 4.6\n" +
		"   12 Chuy Ave\n" +
		"2. Pizza Corner $\n" +
		"   1.3 km away"
	assert.Equal(t, want, got)
}
