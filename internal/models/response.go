// internal/models/response.go
package models

// ResponseKind classifies what the transport should render.
type ResponseKind string

const (
	ResponseWelcome   ResponseKind = "welcome"
	ResponseHelp      ResponseKind = "help"
	ResponsePrompt    ResponseKind = "prompt"
	ResponseReprompt  ResponseKind = "reprompt"
	ResponseResults   ResponseKind = "results"
	ResponseNoResults ResponseKind = "no_results"
)

// ScoredVenue is one ranked search hit.
type ScoredVenue struct {
	Venue      Venue   `json:"venue"`
	Score      float64 `json:"score"`
	DistanceKm float64 `json:"distanceKm"`
}

// RankedResult is an ordered list of hits; slice order is rank order.
type RankedResult []ScoredVenue

// DialogueResponse is the structured reply the core hands back to the
// messaging transport. The core never formats or delivers messages itself.
type DialogueResponse struct {
	Kind    ResponseKind `json:"kind"`
	Text    string       `json:"text"`
	Results RankedResult `json:"results,omitempty"`
}
