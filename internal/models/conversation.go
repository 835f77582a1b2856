// internal/models/conversation.go
package models

import "time"

// Step is the dialogue position of a conversation.
type Step int

const (
	StepAwaitingLocation Step = iota
	StepAwaitingCuisine
	StepAwaitingPrice
	StepReady
	StepDone
)

var stepNames = map[Step]string{
	StepAwaitingLocation: "AWAITING_LOCATION",
	StepAwaitingCuisine:  "AWAITING_CUISINE",
	StepAwaitingPrice:    "AWAITING_PRICE",
	StepReady:            "READY",
	StepDone:             "DONE",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ConversationState is the per-conversation dialogue record held by the
// session store. Step transitions are monotonic except for an explicit
// restart.
type ConversationState struct {
	ConversationID string    `json:"conversationId"`
	Step           Step      `json:"step"`
	Query          Query     `json:"query"`
	// CuisineResolved/PriceResolved distinguish "not asked yet" from an
	// explicit skip that leaves the optional filter empty.
	CuisineResolved bool      `json:"cuisineResolved,omitempty"`
	PriceResolved   bool      `json:"priceResolved,omitempty"`
	LastActivity    time.Time `json:"lastActivity"`
}

// NewConversationState returns the initial state for a first-contact
// conversation.
func NewConversationState(conversationID string, now time.Time) *ConversationState {
	return &ConversationState{
		ConversationID: conversationID,
		Step:           StepAwaitingLocation,
		LastActivity:   now,
	}
}

// Restart resets the dialogue back to the first slot, dropping the partial
// query.
func (s *ConversationState) Restart(now time.Time) {
	s.Step = StepAwaitingLocation
	s.Query = Query{}
	s.CuisineResolved = false
	s.PriceResolved = false
	s.LastActivity = now
}

// IdleSince reports whether the conversation has been inactive since before
// the given cutoff.
func (s *ConversationState) IdleSince(cutoff time.Time) bool {
	return s.LastActivity.Before(cutoff)
}
