// internal/dialogue/machine.go
package dialogue

import (
	"fmt"
	"strings"
	"time"

	"foodfinder/internal/catalog"
	"foodfinder/internal/common/logger"
	"foodfinder/internal/models"
	"foodfinder/internal/search"
)

// Machine drives one conversation through slot collection and, once the
// query is complete, runs the search. HandleInput mutates only the state it
// is handed; the caller owns persistence and per-conversation locking.
type Machine struct {
	engine  *search.Engine
	catalog *catalog.Catalog
	parsers *SlotParsers
	logger  logger.Logger
}

func NewMachine(engine *search.Engine, cat *catalog.Catalog, parsers *SlotParsers, log logger.Logger) *Machine {
	return &Machine{
		engine:  engine,
		catalog: cat,
		parsers: parsers,
		logger:  log.WithFields(map[string]interface{}{"component": "dialogue"}),
	}
}

// HandleInput interprets one inbound message for the given conversation
// state. Validation failures re-prompt without advancing; step transitions
// are otherwise monotonic, with /start and /restart the only way back.
func (m *Machine) HandleInput(state *models.ConversationState, rawInput string, now time.Time) (models.DialogueResponse, error) {
	input := strings.TrimSpace(rawInput)
	state.LastActivity = now

	switch command(input) {
	case "start":
		state.Restart(now)
		return models.DialogueResponse{Kind: models.ResponseWelcome, Text: msgWelcome}, nil
	case "help":
		return models.DialogueResponse{Kind: models.ResponseHelp, Text: msgHelp}, nil
	case "restart":
		state.Restart(now)
		return models.DialogueResponse{Kind: models.ResponsePrompt, Text: msgPromptLocation}, nil
	}

	snap := m.catalog.Snapshot()
	ex := m.parsers.Extract(input, snap.TagVocabulary())

	if state.Step == models.StepDone {
		return m.handleAfterDone(state, ex, snap, now)
	}

	if resp, ok := m.mergeExtraction(state, ex); !ok {
		return resp, nil
	}

	m.advance(state)

	if state.Step == models.StepReady {
		return m.runSearch(state, snap, now)
	}
	return m.promptFor(state.Step), nil
}

// command recognises the bot commands carried over from the original
// interface; /reset stays as an alias for /restart.
func command(input string) string {
	switch strings.ToLower(input) {
	case "/start":
		return "start"
	case "/help", "help":
		return "help"
	case "/restart", "/reset", "restart":
		return "restart"
	}
	return ""
}

// mergeExtraction folds parsed slots into the query. The bool is false when
// the current step's slot stayed unfilled, in which case the response is
// the re-prompt to return.
func (m *Machine) mergeExtraction(state *models.ConversationState, ex Extraction) (models.DialogueResponse, bool) {
	if ex.Location != nil && state.Query.Location == nil {
		state.Query.Location = ex.Location
		state.Query.AreaName = ex.AreaName
	}
	if len(ex.Cuisines) > 0 && len(state.Query.CuisineTags) == 0 {
		state.Query.CuisineTags = ex.Cuisines
		state.CuisineResolved = true
	}
	if len(ex.Prices) > 0 && len(state.Query.PriceTiers) == 0 {
		state.Query.PriceTiers = ex.Prices
		state.PriceResolved = true
	}
	if ex.OpenNow {
		state.Query.OpenNow = true
	}

	switch state.Step {
	case models.StepAwaitingLocation:
		if state.Query.Location == nil {
			return models.DialogueResponse{Kind: models.ResponseReprompt, Text: msgRepromptLocation}, false
		}
	case models.StepAwaitingCuisine:
		if ex.Skip {
			state.CuisineResolved = true
		}
		if !state.CuisineResolved && !slotTouched(ex) {
			return models.DialogueResponse{Kind: models.ResponseReprompt, Text: msgRepromptCuisine}, false
		}
	case models.StepAwaitingPrice:
		if ex.Skip {
			state.PriceResolved = true
		}
		if !state.PriceResolved && !slotTouched(ex) {
			return models.DialogueResponse{Kind: models.ResponseReprompt, Text: msgRepromptPrice}, false
		}
	}

	return models.DialogueResponse{}, true
}

// slotTouched reports whether the extraction carried any usable slot, which
// lets an out-of-order answer (price while cuisine was asked) count as
// progress instead of a validation failure.
func slotTouched(ex Extraction) bool {
	return ex.Location != nil || len(ex.Cuisines) > 0 || len(ex.Prices) > 0 || ex.OpenNow
}

// advance moves the step pointer forward past every resolved slot. It never
// moves backwards, which keeps transitions monotonic.
func (m *Machine) advance(state *models.ConversationState) {
	step := state.Step
	for {
		switch step {
		case models.StepAwaitingLocation:
			if state.Query.Location == nil {
				state.Step = step
				return
			}
			step = models.StepAwaitingCuisine
		case models.StepAwaitingCuisine:
			if !state.CuisineResolved {
				state.Step = step
				return
			}
			step = models.StepAwaitingPrice
		case models.StepAwaitingPrice:
			if !state.PriceResolved {
				state.Step = step
				return
			}
			step = models.StepReady
		default:
			state.Step = step
			return
		}
	}
}

func (m *Machine) promptFor(step models.Step) models.DialogueResponse {
	switch step {
	case models.StepAwaitingCuisine:
		return models.DialogueResponse{Kind: models.ResponsePrompt, Text: msgPromptCuisine}
	case models.StepAwaitingPrice:
		return models.DialogueResponse{Kind: models.ResponsePrompt, Text: msgPromptPrice}
	default:
		return models.DialogueResponse{Kind: models.ResponsePrompt, Text: msgPromptLocation}
	}
}

// runSearch completes the dialogue: searches the catalog and transitions
// to Done. An empty result set is a normal response, not a failure.
func (m *Machine) runSearch(state *models.ConversationState, snap *catalog.Snapshot, now time.Time) (models.DialogueResponse, error) {
	result, err := m.engine.Search(&state.Query, snap, now)
	if err != nil {
		return models.DialogueResponse{}, err
	}

	state.Step = models.StepDone

	m.logger.Info("search completed", map[string]interface{}{
		"conversationId": state.ConversationID,
		"area":           state.Query.AreaName,
		"cuisines":       state.Query.CuisineTags,
		"results":        len(result),
	})

	if len(result) == 0 {
		return models.DialogueResponse{Kind: models.ResponseNoResults, Text: msgNoResults}, nil
	}
	return models.DialogueResponse{
		Kind:    models.ResponseResults,
		Text:    fmt.Sprintf("Found %d places:", len(result)),
		Results: result,
	}, nil
}

// handleAfterDone treats a post-search message as a fresh quick search when
// it parses as a full query (location plus at least one filter); anything
// else gets a hint instead of silently dropping the turn.
func (m *Machine) handleAfterDone(state *models.ConversationState, ex Extraction, snap *catalog.Snapshot, now time.Time) (models.DialogueResponse, error) {
	if ex.Location == nil || (len(ex.Cuisines) == 0 && len(ex.Prices) == 0 && !ex.OpenNow) {
		return models.DialogueResponse{Kind: models.ResponsePrompt, Text: msgDoneHint}, nil
	}

	state.Query = models.Query{
		Location:    ex.Location,
		AreaName:    ex.AreaName,
		CuisineTags: ex.Cuisines,
		PriceTiers:  ex.Prices,
		OpenNow:     ex.OpenNow,
	}
	state.CuisineResolved = len(ex.Cuisines) > 0
	state.PriceResolved = len(ex.Prices) > 0

	return m.runSearch(state, snap, now)
}
