// internal/dialogue/messages.go
package dialogue

// Response texts the transport renders verbatim. Prompts mention "skip"
// wherever the slot is optional.
const (
	msgWelcome = "Hi! I help you find places to eat.\n" +
		"Tell me where you are (a neighbourhood name or \"lat,lon\") and I'll take it from there.\n" +
		"You can also ask in one line, e.g. \"cheap sushi near downtown\".\n" +
		"Commands: /help, /restart"

	msgHelp = "Send me a location, then a cuisine, then a price range - or everything at once.\n" +
		"Examples:\n" +
		"  \"downtown\" then \"sushi\" then \"cheap\"\n" +
		"  \"cheap sushi near downtown, open now\"\n" +
		"Reply \"skip\" to leave cuisine or price open.\n" +
		"/restart starts the search over."

	msgPromptLocation   = "Where should I search? Send a neighbourhood name or \"lat,lon\"."
	msgRepromptLocation = "I couldn't place that. Try a neighbourhood name I know, or coordinates like \"42.87,74.59\"."

	msgPromptCuisine   = "Any particular cuisine? (\"skip\" for anything)"
	msgRepromptCuisine = "I don't know that cuisine. Name another one, or \"skip\" for anything."

	msgPromptPrice   = "What price range - cheap, mid or high? (\"skip\" for any)"
	msgRepromptPrice = "I didn't catch a price range. Say cheap, mid, high - or \"skip\"."

	msgNoResults = "Nothing matched, sorry. /restart to try a different search."

	msgDoneHint = "That search is finished. Ask again in one line (e.g. \"cheap sushi near downtown\") or /restart."
)
