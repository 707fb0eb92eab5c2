package constant

const (
	// ChatFallbackAnswer is returned when the model produces an empty completion.
	ChatFallbackAnswer = "I could not find a relevant answer in your notes."

	// ChatApologyAnswer is what chat socket clients receive when answering fails.
	ChatApologyAnswer = "I apologize, but I encountered an error while processing your request. Please try again."

	// SuggestLinkReason labels every link suggestion; matches are full-text overlap only.
	SuggestLinkReason = "Similar content"

	SuggestLinkLimit = 5
)
