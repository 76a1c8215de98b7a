package domain

// ChatMessage is one entry in a character's conversation history.
// Content may be empty while a turn is still streaming; the message is
// immutable once the turn's done event has fired.
type ChatMessage struct {
	ID      string `json:"id"`
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`

	// CharacterUpdates carries the structured update the assistant issued
	// on this turn, kept for audit/history. Nil for plain narration.
	CharacterUpdates *CharacterUpdate `json:"characterUpdates,omitempty"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
