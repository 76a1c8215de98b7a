package domain

// StreamEventType discriminates the envelopes pushed to the chat client.
type StreamEventType string

const (
	StreamEventText            StreamEventType = "text"
	StreamEventCharacterUpdate StreamEventType = "character_update"
	StreamEventError           StreamEventType = "error"
	StreamEventDone            StreamEventType = "done"
)

// StreamEvent is one SSE envelope of a chat turn. A turn emits any number
// of text events, at most one character_update, and is always terminated by
// exactly one done event (an error event, if any, precedes it).
type StreamEvent struct {
	Type    StreamEventType  `json:"type"`
	Text    string           `json:"text,omitempty"`
	Updates *CharacterUpdate `json:"updates,omitempty"`
	Message string           `json:"message,omitempty"`
}

func TextEvent(text string) StreamEvent {
	return StreamEvent{Type: StreamEventText, Text: text}
}

func CharacterUpdateEvent(updates *CharacterUpdate) StreamEvent {
	return StreamEvent{Type: StreamEventCharacterUpdate, Updates: updates}
}

func ErrorEvent(message string) StreamEvent {
	return StreamEvent{Type: StreamEventError, Message: message}
}

func DoneEvent() StreamEvent {
	return StreamEvent{Type: StreamEventDone}
}
