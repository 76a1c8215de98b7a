package llm

import "encoding/json"

// Request is one completion request to the provider.
type Request struct {
	System    string
	Messages  []Message
	Tools     []ToolDefinition
	MaxTokens int
}

// Message is one conversation entry. Assistant messages may carry tool-use
// blocks, user messages may carry tool results; both are needed when a
// turn's history is replayed for the follow-up call.
type Message struct {
	Role        string
	Content     string
	ToolCalls   []ToolCall
	ToolResults []ToolResult
}

// ToolCall is a tool invocation issued by the model.
type ToolCall struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// ToolResult acknowledges a tool call back to the model.
type ToolResult struct {
	ToolCallID string
	Content    string
	IsError    bool
}

// ToolDefinition declares a callable tool to the model.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// EventType discriminates provider stream events.
type EventType string

const (
	// EventTextDelta carries an incremental fragment of narration text.
	EventTextDelta EventType = "text_delta"
	// EventToolUseStart signals the model began a tool call.
	EventToolUseStart EventType = "tool_use_start"
	// EventToolInputDelta carries a fragment of the tool's JSON arguments.
	EventToolInputDelta EventType = "tool_input_delta"
	// EventToolUseStop signals the tool call's arguments are complete.
	EventToolUseStop EventType = "tool_use_stop"
	// EventMessageStop signals the end of the assistant message.
	EventMessageStop EventType = "message_stop"
)

// Event is one incremental event from the provider stream.
type Event struct {
	Type        EventType
	Text        string // EventTextDelta
	ToolID      string // EventToolUseStart
	ToolName    string // EventToolUseStart
	PartialJSON string // EventToolInputDelta
}

// Callback receives stream events in generation order. Returning an error
// aborts the stream.
type Callback func(Event) error
