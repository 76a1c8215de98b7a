package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockClient is a CompletionClient for tests and offline development.
//
// With Scripts set, each StreamMessage call replays the next scripted event
// sequence (and Errs entry, if any), which lets tests drive the orchestrator
// through exact provider streams. Without Scripts it generates a canned
// narration reply from the last user message, chunked to simulate streaming.
type MockClient struct {
	mu      sync.Mutex
	Scripts [][]Event
	Errs    []error
	calls   int

	// Requests records every request received, for assertions.
	Requests []*Request
}

// NewMockClient creates a canned-response mock client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// StreamMessage replays the next script, or generates a canned response.
func (m *MockClient) StreamMessage(ctx context.Context, req *Request, callback Callback) error {
	m.mu.Lock()
	call := m.calls
	m.calls++
	m.Requests = append(m.Requests, req)
	scripted := m.Scripts != nil
	var script []Event
	var scriptErr error
	if scripted {
		if call < len(m.Scripts) {
			script = m.Scripts[call]
		}
		if call < len(m.Errs) {
			scriptErr = m.Errs[call]
		}
	}
	m.mu.Unlock()

	if scripted {
		for _, ev := range script {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if err := callback(ev); err != nil {
				return err
			}
		}
		return scriptErr
	}

	return m.cannedResponse(ctx, req, callback)
}

// Calls reports how many requests the client has received.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockClient) cannedResponse(ctx context.Context, req *Request, callback Callback) error {
	var lastUser string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" && req.Messages[i].Content != "" {
			lastUser = req.Messages[i].Content
			break
		}
	}

	text := "[MOCK] Tell me about the hero you have in mind."
	if lastUser != "" {
		text = fmt.Sprintf("[MOCK] Noted: %q. What would you like to decide next?", truncate(lastUser, 100))
	}

	for _, chunk := range splitIntoChunks(text, 10) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := callback(Event{Type: EventTextDelta, Text: chunk}); err != nil {
			return err
		}
	}
	return callback(Event{Type: EventMessageStop})
}

func splitIntoChunks(s string, chunkSize int) []string {
	if len(s) == 0 {
		return []string{""}
	}
	var chunks []string
	for i := 0; i < len(s); i += chunkSize {
		end := i + chunkSize
		if end > len(s) {
			end = len(s)
		}
		chunks = append(chunks, s[i:end])
	}
	return chunks
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
