package llm

import (
	"log"
	"os"
)

const (
	// EnvArcanusMode is the environment variable name for mode selection.
	EnvArcanusMode = "ARCANUS_MODE"
	// ModeMock indicates the mock client should be used.
	ModeMock = "MOCK"
)

// NewCompletionClient creates a completion client based on the ARCANUS_MODE
// environment variable. ARCANUS_MODE=MOCK returns a MockClient; otherwise a
// real Anthropic client.
func NewCompletionClient(cfg AnthropicConfig) (CompletionClient, error) {
	if os.Getenv(EnvArcanusMode) == ModeMock {
		log.Println("ARCANUS_MODE=MOCK detected, using mock completion client")
		return NewMockClient(), nil
	}
	return NewAnthropicClient(cfg)
}
