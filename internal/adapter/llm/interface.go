// Package llm provides an abstraction over the completion provider.
package llm

import "context"

// CompletionClient streams one model completion per call. Events are
// delivered in generation order through the callback; the call returns once
// the stream has ended or failed.
type CompletionClient interface {
	StreamMessage(ctx context.Context, req *Request, callback Callback) error
}

// Ensure both implementations satisfy the interface.
var (
	_ CompletionClient = (*AnthropicClient)(nil)
	_ CompletionClient = (*MockClient)(nil)
)
