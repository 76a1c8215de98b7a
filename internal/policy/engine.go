// Package policy gates tool calls surfaced by the completion provider.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Decisions returned by Evaluate.
const (
	DecisionAllow = "allow"
	DecisionBlock = "block"
)

// Engine evaluates tool calls against a rego policy.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine compiles the given policy content into a prepared query.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.tool_policy.decision"),
		rego.Module("tool_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// ToolCallInput is the policy input for a tool call.
type ToolCallInput struct {
	ToolName string `json:"tool_name"`
	UserID   string `json:"user_id"`
}

// Evaluate checks a tool call against the policy and returns the decision.
func (e *Engine) Evaluate(ctx context.Context, input ToolCallInput) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return DecisionAllow, nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return DecisionAllow, nil
}

// DefaultPolicy allows only the update_character tool. The assistant has no
// business calling anything else; unknown tool names are blocked and the
// caller logs them.
const DefaultPolicy = `
package tool_policy

default decision = "allow"

decision = "block" {
	input.tool_name != "update_character"
}
`
