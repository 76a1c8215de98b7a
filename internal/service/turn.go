package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/arcanus/arcanus/internal/adapter/llm"
	"github.com/arcanus/arcanus/internal/domain"
	"github.com/arcanus/arcanus/internal/policy"
	"github.com/arcanus/arcanus/internal/prompt"
)

// Emitter receives the stream events of one chat turn, in order. A non-nil
// return aborts the turn (the client went away).
type Emitter func(domain.StreamEvent) error

// toolResultContent is what the model is told after its update was accepted.
const toolResultContent = "Character updated successfully."

// RunTurn executes one conversational turn: a streaming completion, tool
// call demultiplexing, and an automatic follow-up completion when the
// assistant updated the character.
//
// The emitter sees any number of text events, at most one character_update,
// optionally one error, and always exactly one terminal done event. The
// caller applies the update; RunTurn never mutates or persists state.
func (s *Service) RunTurn(ctx context.Context, character domain.Character, history []domain.ChatMessage, userID string, emit Emitter) error {
	ctx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	req := &llm.Request{
		System:    prompt.BuildSystemPrompt(character),
		Messages:  historyMessages(history),
		Tools:     []llm.ToolDefinition{prompt.UpdateCharacterTool()},
		MaxTokens: s.maxTokens,
	}

	// Once the emitter fails the client is gone; nothing more is written.
	var emitFailed error
	safeEmit := func(ev domain.StreamEvent) error {
		if err := emit(ev); err != nil {
			emitFailed = err
			return err
		}
		return nil
	}

	var assistantText strings.Builder
	collector := &toolCollector{}
	var pending *capturedCall

	err := s.llm.StreamMessage(ctx, req, func(ev llm.Event) error {
		switch ev.Type {
		case llm.EventTextDelta:
			assistantText.WriteString(ev.Text)
			return safeEmit(domain.TextEvent(ev.Text))
		case llm.EventToolUseStart:
			collector.start(ev.ToolID, ev.ToolName)
		case llm.EventToolInputDelta:
			collector.append(ev.PartialJSON)
		case llm.EventToolUseStop:
			call := collector.finish()
			if call == nil {
				return nil
			}
			if pending != nil {
				log.Printf("WARN: ignoring extra tool call %s (%s), update already accepted", call.name, call.id)
				return nil
			}
			update := s.acceptToolCall(ctx, call, userID)
			if update == nil {
				return nil
			}
			pending = call
			return safeEmit(domain.CharacterUpdateEvent(update))
		}
		return nil
	})
	if err != nil {
		if emitFailed != nil {
			return emitFailed
		}
		return s.abort(emit, err)
	}

	if pending != nil {
		if err := s.followUp(ctx, req, assistantText.String(), pending, safeEmit); err != nil {
			if emitFailed != nil {
				return emitFailed
			}
			return s.abort(emit, err)
		}
	}

	return safeEmit(domain.DoneEvent())
}

// abort reports a turn failure to the client: one error event, then the
// terminal done. Emitter failures at this point mean the client is gone.
func (s *Service) abort(emit Emitter, err error) error {
	log.Printf("ERROR: chat turn failed: %v", err)
	if emitErr := emit(domain.ErrorEvent("The arcane connection faltered. Please try again.")); emitErr != nil {
		return err
	}
	if emitErr := emit(domain.DoneEvent()); emitErr != nil {
		return err
	}
	return err
}

// acceptToolCall validates one completed tool call against the policy gate
// and parses its arguments. Returns nil when the call is dropped; a dropped
// call is logged and the turn continues as pure narration.
func (s *Service) acceptToolCall(ctx context.Context, call *capturedCall, userID string) *domain.CharacterUpdate {
	decision, err := s.policy.Evaluate(ctx, policy.ToolCallInput{ToolName: call.name, UserID: userID})
	if err != nil {
		log.Printf("ERROR: policy evaluation failed for tool %s: %v", call.name, err)
		return nil
	}
	if decision != policy.DecisionAllow {
		log.Printf("WARN: tool call %s blocked by policy", call.name)
		return nil
	}

	var update domain.CharacterUpdate
	if err := json.Unmarshal([]byte(call.input), &update); err != nil {
		log.Printf("WARN: dropping tool call %s with malformed arguments: %v", call.id, err)
		return nil
	}
	return &update
}

// followUp replays the conversation with the assistant's tool call and its
// result appended, and streams the model's closing text into the same event
// sequence. A nested tool call here is out of contract and only logged.
func (s *Service) followUp(ctx context.Context, req *llm.Request, assistantText string, call *capturedCall, emit Emitter) error {
	messages := make([]llm.Message, 0, len(req.Messages)+2)
	messages = append(messages, req.Messages...)
	messages = append(messages, llm.Message{
		Role:    "assistant",
		Content: assistantText,
		ToolCalls: []llm.ToolCall{{
			ID:    call.id,
			Name:  call.name,
			Input: json.RawMessage(call.input),
		}},
	})
	messages = append(messages, llm.Message{
		Role: "user",
		ToolResults: []llm.ToolResult{{
			ToolCallID: call.id,
			Content:    toolResultContent,
		}},
	})

	followUpReq := &llm.Request{
		System:    req.System,
		Messages:  messages,
		Tools:     req.Tools,
		MaxTokens: req.MaxTokens,
	}

	return s.llm.StreamMessage(ctx, followUpReq, func(ev llm.Event) error {
		switch ev.Type {
		case llm.EventTextDelta:
			return emit(domain.TextEvent(ev.Text))
		case llm.EventToolUseStart:
			log.Printf("WARN: ignoring nested tool call %s in follow-up", ev.ToolName)
		}
		return nil
	})
}

// historyMessages converts stored chat messages to provider messages.
// Structured updates attached to past assistant turns stay out of the
// transcript; the merged result is already in the system prompt.
func historyMessages(history []domain.ChatMessage) []llm.Message {
	messages := make([]llm.Message, 0, len(history))
	for _, m := range history {
		if m.Content == "" {
			continue
		}
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	return messages
}

// capturedCall is one tool invocation reassembled from streamed fragments.
type capturedCall struct {
	id    string
	name  string
	input string
}

// toolCollector buffers streamed tool-argument fragments for the tool call
// in flight. Provider streams are sequential, so fragments between a start
// and its stop belong to that invocation.
type toolCollector struct {
	current *capturedCall
	buf     strings.Builder
}

func (c *toolCollector) start(id, name string) {
	c.current = &capturedCall{id: id, name: name}
	c.buf.Reset()
}

func (c *toolCollector) append(fragment string) {
	if c.current != nil {
		c.buf.WriteString(fragment)
	}
}

// finish closes the in-flight invocation and returns it, or nil when no
// tool call was open.
func (c *toolCollector) finish() *capturedCall {
	if c.current == nil {
		return nil
	}
	call := c.current
	call.input = c.buf.String()
	if call.input == "" {
		call.input = "{}"
	}
	c.current = nil
	c.buf.Reset()
	return call
}
