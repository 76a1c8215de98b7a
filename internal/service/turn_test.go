package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/arcanus/arcanus/internal/adapter/llm"
	"github.com/arcanus/arcanus/internal/domain"
	"github.com/arcanus/arcanus/internal/policy"
)

func newTurnService(t *testing.T, mock *llm.MockClient) *Service {
	t.Helper()
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to build policy engine: %v", err)
	}
	return New(Config{LLM: mock, Policy: engine})
}

func collectTurn(t *testing.T, svc *Service, history []domain.ChatMessage) []domain.StreamEvent {
	t.Helper()
	var events []domain.StreamEvent
	svc.RunTurn(context.Background(), domain.DefaultCharacter(), history, "usr_1", func(ev domain.StreamEvent) error {
		events = append(events, ev)
		return nil
	})
	return events
}

func eventTypes(events []domain.StreamEvent) []domain.StreamEventType {
	types := make([]domain.StreamEventType, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return types
}

func TestRunTurnTextOnly(t *testing.T) {
	mock := &llm.MockClient{Scripts: [][]llm.Event{{
		{Type: llm.EventTextDelta, Text: "Welcome, "},
		{Type: llm.EventTextDelta, Text: "adventurer!"},
		{Type: llm.EventMessageStop},
	}}}
	svc := newTurnService(t, mock)

	events := collectTurn(t, svc, []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}})

	want := []domain.StreamEventType{domain.StreamEventText, domain.StreamEventText, domain.StreamEventDone}
	got := eventTypes(events)
	if len(got) != len(want) {
		t.Fatalf("event types = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event types = %v, want %v", got, want)
		}
	}
	if events[0].Text != "Welcome, " || events[1].Text != "adventurer!" {
		t.Errorf("text deltas not forwarded verbatim: %+v", events[:2])
	}
	if mock.Calls() != 1 {
		t.Errorf("expected a single completion call, got %d", mock.Calls())
	}
}

func TestRunTurnWithToolCall(t *testing.T) {
	mock := &llm.MockClient{Scripts: [][]llm.Event{
		{
			{Type: llm.EventTextDelta, Text: "An elf, excellent!"},
			{Type: llm.EventToolUseStart, ToolID: "toolu_1", ToolName: "update_character"},
			{Type: llm.EventToolInputDelta, PartialJSON: `{"ra`},
			{Type: llm.EventToolInputDelta, PartialJSON: `ce":"Elf"}`},
			{Type: llm.EventToolUseStop},
			{Type: llm.EventMessageStop},
		},
		{
			{Type: llm.EventTextDelta, Text: " Now, what class calls to you?"},
			{Type: llm.EventMessageStop},
		},
	}}
	svc := newTurnService(t, mock)

	events := collectTurn(t, svc, []domain.ChatMessage{{Role: domain.RoleUser, Content: "I want to be an elf"}})

	want := []domain.StreamEventType{
		domain.StreamEventText,
		domain.StreamEventCharacterUpdate,
		domain.StreamEventText,
		domain.StreamEventDone,
	}
	got := eventTypes(events)
	if len(got) != len(want) {
		t.Fatalf("event types = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event types = %v, want %v", got, want)
		}
	}

	update := events[1].Updates
	if update == nil || update.Race == nil || *update.Race != "Elf" {
		t.Fatalf("update not reassembled from fragments: %+v", update)
	}

	// The follow-up request must replay the turn with tool_use and
	// tool_result blocks appended.
	if mock.Calls() != 2 {
		t.Fatalf("expected follow-up completion call, got %d calls", mock.Calls())
	}
	followUp := mock.Requests[1]
	n := len(followUp.Messages)
	if n < 3 {
		t.Fatalf("follow-up has %d messages, want history + assistant + tool result", n)
	}
	assistant := followUp.Messages[n-2]
	if assistant.Role != "assistant" || len(assistant.ToolCalls) != 1 || assistant.ToolCalls[0].ID != "toolu_1" {
		t.Errorf("follow-up assistant message malformed: %+v", assistant)
	}
	if assistant.Content != "An elf, excellent!" {
		t.Errorf("follow-up assistant text = %q", assistant.Content)
	}
	result := followUp.Messages[n-1]
	if result.Role != "user" || len(result.ToolResults) != 1 {
		t.Fatalf("follow-up tool result message malformed: %+v", result)
	}
	if result.ToolResults[0].ToolCallID != "toolu_1" || result.ToolResults[0].Content != "Character updated successfully." {
		t.Errorf("tool result = %+v", result.ToolResults[0])
	}
}

func TestRunTurnMalformedToolJSON(t *testing.T) {
	mock := &llm.MockClient{Scripts: [][]llm.Event{{
		{Type: llm.EventTextDelta, Text: "Updating..."},
		{Type: llm.EventToolUseStart, ToolID: "toolu_1", ToolName: "update_character"},
		{Type: llm.EventToolInputDelta, PartialJSON: `{"race":}`},
		{Type: llm.EventToolUseStop},
		{Type: llm.EventMessageStop},
	}}}
	svc := newTurnService(t, mock)

	events := collectTurn(t, svc, nil)

	for _, ev := range events {
		if ev.Type == domain.StreamEventCharacterUpdate {
			t.Fatal("malformed tool JSON must not produce a character_update")
		}
		if ev.Type == domain.StreamEventError {
			t.Fatal("malformed tool JSON is dropped silently, not surfaced as an error")
		}
	}
	if events[len(events)-1].Type != domain.StreamEventDone {
		t.Fatal("stream must still terminate with done")
	}
	if mock.Calls() != 1 {
		t.Errorf("no follow-up without an accepted update, got %d calls", mock.Calls())
	}
}

func TestRunTurnBlockedToolName(t *testing.T) {
	mock := &llm.MockClient{Scripts: [][]llm.Event{{
		{Type: llm.EventToolUseStart, ToolID: "toolu_1", ToolName: "delete_character"},
		{Type: llm.EventToolInputDelta, PartialJSON: `{"id":"chr_1"}`},
		{Type: llm.EventToolUseStop},
		{Type: llm.EventMessageStop},
	}}}
	svc := newTurnService(t, mock)

	events := collectTurn(t, svc, nil)

	for _, ev := range events {
		if ev.Type == domain.StreamEventCharacterUpdate {
			t.Fatal("out-of-contract tool call must be ignored")
		}
	}
	if events[len(events)-1].Type != domain.StreamEventDone {
		t.Fatal("stream must still terminate with done")
	}
	if mock.Calls() != 1 {
		t.Errorf("no follow-up for a blocked tool, got %d calls", mock.Calls())
	}
}

func TestRunTurnProviderError(t *testing.T) {
	mock := &llm.MockClient{
		Scripts: [][]llm.Event{{
			{Type: llm.EventTextDelta, Text: "Let me th"},
		}},
		Errs: []error{errors.New("connection reset")},
	}
	svc := newTurnService(t, mock)

	events := collectTurn(t, svc, nil)

	var errCount, doneCount int
	for _, ev := range events {
		switch ev.Type {
		case domain.StreamEventError:
			errCount++
			if ev.Message == "" {
				t.Error("error event should carry a message")
			}
		case domain.StreamEventDone:
			doneCount++
		}
	}
	if errCount != 1 || doneCount != 1 {
		t.Fatalf("got %d error and %d done events, want exactly one of each (%v)", errCount, doneCount, eventTypes(events))
	}
	if events[len(events)-1].Type != domain.StreamEventDone {
		t.Fatal("done must be the terminal event")
	}
}

func TestRunTurnAtMostOneUpdate(t *testing.T) {
	mock := &llm.MockClient{Scripts: [][]llm.Event{
		{
			{Type: llm.EventToolUseStart, ToolID: "toolu_1", ToolName: "update_character"},
			{Type: llm.EventToolInputDelta, PartialJSON: `{"race":"Elf"}`},
			{Type: llm.EventToolUseStop},
			{Type: llm.EventToolUseStart, ToolID: "toolu_2", ToolName: "update_character"},
			{Type: llm.EventToolInputDelta, PartialJSON: `{"class":"Wizard"}`},
			{Type: llm.EventToolUseStop},
			{Type: llm.EventMessageStop},
		},
		{
			{Type: llm.EventMessageStop},
		},
	}}
	svc := newTurnService(t, mock)

	events := collectTurn(t, svc, nil)

	var updates []*domain.CharacterUpdate
	for _, ev := range events {
		if ev.Type == domain.StreamEventCharacterUpdate {
			updates = append(updates, ev.Updates)
		}
	}
	if len(updates) != 1 {
		t.Fatalf("got %d character_update events, want 1", len(updates))
	}
	if updates[0].Race == nil || *updates[0].Race != "Elf" {
		t.Errorf("the first tool call wins: %+v", updates[0])
	}
}

func TestRunTurnSystemPromptCarriesState(t *testing.T) {
	mock := &llm.MockClient{Scripts: [][]llm.Event{{
		{Type: llm.EventMessageStop},
	}}}
	svc := newTurnService(t, mock)

	character := domain.DefaultCharacter()
	character.Name = "Lyra"
	svc.RunTurn(context.Background(), character, nil, "usr_1", func(domain.StreamEvent) error { return nil })

	if mock.Calls() != 1 {
		t.Fatalf("expected one call, got %d", mock.Calls())
	}
	req := mock.Requests[0]
	if !strings.Contains(req.System, `"name": "Lyra"`) {
		t.Error("system prompt missing character state")
	}
	if len(req.Tools) != 1 || req.Tools[0].Name != "update_character" {
		t.Errorf("request tools = %+v, want the update_character tool", req.Tools)
	}
}

func TestRunTurnEmitterAbort(t *testing.T) {
	mock := &llm.MockClient{Scripts: [][]llm.Event{{
		{Type: llm.EventTextDelta, Text: "a"},
		{Type: llm.EventTextDelta, Text: "b"},
		{Type: llm.EventMessageStop},
	}}}
	svc := newTurnService(t, mock)

	clientGone := errors.New("client gone")
	var seen int
	err := svc.RunTurn(context.Background(), domain.DefaultCharacter(), nil, "usr_1", func(ev domain.StreamEvent) error {
		seen++
		return clientGone
	})
	if !errors.Is(err, clientGone) {
		t.Fatalf("err = %v, want emitter error", err)
	}
	if seen != 1 {
		t.Errorf("turn should stop at the first emitter failure, saw %d events", seen)
	}
}
