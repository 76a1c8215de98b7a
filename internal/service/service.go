// Package service orchestrates chat turns, character CRUD and portrait
// generation over the store, completion provider and image generator.
package service

import (
	"errors"
	"time"

	"github.com/arcanus/arcanus/internal/adapter/llm"
	"github.com/arcanus/arcanus/internal/policy"
	"github.com/arcanus/arcanus/internal/portrait"
	"github.com/arcanus/arcanus/internal/repository"
)

// Sentinel errors mapped to HTTP status codes by the transport layer.
var (
	ErrNotFound  = errors.New("character not found")
	ErrForbidden = errors.New("character belongs to another user")
	ErrInvalid   = errors.New("invalid request")
)

// Service wires the application's dependencies together.
type Service struct {
	store     repository.CharacterStore
	llm       llm.CompletionClient
	policy    *policy.Engine
	generator portrait.Generator
	blobs     portrait.BlobStore

	maxTokens  int
	llmTimeout time.Duration
}

// Config carries the dependencies and tunables for a Service.
type Config struct {
	Store     repository.CharacterStore
	LLM       llm.CompletionClient
	Policy    *policy.Engine
	Generator portrait.Generator
	Blobs     portrait.BlobStore

	MaxTokens  int
	LLMTimeout time.Duration
}

// New creates a Service.
func New(cfg Config) *Service {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 60 * time.Second
	}
	return &Service{
		store:      cfg.Store,
		llm:        cfg.LLM,
		policy:     cfg.Policy,
		generator:  cfg.Generator,
		blobs:      cfg.Blobs,
		maxTokens:  cfg.MaxTokens,
		llmTimeout: cfg.LLMTimeout,
	}
}
