package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arcanus/arcanus/internal/domain"
)

// newCharacterID generates a short prefixed character id.
func newCharacterID() string {
	return "chr_" + uuid.New().String()[:8]
}

// CreateCharacter stores a new character for the user and returns the
// record with its assigned id and timestamps.
func (s *Service) CreateCharacter(ctx context.Context, userID string, character domain.Character, history []domain.ChatMessage) (*domain.CharacterRecord, error) {
	if character.Level <= 0 {
		character.Level = 1
	}
	if character.Edition == "" {
		character.Edition = "5e"
	}

	now := time.Now().UTC()
	record := &domain.CharacterRecord{
		ID:          newCharacterID(),
		UserID:      userID,
		Character:   character,
		ChatHistory: history,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	record.Character.ID = record.ID
	record.Character.UserID = userID

	if err := s.store.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}
	return record, nil
}

// GetCharacter fetches one character, enforcing ownership.
func (s *Service) GetCharacter(ctx context.Context, userID, characterID string) (*domain.CharacterRecord, error) {
	record, err := s.store.GetByID(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load character: %w", err)
	}
	if record == nil {
		return nil, ErrNotFound
	}
	if record.UserID != userID {
		return nil, ErrForbidden
	}
	return record, nil
}

// ListCharacters lists the user's characters, most recently updated first.
func (s *Service) ListCharacters(ctx context.Context, userID string) ([]domain.CharacterRecord, error) {
	records, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return records, nil
}

// UpdateCharacter replaces the stored character and chat history.
func (s *Service) UpdateCharacter(ctx context.Context, userID, characterID string, character domain.Character, history []domain.ChatMessage) (*domain.CharacterRecord, error) {
	existing, err := s.GetCharacter(ctx, userID, characterID)
	if err != nil {
		return nil, err
	}

	record := &domain.CharacterRecord{
		ID:          characterID,
		UserID:      userID,
		Character:   character,
		ChatHistory: history,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   existing.UpdatedAt,
	}
	record.Character.ID = characterID
	record.Character.UserID = userID

	ok, err := s.store.Update(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to update character: %w", err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

// DeleteCharacter removes a character, enforcing ownership.
func (s *Service) DeleteCharacter(ctx context.Context, userID, characterID string) error {
	// Distinguish missing from foreign-owned before deleting.
	if _, err := s.GetCharacter(ctx, userID, characterID); err != nil {
		return err
	}
	ok, err := s.store.Delete(ctx, characterID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
