package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"github.com/arcanus/arcanus/internal/domain"
	"github.com/arcanus/arcanus/internal/portrait"
)

// PortraitResult is the outcome of a generation request. PortraitURL is
// empty when the image could not be persisted; Base64 is always set on
// success so the client can render the image regardless.
type PortraitResult struct {
	Base64      string `json:"base64"`
	PortraitURL string `json:"portraitUrl,omitempty"`
}

// GeneratePortrait renders a portrait for the character. When characterID
// names a stored character owned by the user and the upload succeeded, the
// record's portrait URL is updated in place.
func (s *Service) GeneratePortrait(ctx context.Context, userID string, character domain.Character, characterID string) (*PortraitResult, error) {
	if character.Race == "" || character.Class == "" {
		return nil, fmt.Errorf("%w: character needs race and class", ErrInvalid)
	}

	ref := portrait.FindReference(character.Race, character.Class)
	log.Printf("generating portrait for %s %s (reference %s)", character.Race, character.Class, ref)

	imageData, err := s.generator.Generate(ctx, portrait.BuildPrompt(character))
	if err != nil {
		return nil, fmt.Errorf("failed to generate portrait: %w", err)
	}

	result := &PortraitResult{
		Base64: "data:image/png;base64," + base64.StdEncoding.EncodeToString(imageData),
	}

	name := userID + "-draft.png"
	if characterID != "" {
		name = userID + "-" + characterID + ".png"
	}
	url, err := s.blobs.Put(ctx, name, imageData)
	if err != nil {
		// Partial success: the client still gets the image inline.
		log.Printf("ERROR: portrait upload failed: %v", err)
		return result, nil
	}
	// Cache-bust so browsers pick up regenerated images at the same path.
	result.PortraitURL = fmt.Sprintf("%s?v=%d", url, time.Now().UnixMilli())

	if characterID != "" {
		if err := s.savePortraitURL(ctx, userID, characterID, result.PortraitURL); err != nil {
			log.Printf("WARN: portrait generated but record not updated: %v", err)
		}
	}

	return result, nil
}

func (s *Service) savePortraitURL(ctx context.Context, userID, characterID, url string) error {
	record, err := s.GetCharacter(ctx, userID, characterID)
	if err != nil {
		return err
	}
	record.Character.PortraitURL = url
	if _, err := s.store.Update(ctx, record); err != nil {
		return err
	}
	return nil
}
