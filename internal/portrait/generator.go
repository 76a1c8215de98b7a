package portrait

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Generator produces a PNG portrait for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// Disabled is a Generator for deployments without an image API key. Every
// request fails with a clear message instead of the server refusing to boot.
type Disabled struct{}

var _ Generator = Disabled{}

func (Disabled) Generate(context.Context, string) ([]byte, error) {
	return nil, errors.New("portrait generation is not configured")
}

const imageModel = "gpt-image-1"

// OpenAIGenerator implements Generator on the OpenAI image API.
type OpenAIGenerator struct {
	client *openai.Client
}

var _ Generator = (*OpenAIGenerator)(nil)

// OpenAIConfig configures an OpenAIGenerator.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
}

// NewOpenAIGenerator creates an image generator client.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIGenerator{client: openai.NewClientWithConfig(clientCfg)}, nil
}

// Generate renders one 1024x1024 portrait and returns the PNG bytes.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Model:   imageModel,
		Prompt:  prompt,
		N:       1,
		Size:    openai.CreateImageSize1024x1024,
		Quality: openai.CreateImageQualityHigh,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, errors.New("openai: no image generated")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("openai: invalid image payload: %w", err)
	}
	return data, nil
}
