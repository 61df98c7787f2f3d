package genai

import (
	"context"
	"fmt"

	gemini "google.golang.org/genai"
)

type GeminiConfig struct {
	APIKey      string
	Model       string
	BaseURL     string // optional endpoint override
	Temperature float64
}

// GeminiGenerator generates answers with the Gemini API.
type GeminiGenerator struct {
	client      *gemini.Client
	model       string
	temperature float32
}

func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	clientCfg := &gemini.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: gemini.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = gemini.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := gemini.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &GeminiGenerator{
		client:      client,
		model:       model,
		temperature: float32(cfg.Temperature),
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, systemInstruction, question string) (string, error) {
	genCfg := &gemini.GenerateContentConfig{
		SystemInstruction: gemini.NewContentFromText(systemInstruction, gemini.RoleUser),
		Temperature:       gemini.Ptr(g.temperature),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, gemini.Text(question), genCfg)
	if err != nil {
		return "", classify(ctx, err)
	}
	return resp.Text(), nil
}
