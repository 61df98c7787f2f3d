package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	httpclient "internship-assistant/internal/common/http"
)

type HTTPConfig struct {
	BaseURL     string
	APIKey      string
	MaxTokens   int
	Temperature float64
}

// HTTPGenerator calls the GenAI gateway's /api/ai/generate endpoint.
type HTTPGenerator struct {
	config HTTPConfig
	client *httpclient.Client
}

func NewHTTPGenerator(cfg HTTPConfig) *HTTPGenerator {
	return &HTTPGenerator{
		config: cfg,
		// no client timeout, the caller's context bounds the call
		client: httpclient.NewClient(0).WithBearer(cfg.APIKey),
	}
}

type generateRequest struct {
	System      string  `json:"system"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, systemInstruction, question string) (string, error) {
	url := strings.TrimRight(g.config.BaseURL, "/") + "/api/ai/generate"

	var out generateResponse
	err := g.client.PostJSON(ctx, url, generateRequest{
		System:      systemInstruction,
		Prompt:      question,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}, &out)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			return "", fmt.Errorf("%w: %v", ErrGenerationFailed, statusErr)
		}
		return "", classify(ctx, err)
	}
	return out.Text, nil
}
