// Package genai provides the text generation capability used to phrase assistant answers.
package genai

import (
	"context"
	"errors"
	"fmt"

	"internship-assistant/internal/common/config"
)

var (
	ErrGenerationFailed  = errors.New("GENERATION_FAILED")
	ErrGenerationTimeout = errors.New("GENERATION_TIMEOUT")
)

// Generator turns a system instruction and a user question into free text.
// Implementations make exactly one attempt per call.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, question string) (string, error)
}

// New builds the generator selected by cfg.Provider.
func New(ctx context.Context, cfg config.GenAIConfig) (Generator, error) {
	switch cfg.Provider {
	case "", config.GenAIProviderHTTP:
		return NewHTTPGenerator(HTTPConfig{
			BaseURL:     cfg.BaseURL,
			APIKey:      cfg.APIKey,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}), nil
	case config.GenAIProviderGemini:
		return NewGeminiGenerator(ctx, GeminiConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: cfg.Temperature,
		})
	default:
		return nil, fmt.Errorf("unknown genai provider %q", cfg.Provider)
	}
}

// classify maps a transport error onto the generation sentinels.
func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return ErrGenerationTimeout
	}
	return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
}
