package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"internship-assistant/internal/common/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// HTTP generator
// ==========================

func TestHTTPGenerator_Success(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "Voici les offres."}`))
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(HTTPConfig{BaseURL: srv.URL + "/", APIKey: "secret", MaxTokens: 256, Temperature: 0.2})
	text, err := gen.Generate(context.Background(), "Respond in French.", "Quelles offres ?")

	require.NoError(t, err)
	assert.Equal(t, "Voici les offres.", text)
	assert.Equal(t, "Respond in French.", got.System)
	assert.Equal(t, "Quelles offres ?", got.Prompt)
	assert.Equal(t, 256, got.MaxTokens)
	assert.InDelta(t, 0.2, got.Temperature, 1e-9)
}

func TestHTTPGenerator_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream down", http.StatusBadGateway)
			},
			want: ErrGenerationFailed,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"text":`))
			},
			want: ErrGenerationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewHTTPGenerator(HTTPConfig{BaseURL: srv.URL}).Generate(context.Background(), "sys", "q")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
		})
	}
}

func TestHTTPGenerator_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := NewHTTPGenerator(HTTPConfig{BaseURL: srv.URL}).Generate(ctx, "sys", "q")
	assert.ErrorIs(t, err, ErrGenerationTimeout)
}

func TestHTTPGenerator_Unreachable(t *testing.T) {
	_, err := NewHTTPGenerator(HTTPConfig{BaseURL: "http://127.0.0.1:1"}).Generate(context.Background(), "sys", "q")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

// ==========================
// Gemini generator
// ==========================

func TestGeminiGenerator_Success(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-test:generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"There are 2 offers."}]}}]}`))
	}))
	defer srv.Close()

	gen, err := NewGeminiGenerator(context.Background(), GeminiConfig{
		APIKey: "test-key", Model: "gemini-test", BaseURL: srv.URL, Temperature: 0.3,
	})
	require.NoError(t, err)

	text, err := gen.Generate(context.Background(), "Respond in English.", "How many offers?")
	require.NoError(t, err)
	assert.Equal(t, "There are 2 offers.", text)

	raw, _ := json.Marshal(body)
	assert.Contains(t, string(raw), "Respond in English.")
	assert.Contains(t, string(raw), "How many offers?")
}

func TestGeminiGenerator_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad request","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	gen, err := NewGeminiGenerator(context.Background(), GeminiConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "sys", "q")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

// ==========================
// Factory
// ==========================

func TestNew(t *testing.T) {
	gen, err := New(context.Background(), config.GenAIConfig{Provider: config.GenAIProviderHTTP, BaseURL: "http://x"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPGenerator{}, gen)

	gen, err = New(context.Background(), config.GenAIConfig{Provider: config.GenAIProviderGemini, APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &GeminiGenerator{}, gen)

	_, err = New(context.Background(), config.GenAIConfig{Provider: "other"})
	assert.Error(t, err)
}
